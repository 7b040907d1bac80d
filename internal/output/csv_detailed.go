package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// DetailedCSVFormatter emits one row per strategy and calendar month, the
// full breakdown suitable for spreadsheet analysis.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Strategy", "Month", "CoveredDays", "MonthDays",
		"BenefitIncome", "TopUpIncome", "SalaryIncome", "TotalIncome",
		"StandardDays", "MinimumDays", "TopUpDays",
		"DaysParent1", "DaysParent2", "BelowFloor",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range report.Results {
		res := &report.Results[i]
		for _, m := range res.Months {
			row := []string{
				string(res.Strategy),
				m.Key(),
				strconv.Itoa(m.CoveredDays),
				strconv.Itoa(m.MonthDays),
				m.BenefitIncome.StringFixed(2),
				m.TopUpIncome.StringFixed(2),
				m.SalaryIncome.StringFixed(2),
				m.TotalIncome.StringFixed(2),
				strconv.Itoa(m.StandardDays),
				strconv.Itoa(m.MinimumDays),
				strconv.Itoa(m.TopUpDays),
				strconv.Itoa(m.DaysParent1),
				strconv.Itoa(m.DaysParent2),
				strconv.FormatBool(m.BelowFloor),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}

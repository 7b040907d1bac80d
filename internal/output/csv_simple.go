package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per strategy).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Strategy", "TotalIncome", "AverageMonthlyIncome", "BenefitDaysUsed", "StandardDaysUsed", "MinimumDaysUsed", "MonthsBelowFloor", "Warnings", "PlanStart", "PlanEnd"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	results := append([]domain.PlanResult(nil), report.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Strategy < results[j].Strategy })
	for i := range results {
		res := &results[i]
		start, end := res.Span()
		startStr, endStr := "", ""
		if !start.IsZero() {
			startStr = start.Format("2006-01-02")
			endStr = end.Format("2006-01-02")
		}
		row := []string{
			string(res.Strategy),
			res.TotalIncome.StringFixed(2),
			res.AverageMonthlyIncome.StringFixed(2),
			strconv.Itoa(res.TotalDaysUsed()),
			strconv.Itoa(res.Usage.Parent1.StandardUsed + res.Usage.Parent2.StandardUsed),
			strconv.Itoa(res.Usage.Parent1.MinimumUsed + res.Usage.Parent2.MinimumUsed),
			strconv.Itoa(res.MonthsBelowFloor()),
			strconv.Itoa(len(res.Warnings)),
			startStr,
			endStr,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}

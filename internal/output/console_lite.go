package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a compact summary: one line per strategy plus the
// recommendation. Registered as "console-lite".
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *PlanReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("format summary: report is nil")
	}

	var buf bytes.Buffer

	fmt.Fprintln(&buf, "PARENTAL LEAVE PLAN SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	if report.Spec != nil {
		fmt.Fprintf(&buf, "Household:    %s & %s\n",
			report.Spec.Parent1.Name, report.Spec.Parent2.Name)
		fmt.Fprintf(&buf, "Income floor: %s/month\n", FormatCurrency(report.Spec.IncomeFloor))
		fmt.Fprintln(&buf)
	}

	for i := range report.Results {
		res := &report.Results[i]
		fmt.Fprintf(&buf, "%-18s total %s, avg %s/month, %d benefit days",
			string(res.Strategy),
			FormatCurrency(res.TotalIncome),
			FormatCurrency(res.AverageMonthlyIncome),
			res.TotalDaysUsed())
		if below := res.MonthsBelowFloor(); below > 0 {
			fmt.Fprintf(&buf, ", %d months below floor", below)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Results) > 1 {
		rec := AnalyzeResults(report)
		fmt.Fprintf(&buf, "\nRecommended: %s (Δ %s)\n",
			rec.Strategy, FormatCurrency(rec.IncomeAdvantage))
	}

	return buf.Bytes(), nil
}

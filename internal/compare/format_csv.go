package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Strategy",
		"Total Income",
		"Average Monthly Income",
		"Lowest Month",
		"Benefit Days Used",
		"Minimum Level Days",
		"Months Below Floor",
		"Warnings",
		"Income Diff from Base",
		"Income % Change",
		"Days Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	// Write alternative scenarios
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Strategy,
		result.TotalIncome.StringFixed(2),
		result.AverageMonthlyIncome.StringFixed(2),
		result.LowestMonthIncome.StringFixed(2),
		formatInt(result.DaysUsed),
		formatInt(result.MinimumDaysUsed),
		formatInt(result.MonthsBelowFloor),
		formatInt(result.WarningCount),
		result.IncomeDiffFromBase.StringFixed(2),
		result.IncomePctFromBase.StringFixed(2),
		formatInt(result.DaysDiffFromBase),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

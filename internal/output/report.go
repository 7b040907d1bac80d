package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
)

// ReportGenerator handles report generation in various formats
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// formatExtensions maps file-bound formatter names to their extension.
var formatExtensions = map[string]string{
	"csv":          "csv",
	"detailed-csv": "csv",
	"json":         "json",
	"html":         "html",
}

// GenerateReport renders a report in the specified format: console formats
// print to stdout, file formats write a timestamped file and report its name.
func GenerateReport(report *PlanReport, format string) error {
	generator := NewReportGenerator()
	return generator.Generate(report, format)
}

// Generate resolves the formatter by name or alias and routes its output.
func (rg *ReportGenerator) Generate(report *PlanReport, format string) error {
	formatter := GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)",
			format, strings.Join(AvailableFormatterNames(), ", "))
	}

	switch formatter.Name() {
	case "console", "console-lite":
		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	ext := formatExtensions[formatter.Name()]
	if ext == "" {
		ext = "txt"
	}

	filename, err := WriteFormatted(formatter, report, ext)
	if err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", filename)
	return nil
}

// Recommendation is the formatters' pick of the strongest strategy result.
type Recommendation struct {
	Strategy        string
	TotalIncome     decimal.Decimal
	IncomeAdvantage decimal.Decimal // over the weakest result
	DaysUsed        int
}

// AnalyzeResults picks the result to recommend: fewest months below the
// floor first, then highest total income, then fewest benefit days spent.
func AnalyzeResults(report *PlanReport) Recommendation {
	if report == nil || len(report.Results) == 0 {
		return Recommendation{}
	}

	best := 0
	worstIncome := report.Results[0].TotalIncome

	for i := 1; i < len(report.Results); i++ {
		candidate := &report.Results[i]
		current := &report.Results[best]

		if candidate.TotalIncome.LessThan(worstIncome) {
			worstIncome = candidate.TotalIncome
		}

		switch {
		case candidate.MonthsBelowFloor() != current.MonthsBelowFloor():
			if candidate.MonthsBelowFloor() < current.MonthsBelowFloor() {
				best = i
			}
		case !candidate.TotalIncome.Equal(current.TotalIncome):
			if candidate.TotalIncome.GreaterThan(current.TotalIncome) {
				best = i
			}
		case candidate.TotalDaysUsed() < current.TotalDaysUsed():
			best = i
		}
	}

	chosen := &report.Results[best]
	return Recommendation{
		Strategy:        string(chosen.Strategy),
		TotalIncome:     chosen.TotalIncome,
		IncomeAdvantage: chosen.TotalIncome.Sub(worstIncome),
		DaysUsed:        chosen.TotalDaysUsed(),
	}
}

// SaveConfiguration writes the plan file back out as YAML so a tweaked
// run can be replayed later.
func SaveConfiguration(file *config.PlanFile, filename string) error {
	if file == nil {
		return fmt.Errorf("save configuration: plan file is nil")
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " kr"
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

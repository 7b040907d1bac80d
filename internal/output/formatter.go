package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// PlanReport bundles everything the formatters need: the household spec the
// engine ran, the rules it ran under, and one result per strategy.
type PlanReport struct {
	Spec    *domain.PlanSpec    `json:"spec"`
	Rules   domain.BenefitRules `json:"rules"`
	Results []domain.PlanResult `json:"results"`
}

// NewPlanReport assembles a report for formatting.
func NewPlanReport(spec *domain.PlanSpec, rules domain.BenefitRules, results []domain.PlanResult) *PlanReport {
	return &PlanReport{Spec: spec, Rules: rules, Results: results}
}

// Formatter renders a finished plan report into one output format.
type Formatter interface {
	Name() string
	Format(report *PlanReport) ([]byte, error)
}

// FormatterFunc adapts a bare function into a named Formatter.
type FormatterFunc struct {
	ID string
	F  func(report *PlanReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *PlanReport) ([]byte, error) { return f.F(report) }

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	DetailedCSVFormatter{},
	JSONFormatter{},
	HTMLFormatter{},
}

// formatAliases maps accepted spellings onto registry names.
var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"summary":         "console-lite",
	"lite":            "console-lite",
}

// GetFormatterByName resolves a formatter by registry name or alias. Returns
// nil for unknown names.
func GetFormatterByName(name string) Formatter {
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists the accepted format aliases.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory, returning the filename.
func WriteFormatted(f Formatter, report *PlanReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("leave_plan_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

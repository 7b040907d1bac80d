package output

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter emits the full report as indented JSON for downstream
// tooling.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *PlanReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

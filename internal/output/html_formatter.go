package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	// Pointer-receiver helpers are not callable on range copies, so the
	// below-floor count is exposed as a function.
	"monthsBelow": func(r domain.PlanResult) int { return r.MonthsBelowFloor() },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeResults(report)
	data := struct {
		*PlanReport
		Recommendation Recommendation
		Assumptions    []string
	}{report, rec, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/compare"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/components"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuimsg"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// CompareModel represents the strategy comparison scene
type CompareModel struct {
	set       *compare.ComparisonSet
	comparing bool
	spinner   *components.Spinner
	width     int
	height    int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{
		spinner: components.NewSpinner().WithMessage("Running both strategies..."),
	}
}

// SetComparing toggles the in-flight state
func (m *CompareModel) SetComparing(comparing bool) {
	m.comparing = comparing
}

// SetComparison stores the comparison results. A nil set clears the
// scene, which happens when the plan parameters change.
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// Tick advances the spinner while a comparison runs
func (m *CompareModel) Tick() {
	m.spinner.Next()
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.comparing {
				return m, nil
			}
			return m, m.startComparisonCmd()

		case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
			if !m.comparing {
				m.set = nil
			}
			return m, nil
		}
	}

	return m, nil
}

// startComparisonCmd asks the application to run both strategies
func (m *CompareModel) startComparisonCmd() tea.Cmd {
	return func() tea.Msg {
		return tuimsg.ComparisonRequestedMsg{}
	}
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.comparing {
		return m.renderLoading()
	}

	if m.set != nil {
		return m.renderComparison()
	}

	return m.renderIdle()
}

// renderIdle prompts for a comparison run
func (m *CompareModel) renderIdle() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Compare Strategies"))
	content.WriteString("\n\n")

	bodyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
	content.WriteString(bodyStyle.Render("Runs the current plan through both allocation strategies"))
	content.WriteString("\n")
	content.WriteString(bodyStyle.Render("and lays the results out side by side:"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("  • minimize_days   - fewest benefit days that hold the floor"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render("  • maximize_income - bank as much paid leave income as possible"))
	content.WriteString("\n\n")

	hintStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Italic(true)
	content.WriteString(hintStyle.Render("Press Enter to compare"))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderLoading shows loading state during comparison
func (m *CompareModel) renderLoading() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Comparing Strategies..."))
	content.WriteString("\n\n")

	content.WriteString(m.spinner.Render())
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("This may take a moment..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderComparison shows the comparison results
func (m *CompareModel) renderComparison() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Strategy Comparison"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	results := m.allResults()
	if len(results) == 0 {
		content.WriteString(subtleStyle.Render("No comparison results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	content.WriteString(m.renderComparisonTable(results))
	content.WriteString("\n")

	for _, result := range results {
		nameStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary).Bold(true)
		content.WriteString(nameStyle.Render(result.ScenarioName))
		content.WriteString(subtleStyle.Render("  " + result.Description))
		content.WriteString("\n")
	}

	if len(m.set.Recommendations) > 0 {
		content.WriteString("\n")
		recStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorInfo)
		for _, rec := range m.set.Recommendations {
			content.WriteString(recStyle.Render("→ " + rec))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	help := subtleStyle.Render("Enter re-run • n clear • ESC back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// allResults returns the base result followed by the alternatives
func (m *CompareModel) allResults() []compare.ComparisonResult {
	if m.set == nil || m.set.BaseResult == nil {
		return nil
	}

	results := []compare.ComparisonResult{*m.set.BaseResult}
	results = append(results, m.set.AlternativeResults...)
	return results
}

// renderComparisonTable creates a side-by-side comparison table
func (m *CompareModel) renderComparisonTable(results []compare.ComparisonResult) string {
	var table strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)

	metricWidth := 22
	table.WriteString(headerStyle.Render(padRight("Metric", metricWidth)))
	table.WriteString(" ")

	colWidth := 20
	for _, result := range results {
		shortName := truncate(result.ScenarioName, colWidth)
		table.WriteString(headerStyle.Render(padRight(shortName, colWidth)))
		table.WriteString(" ")
	}
	table.WriteString("\n")

	totalWidth := metricWidth + (len(results) * (colWidth + 1))
	table.WriteString(strings.Repeat("─", totalWidth))
	table.WriteString("\n")

	metrics := []struct {
		label        string
		render       func(compare.ComparisonResult) string
		numeric      func(compare.ComparisonResult) decimal.Decimal
		higherBetter bool
		highlight    bool
	}{
		{
			label: "Total Income",
			render: func(r compare.ComparisonResult) string {
				return tuistyles.FormatCurrency(r.TotalIncome)
			},
			numeric:      func(r compare.ComparisonResult) decimal.Decimal { return r.TotalIncome },
			higherBetter: true,
			highlight:    true,
		},
		{
			label: "Average Month",
			render: func(r compare.ComparisonResult) string {
				return tuistyles.FormatCurrency(r.AverageMonthlyIncome)
			},
			numeric:      func(r compare.ComparisonResult) decimal.Decimal { return r.AverageMonthlyIncome },
			higherBetter: true,
			highlight:    false,
		},
		{
			label: "Lowest Month",
			render: func(r compare.ComparisonResult) string {
				return tuistyles.FormatCurrency(r.LowestMonthIncome)
			},
			numeric:      func(r compare.ComparisonResult) decimal.Decimal { return r.LowestMonthIncome },
			higherBetter: true,
			highlight:    false,
		},
		{
			label: "Days Used",
			render: func(r compare.ComparisonResult) string {
				return fmt.Sprintf("%d", r.DaysUsed)
			},
			numeric:      func(r compare.ComparisonResult) decimal.Decimal { return decimal.NewFromInt(int64(r.DaysUsed)) },
			higherBetter: false,
			highlight:    true,
		},
		{
			label: "Months Below Floor",
			render: func(r compare.ComparisonResult) string {
				return fmt.Sprintf("%d", r.MonthsBelowFloor)
			},
			numeric:      func(r compare.ComparisonResult) decimal.Decimal { return decimal.NewFromInt(int64(r.MonthsBelowFloor)) },
			higherBetter: false,
			highlight:    false,
		},
		{
			label: "Income vs Base",
			render: func(r compare.ComparisonResult) string {
				if r.ScenarioName == m.set.BaseScenarioName {
					return "—"
				}
				return signedCurrency(r.IncomeDiffFromBase)
			},
			numeric:      func(r compare.ComparisonResult) decimal.Decimal { return r.IncomeDiffFromBase },
			higherBetter: true,
			highlight:    false,
		},
	}

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)

	for _, metric := range metrics {
		table.WriteString(subtleStyle.Render(padRight(metric.label, metricWidth)))
		table.WriteString(" ")

		var bestValue decimal.Decimal
		bestValueSet := false
		if metric.highlight {
			for _, result := range results {
				value := metric.numeric(result)
				if !bestValueSet ||
					(metric.higherBetter && value.GreaterThan(bestValue)) ||
					(!metric.higherBetter && value.LessThan(bestValue)) {
					bestValue = value
					bestValueSet = true
				}
			}
		}

		for _, result := range results {
			valueStr := metric.render(result)
			if bestValueSet && metric.numeric(result).Equal(bestValue) {
				valueStr = successStyle.Render(valueStr + " ★")
			}
			table.WriteString(padRight(valueStr, colWidth))
			table.WriteString(" ")
		}
		table.WriteString("\n")
	}

	return table.String()
}

// Helper functions

func padRight(s string, width int) string {
	// lipgloss.Width accounts for ANSI escape codes
	currentWidth := lipgloss.Width(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func signedCurrency(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + tuistyles.FormatCurrency(amount)
	}
	return tuistyles.FormatCurrency(amount)
}

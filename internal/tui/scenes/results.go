package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/components"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	strategy domain.StrategyKind
	result   *domain.PlanResult
	floor    decimal.Decimal
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult updates the plan result to display
func (m *ResultsModel) SetResult(strategy domain.StrategyKind, result *domain.PlanResult, floor decimal.Decimal) {
	m.strategy = strategy
	m.result = result
	m.floor = floor
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Results scene is read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return renderNoResultsState()
	}

	header := renderResultsHeader(m.strategy)
	metrics := m.renderKeyMetrics()
	chart := m.renderIncomeChart()
	monthTable := m.renderMonthTable()
	pools := m.renderPoolUsage()
	warnings := m.renderWarnings()
	help := renderResultsHelp()

	sections := []string{header, "", metrics, "", chart, "", monthTable, "", pools}
	if warnings != "" {
		sections = append(sections, "", warnings)
	}
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNoResultsState renders empty state
func renderNoResultsState() string {
	return `No results to display.

Run a strategy from the Strategies screen (press 's') first.

Press ESC to go back.`
}

// renderResultsHeader renders the header with the strategy that produced the plan
func renderResultsHeader(strategy domain.StrategyKind) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)

	title := titleStyle.Render("Plan Results")
	subtitle := subtitleStyle.Render("Strategy: " + string(strategy))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
	)
}

// renderKeyMetrics renders the key metrics as cards
func (m *ResultsModel) renderKeyMetrics() string {
	result := m.result
	cards := []*components.MetricCard{}

	card := components.NewMetricCard(
		"Total Plan Income",
		tuistyles.FormatCurrency(result.TotalIncome),
	).WithWidth(30)
	cards = append(cards, card)

	card = components.NewMetricCard(
		"Average Month",
		tuistyles.FormatCurrency(result.AverageMonthlyIncome),
	).WithWidth(30)
	cards = append(cards, card)

	usage := result.Usage
	card = components.NewMetricCard(
		"Benefit Days Used",
		fmt.Sprintf("%d", result.TotalDaysUsed()),
	).WithDescription(fmt.Sprintf("%d standard, %d minimum",
		usage.Parent1.StandardUsed+usage.Parent2.StandardUsed,
		usage.Parent1.MinimumUsed+usage.Parent2.MinimumUsed)).
		WithWidth(30)
	cards = append(cards, card)

	below := result.MonthsBelowFloor()
	card = components.NewMetricCard(
		"Months Below Floor",
		fmt.Sprintf("%d", below),
	).WithTrend(below == 0, tuistyles.FormatCurrency(m.floor)+" target").
		WithWidth(30)
	cards = append(cards, card)

	if lowest, ok := m.lowestMonth(); ok {
		card = components.NewMetricCard(
			"Lowest Month",
			tuistyles.FormatCurrency(lowest),
		).WithWidth(30)
		cards = append(cards, card)
	}

	card = components.NewMetricCard(
		"Days Remaining",
		fmt.Sprintf("%d", usage.Parent1.StandardRemaining+usage.Parent2.StandardRemaining+
			usage.Parent1.MinimumRemaining+usage.Parent2.MinimumRemaining),
	).WithWidth(30)
	cards = append(cards, card)

	return components.MetricGrid(cards, 3)
}

// lowestMonth finds the smallest household income across the plan months
func (m *ResultsModel) lowestMonth() (decimal.Decimal, bool) {
	if len(m.result.Months) == 0 {
		return decimal.Zero, false
	}

	lowest := m.result.Months[0].TotalIncome
	for _, month := range m.result.Months[1:] {
		if month.TotalIncome.LessThan(lowest) {
			lowest = month.TotalIncome
		}
	}
	return lowest, true
}

// renderIncomeChart renders the month-by-month income line against the floor
func (m *ResultsModel) renderIncomeChart() string {
	months := m.result.Months
	if len(months) == 0 {
		return ""
	}

	income := make([]float64, len(months))
	floorLine := make([]float64, len(months))
	labels := make([]string, len(months))
	floorValue := m.floor.InexactFloat64()
	for i, month := range months {
		income[i] = month.TotalIncome.InexactFloat64()
		floorLine[i] = floorValue
		labels[i] = month.Key()
	}

	chart := components.NewASCIIChart("Monthly Household Income").
		AddSeries("Income", income, tuistyles.ColorChartLine1).
		AddSeries("Floor", floorLine, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(64, 10)

	return chart.Render()
}

// renderMonthTable renders the first months of the plan timeline
func (m *ResultsModel) renderMonthTable() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Month-by-Month"))
	content.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)

	header := fmt.Sprintf("%-8s  %5s  %12s  %12s  %12s  %13s",
		"Month", "Days", "Benefit", "Top-up", "Salary", "Total")
	content.WriteString(headerStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 74))
	content.WriteString("\n")

	dangerStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)

	maxMonths := 12
	months := m.result.Months
	shown := len(months)
	if shown > maxMonths {
		shown = maxMonths
	}

	for _, month := range months[:shown] {
		row := fmt.Sprintf("%-8s  %5d  %12s  %12s  %12s  %13s",
			month.Key(),
			month.StandardDays+month.MinimumDays,
			tuistyles.FormatCurrency(month.BenefitIncome),
			tuistyles.FormatCurrency(month.TopUpIncome),
			tuistyles.FormatCurrency(month.SalaryIncome),
			tuistyles.FormatCurrency(month.TotalIncome))
		if month.BelowFloor {
			row = dangerStyle.Render(row + " ▼")
		}
		content.WriteString(row)
		content.WriteString("\n")
	}

	if len(months) > shown {
		moreStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString("\n")
		content.WriteString(moreStyle.Render(fmt.Sprintf("... and %d more months", len(months)-shown)))
	}

	return tableStyle.Render(content.String())
}

// renderPoolUsage renders per-caregiver day pool consumption
func (m *ResultsModel) renderPoolUsage() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Day Pools"))
	content.WriteString("\n")

	bars := []struct {
		label string
		usage domain.ParentUsage
	}{
		{"Parent 1", m.result.Usage.Parent1},
		{"Parent 2", m.result.Usage.Parent2},
	}

	for _, bar := range bars {
		total := bar.usage.TotalUsed() + bar.usage.StandardRemaining + bar.usage.MinimumRemaining
		progress := components.NewProgressBar(bar.usage.TotalUsed(), total).
			WithLabel(bar.label).
			WithWidth(40)
		content.WriteString(progress.Render())
		content.WriteString("\n")
	}

	return content.String()
}

// renderWarnings renders plan warnings, if any
func (m *ResultsModel) renderWarnings() string {
	if len(m.result.Warnings) == 0 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorAccent).
		MarginBottom(1)

	warnStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Warnings"))
	content.WriteString("\n")
	for _, warning := range m.result.Warnings {
		content.WriteString(warnStyle.Render("  ⚠ " + warning))
		content.WriteString("\n")
	}

	return content.String()
}

// renderResultsHelp renders keyboard shortcuts
func renderResultsHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("s strategies • p parameters • c compare • ESC back")
}

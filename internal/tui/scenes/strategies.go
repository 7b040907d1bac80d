package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/components"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuimsg"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// strategyChoice pairs an allocation strategy with its presentation
type strategyChoice struct {
	strategy    domain.StrategyKind
	name        string
	tagline     string
	description string
	highlights  []string
}

// strategyChoices lists the selectable allocation strategies in display order
func strategyChoices() []strategyChoice {
	return []strategyChoice{
		{
			strategy:    domain.StrategyMinimizeDays,
			name:        "Minimize days",
			tagline:     "make the pools last",
			description: "Spends the fewest benefit days that keep every month at the income floor",
			highlights: []string{
				"Keeps every month at or above the floor",
				"Preserves unused days in both pools",
				"Best when you want the leave to stretch",
			},
		},
		{
			strategy:    domain.StrategyMaximizeIncome,
			name:        "Maximize income",
			tagline:     "bank every krona",
			description: "Raises the monthly target to bank as much paid leave income as possible",
			highlights: []string{
				"Raises the monthly income target",
				"Front-loads standard days while top-up applies",
				"Best when cash now beats days later",
			},
		},
	}
}

// StrategiesModel represents the strategy selection scene
type StrategiesModel struct {
	spec          *domain.PlanSpec
	choices       []strategyChoice
	selectedIndex int
	width         int
	height        int
}

// NewStrategiesModel creates a new strategies scene model
func NewStrategiesModel() *StrategiesModel {
	return &StrategiesModel{
		choices: strategyChoices(),
	}
}

// SetSpec updates the plan context shown next to the strategy list
func (m *StrategiesModel) SetSpec(spec *domain.PlanSpec) {
	m.spec = spec
}

// SetSize updates the model dimensions
func (m *StrategiesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedStrategy returns the currently highlighted strategy
func (m *StrategiesModel) SelectedStrategy() domain.StrategyKind {
	return m.choices[m.selectedIndex].strategy
}

// Update handles messages for the strategies scene
func (m *StrategiesModel) Update(msg tea.Msg) (*StrategiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
		case "down", "j":
			if m.selectedIndex < len(m.choices)-1 {
				m.selectedIndex++
			}
		case "enter":
			return m, m.selectStrategy()
		case "g":
			m.selectedIndex = 0
		case "G":
			m.selectedIndex = len(m.choices) - 1
		}
	}

	return m, nil
}

// selectStrategy emits a run request for the highlighted strategy
func (m *StrategiesModel) selectStrategy() tea.Cmd {
	strategy := m.choices[m.selectedIndex].strategy
	return func() tea.Msg {
		return tuimsg.StrategySelectedMsg{Strategy: strategy}
	}
}

// View renders the strategies scene
func (m *StrategiesModel) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("Allocation Strategies"))
	content.WriteString("\n\n")

	listPane := m.renderList()
	detailsPane := m.renderDetails()

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listPane,
		"  ",
		detailsPane,
	)
	content.WriteString(panes)
	content.WriteString("\n\n")

	content.WriteString(m.renderStrategiesHelp())

	return content.String()
}

// renderList renders the left pane with the strategy list
func (m *StrategiesModel) renderList() string {
	var content strings.Builder

	listTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(listTitleStyle.Render("Strategies"))
	content.WriteString("\n")

	cards := make([]*components.StrategyCard, len(m.choices))
	for i, choice := range m.choices {
		card := components.NewStrategyCard(choice.name).
			WithTagline(choice.tagline).
			WithDescription(choice.description)
		for _, h := range choice.highlights {
			card = card.AddHighlight(h)
		}
		card = card.SetSelected(i == m.selectedIndex)
		cards[i] = card
	}

	content.WriteString(components.StrategyListCompact(cards, m.selectedIndex))

	return lipgloss.NewStyle().
		Width(40).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Render(content.String())
}

// renderDetails renders the right pane with details of the selected strategy
func (m *StrategiesModel) renderDetails() string {
	choice := m.choices[m.selectedIndex]

	var content strings.Builder

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(nameStyle.Render(choice.name))
	content.WriteString("\n\n")

	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
	content.WriteString(descStyle.Render(choice.description))
	content.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, h := range choice.highlights {
		content.WriteString(labelStyle.Render("• " + h))
		content.WriteString("\n")
	}

	if m.spec != nil {
		content.WriteString("\n")
		valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

		row := func(label, value string) {
			content.WriteString(labelStyle.Render(label + ": "))
			content.WriteString(valueStyle.Render(value))
			content.WriteString("\n")
		}

		row("Plan start", m.spec.StartDate.Format("2006-01-02"))
		row("Total leave", m.spec.TotalMonths.String()+" months")
		row("Income floor", tuistyles.FormatCurrency(m.spec.IncomeFloor))
		row("Cadence", fmt.Sprintf("%d days/week", m.spec.DaysPerWeek))
	}

	content.WriteString("\n")
	hintStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Italic(true)
	content.WriteString(hintStyle.Render("Press Enter to run this strategy"))

	return lipgloss.NewStyle().
		Width(60).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Render(content.String())
}

// renderStrategiesHelp renders keyboard shortcuts for this scene
func (m *StrategiesModel) renderStrategiesHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return helpStyle.Render("↑/k up • ↓/j down • Enter run • g top • G bottom • ESC back")
}

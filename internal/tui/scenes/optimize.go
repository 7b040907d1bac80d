package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/components"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuimsg"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// OptimizeMode represents the stage of the optimizer workflow
type OptimizeMode int

const (
	ModeSelectTarget OptimizeMode = iota
	ModeSetTarget
	ModeShowResults
)

// targetOption pairs a search axis with its presentation
type targetOption struct {
	target      optimize.OptimizationTarget
	name        string
	description string
}

// targetOptions lists the selectable search axes in display order
func targetOptions() []targetOption {
	return []targetOption{
		{
			target:      optimize.OptimizeSplit,
			name:        "Leave split",
			description: "Search the month split between both caregivers",
		},
		{
			target:      optimize.OptimizeFloor,
			name:        "Income floor",
			description: "Find the highest floor the plan can hold for its full length",
		},
		{
			target:      optimize.OptimizeDaysPerWeek,
			name:        "Leave cadence",
			description: "Try each days-per-week cadence and keep the best",
		},
	}
}

// OptimizeModel represents the what-if solver scene
type OptimizeModel struct {
	spec              domain.PlanSpec
	hasSpec           bool
	targets           []targetOption
	selectedTarget    int
	mode              OptimizeMode
	targetIncomeInput textinput.Model
	optimizing        bool
	spinner           *components.Spinner
	result            *optimize.OptimizationResult
	width             int
	height            int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 45000"
	ti.CharLimit = 10
	ti.Width = 20

	return &OptimizeModel{
		targets:           targetOptions(),
		selectedTarget:    0,
		mode:              ModeSelectTarget,
		targetIncomeInput: ti,
		spinner:           components.NewSpinner().WithMessage("Searching configurations..."),
	}
}

// SetSpec updates the plan the solver will start from
func (m *OptimizeModel) SetSpec(spec domain.PlanSpec) {
	m.spec = spec
	m.hasSpec = true
	if !m.optimizing {
		m.mode = ModeSelectTarget
		m.result = nil
	}
}

// SetOptimizing toggles the in-flight state
func (m *OptimizeModel) SetOptimizing(optimizing bool) {
	m.optimizing = optimizing
}

// SetResult stores the solver outcome and switches to the results view
func (m *OptimizeModel) SetResult(result *optimize.OptimizationResult) {
	m.result = result
	m.optimizing = false
	m.mode = ModeShowResults
	m.targetIncomeInput.Blur()
}

// CapturingInput reports whether the scene is reading free text, in
// which case global shortcuts must stay out of the way
func (m *OptimizeModel) CapturingInput() bool {
	return m.mode == ModeSetTarget && !m.optimizing
}

// Tick advances the spinner while the solver runs
func (m *OptimizeModel) Tick() {
	m.spinner.Next()
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if m.optimizing {
		return m, nil
	}

	switch m.mode {
	case ModeSelectTarget:
		return m.updateTargetSelection(msg)
	case ModeSetTarget:
		return m.updateTargetInput(msg)
	case ModeShowResults:
		return m.updateResults(msg)
	}
	return m, nil
}

// updateTargetSelection handles search axis selection
func (m *OptimizeModel) updateTargetSelection(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selectedTarget > 0 {
				m.selectedTarget--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selectedTarget < len(m.targets)-1 {
				m.selectedTarget++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			m.mode = ModeSetTarget
			m.targetIncomeInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// updateTargetInput handles the optional target income entry
func (m *OptimizeModel) updateTargetInput(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			raw := strings.TrimSpace(m.targetIncomeInput.Value())
			if raw == "" {
				return m, m.startOptimizationCmd(optimize.GoalMaximizeIncome, nil)
			}
			if target, err := strconv.ParseFloat(raw, 64); err == nil && target > 0 {
				value := decimal.NewFromFloat(target)
				return m, m.startOptimizationCmd(optimize.GoalMatchIncome, &value)
			}
			return m, nil

		case tea.KeyEsc:
			m.mode = ModeSelectTarget
			m.targetIncomeInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.targetIncomeInput, cmd = m.targetIncomeInput.Update(msg)
	return m, cmd
}

// updateResults handles the results view
func (m *OptimizeModel) updateResults(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
			m.mode = ModeSelectTarget
			m.result = nil
			m.targetIncomeInput.SetValue("")
			return m, nil
		}
	}
	return m, nil
}

// startOptimizationCmd asks the application to run the solver
func (m *OptimizeModel) startOptimizationCmd(goal optimize.OptimizationGoal, targetIncome *decimal.Decimal) tea.Cmd {
	target := m.targets[m.selectedTarget].target
	return func() tea.Msg {
		return tuimsg.OptimizationRequestedMsg{
			Target:       target,
			Goal:         goal,
			TargetIncome: targetIncome,
		}
	}
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	if m.optimizing {
		return m.renderOptimizing()
	}

	switch m.mode {
	case ModeSelectTarget:
		return m.renderTargetSelection()
	case ModeSetTarget:
		return m.renderTargetInput()
	case ModeShowResults:
		return m.renderResults()
	}

	return ""
}

// renderTargetSelection shows the search axis picker
func (m *OptimizeModel) renderTargetSelection() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("What-If Solver"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("Pick which parameter the solver should search."))
	content.WriteString("\n\n")

	if !m.hasSpec {
		content.WriteString(tuistyles.ErrorStyle.Render("No plan loaded"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	content.WriteString(subtleStyle.Render("Use ↑/↓ to navigate • Enter to select"))
	content.WriteString("\n\n")

	cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)

	for idx, option := range m.targets {
		var line strings.Builder

		if idx == m.selectedTarget {
			line.WriteString(cursorStyle.Render("❯ "))
			line.WriteString(highlightStyle.Render(option.name))
		} else {
			line.WriteString("  ")
			line.WriteString(option.name)
		}
		line.WriteString(subtleStyle.Render("  " + option.description))

		content.WriteString(line.String())
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(content.String())
}

// renderTargetInput shows the optional target income prompt
func (m *OptimizeModel) renderTargetInput() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Set Target Monthly Income"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("Search axis: "))
	content.WriteString(m.targets[m.selectedTarget].name)
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render("Current floor: "))
	content.WriteString(tuistyles.FormatCurrency(m.spec.IncomeFloor))
	content.WriteString("\n\n")

	content.WriteString(subtleStyle.Render("Enter a monthly net income to match, or leave blank"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render("to search for the most total income:"))
	content.WriteString("\n\n")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(0, 1)

	content.WriteString(inputStyle.Render("kr " + m.targetIncomeInput.View()))
	content.WriteString("\n\n")

	help := subtleStyle.Render("Enter to solve • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderOptimizing shows solver progress
func (m *OptimizeModel) renderOptimizing() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Solving..."))
	content.WriteString("\n\n")

	content.WriteString(m.spinner.Render())
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("Each candidate runs a full plan calculation..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderResults shows the solver outcome
func (m *OptimizeModel) renderResults() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Solver Results"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	if m.result == nil {
		content.WriteString(subtleStyle.Render("No results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	if m.result.Success {
		content.WriteString(successStyle.Render("✓ " + m.result.ConvergenceInfo))
	} else {
		content.WriteString(warnStyle.Render("⚠ " + m.result.ConvergenceInfo))
	}
	content.WriteString("\n")
	content.WriteString(labelStyle.Render(fmt.Sprintf("%d candidate plans evaluated", m.result.Iterations)))
	content.WriteString("\n\n")

	content.WriteString(titleStyle.Render("Best Configuration"))
	content.WriteString("\n\n")

	if m.result.OptimalMonthsParent1 != nil && m.result.OptimalMonthsParent2 != nil {
		content.WriteString(labelStyle.Render("Leave split: "))
		content.WriteString(successStyle.Render(fmt.Sprintf("%s / %s months",
			m.result.OptimalMonthsParent1.String(), m.result.OptimalMonthsParent2.String())))
		content.WriteString("\n")
	}
	if m.result.OptimalFloor != nil {
		content.WriteString(labelStyle.Render("Income floor: "))
		content.WriteString(successStyle.Render(tuistyles.FormatCurrency(*m.result.OptimalFloor)))
		content.WriteString("\n")
	}
	if m.result.OptimalDaysPerWeek != nil {
		content.WriteString(labelStyle.Render("Leave cadence: "))
		content.WriteString(successStyle.Render(fmt.Sprintf("%d days/week", *m.result.OptimalDaysPerWeek)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Total income: "))
	content.WriteString(tuistyles.FormatCurrency(m.result.TotalIncome))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Average month: "))
	content.WriteString(tuistyles.FormatCurrency(m.result.AverageMonthlyIncome))
	if m.result.Request.Constraints.TargetIncome != nil {
		diff := m.result.AverageMonthlyIncome.Sub(*m.result.Request.Constraints.TargetIncome)
		diffStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
		if diff.IsNegative() {
			diffStyle = lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
		}
		content.WriteString(" ")
		content.WriteString(diffStyle.Render(fmt.Sprintf("(%s vs target)", signedCurrency(diff))))
	}
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Benefit days used: "))
	content.WriteString(fmt.Sprintf("%d", m.result.DaysUsed))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Months below floor: "))
	content.WriteString(fmt.Sprintf("%d", m.result.MonthsBelowFloor))
	content.WriteString("\n\n")

	help := subtleStyle.Render("n for a new search • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

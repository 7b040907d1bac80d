package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/components"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuimsg"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// Slider order in the parameters scene.
const (
	sliderTotalMonths = iota
	sliderMonthsParent1
	sliderMonthsParent2
	sliderIncomeFloor
	sliderDaysPerWeek
	sliderCount
)

// ParametersModel represents the parameter editing scene
type ParametersModel struct {
	spec          domain.PlanSpec
	hasSpec       bool
	sliders       []*components.ParameterSlider
	focusedSlider int
	width         int
	height        int
	modified      bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{
		sliders:       []*components.ParameterSlider{},
		focusedSlider: 0,
		modified:      false,
	}
}

// SetSpec replaces the plan being edited. The copy kept here is the
// reset point for 'r'.
func (m *ParametersModel) SetSpec(spec domain.PlanSpec) {
	m.spec = spec
	m.hasSpec = true
	m.modified = false
	m.buildSliders()
}

// buildSliders creates the parameter sliders from the current plan
func (m *ParametersModel) buildSliders() {
	m.sliders = make([]*components.ParameterSlider, sliderCount)

	m.sliders[sliderTotalMonths] = components.NewParameterSlider(
		"Total Leave", m.spec.TotalMonths.InexactFloat64(), 1, 24, 0.5).
		WithUnit(" months").
		WithFormat("%.1f").
		WithWidth(40).
		WithDescription("Length of the leave window from the start date")

	m.sliders[sliderMonthsParent1] = components.NewParameterSlider(
		m.spec.Parent1.Name+" Months", m.spec.PreferredMonths1.InexactFloat64(), 0, 24, 0.5).
		WithUnit(" months").
		WithFormat("%.1f").
		WithWidth(40).
		WithDescription("Preferred share of the leave taken by " + m.spec.Parent1.Name)

	m.sliders[sliderMonthsParent2] = components.NewParameterSlider(
		m.spec.Parent2.Name+" Months", m.spec.PreferredMonths2.InexactFloat64(), 0, 24, 0.5).
		WithUnit(" months").
		WithFormat("%.1f").
		WithWidth(40).
		WithDescription("Preferred share of the leave taken by " + m.spec.Parent2.Name)

	m.sliders[sliderIncomeFloor] = components.NewParameterSlider(
		"Income Floor", m.spec.IncomeFloor.InexactFloat64(), 0, 80000, 1000).
		WithUnit(" kr").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("Lowest acceptable household net income per month")

	m.sliders[sliderDaysPerWeek] = components.NewParameterSlider(
		"Leave Cadence", float64(m.spec.DaysPerWeek), 1, 7, 1).
		WithUnit(" days/week").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("Benefit days claimed per week of leave")

	m.focusedSlider = 0
	m.sliders[0].SetFocused(true)
}

// editedSpec builds a plan from the current slider values
func (m *ParametersModel) editedSpec() domain.PlanSpec {
	spec := m.spec
	spec.TotalMonths = decimal.NewFromFloat(m.sliders[sliderTotalMonths].Value)
	spec.PreferredMonths1 = decimal.NewFromFloat(m.sliders[sliderMonthsParent1].Value)
	spec.PreferredMonths2 = decimal.NewFromFloat(m.sliders[sliderMonthsParent2].Value)
	spec.IncomeFloor = decimal.NewFromFloat(m.sliders[sliderIncomeFloor].Value)
	spec.DaysPerWeek = int(m.sliders[sliderDaysPerWeek].Value)
	return spec
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocusUp()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocusDown()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
		return m, m.adjustFocused(-1)

	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
		return m, m.adjustFocused(+1)

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.calculatePlan()

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		// Reset to the values from the last committed plan
		m.buildSliders()
		m.modified = false
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		if m.modified && m.hasSpec {
			return m, m.savePlan()
		}
		return m, nil
	}

	return m, nil
}

// moveFocusUp moves focus to previous slider
func (m *ParametersModel) moveFocusUp() {
	if m.focusedSlider > 0 {
		m.sliders[m.focusedSlider].SetFocused(false)
		m.focusedSlider--
		m.sliders[m.focusedSlider].SetFocused(true)
	}
}

// moveFocusDown moves focus to next slider
func (m *ParametersModel) moveFocusDown() {
	if m.focusedSlider < len(m.sliders)-1 {
		m.sliders[m.focusedSlider].SetFocused(false)
		m.focusedSlider++
		m.sliders[m.focusedSlider].SetFocused(true)
	}
}

// adjustFocused nudges the focused slider and reports the change upward
func (m *ParametersModel) adjustFocused(direction int) tea.Cmd {
	if m.focusedSlider >= len(m.sliders) {
		return nil
	}

	slider := m.sliders[m.focusedSlider]
	if direction < 0 {
		slider.Decrement()
	} else {
		slider.Increment()
	}
	m.modified = true

	parameter := slider.Label
	value := slider.Value
	return func() tea.Msg {
		return tuimsg.ParameterChangedMsg{
			Parameter: parameter,
			Value:     value,
		}
	}
}

// calculatePlan asks the application to validate and run the edited plan
func (m *ParametersModel) calculatePlan() tea.Cmd {
	if !m.hasSpec {
		return nil
	}

	spec := m.editedSpec()
	return func() tea.Msg {
		return tuimsg.CalculationRequestedMsg{Spec: spec}
	}
}

// savePlan asks the application to write the edited plan to disk
func (m *ParametersModel) savePlan() tea.Cmd {
	if !m.hasSpec {
		return nil
	}

	spec := m.editedSpec()
	return func() tea.Msg {
		return tuimsg.SavePlanMsg{
			Spec:     spec,
			Filename: "plan_tuned.yaml",
		}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if !m.hasSpec {
		return renderNoPlanState()
	}

	header := renderParameterHeader()
	slidersView := renderSliders(m.sliders)
	status := renderParameterStatus(m.modified)
	help := renderParameterHelp()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		slidersView,
		"",
		status,
		"",
		help,
	)
}

// renderNoPlanState renders empty state
func renderNoPlanState() string {
	return `No plan loaded.

The planner needs a plan file before parameters can be edited.

Press ESC to return to home.`
}

// renderParameterHeader renders the scene title
func renderParameterHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	hint := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true).
		Render("Adjustments apply once Enter recalculates the plan")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Edit Parameters"),
		hint,
	)
}

// renderSliders renders all parameter sliders
func renderSliders(sliders []*components.ParameterSlider) string {
	if len(sliders) == 0 {
		return "No adjustable parameters."
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(2, 4).
		Width(70)

	var rendered []string
	for _, slider := range sliders {
		rendered = append(rendered, slider.Render())
		rendered = append(rendered, "") // Spacer
	}

	content := strings.Join(rendered, "\n")
	return containerStyle.Render(content)
}

// renderParameterStatus renders modification status
func renderParameterStatus(modified bool) string {
	if !modified {
		return ""
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Bold(true)

	return statusStyle.Render("⚠ Modified - Press Enter to calculate or 'r' to reset")
}

// renderParameterHelp renders keyboard shortcuts
func renderParameterHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("↑/↓ navigate • ←/→ adjust • Enter calculate • r reset • Ctrl+S save • ESC back")
}

// Package scenes contains the per-screen models of the interactive planner.
// Each scene owns its local UI state and sends requests up to the
// application model through tuimsg.
package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	spec   *domain.PlanSpec
	rules  domain.BenefitRules
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetPlan updates the household plan shown on the dashboard
func (m *HomeModel) SetPlan(spec *domain.PlanSpec, rules domain.BenefitRules) {
	m.spec = spec
	m.rules = rules
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is passive - navigation handled by parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	if m.spec == nil {
		return m.renderLoading()
	}

	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("Föräldra-Boost - Parental Leave Planner"))
	content.WriteString("\n\n")

	content.WriteString(m.renderHousehold())
	content.WriteString("\n\n")

	content.WriteString(m.renderPlanWindow())
	content.WriteString("\n\n")

	content.WriteString(m.renderPools())
	content.WriteString("\n\n")

	content.WriteString(m.renderQuickActions())
	content.WriteString("\n\n")

	content.WriteString(m.renderHelp())

	return tuistyles.BorderStyle.Render(content.String())
}

// renderLoading shows loading state
func (m *HomeModel) renderLoading() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Föräldra-Boost - Parental Leave Planner"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("Loading plan..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderHousehold shows both caregivers' income situation
func (m *HomeModel) renderHousehold() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("📋 Household"))
	content.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	for _, p := range []domain.ParentProfile{m.spec.Parent1, m.spec.Parent2} {
		content.WriteString(labelStyle.Render("  • "))
		content.WriteString(valueStyle.Render(p.Name))
		content.WriteString(labelStyle.Render(fmt.Sprintf("  %s/month gross, %s net",
			tuistyles.FormatCurrency(p.MonthlyIncome),
			tuistyles.FormatCurrency(p.NetMonthlyIncome()))))
		if p.HasCollectiveAgreement {
			content.WriteString(labelStyle.Render(", employer top-up"))
		}
		content.WriteString("\n")
	}

	content.WriteString(labelStyle.Render("  Combined net while working: "))
	content.WriteString(valueStyle.Render(tuistyles.FormatCurrency(m.spec.HouseholdNetMonthly())))
	content.WriteString("\n")

	return content.String()
}

// renderPlanWindow shows the plan timeline parameters
func (m *HomeModel) renderPlanWindow() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("📅 Plan Window"))
	content.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	row := func(label, value string) {
		content.WriteString(labelStyle.Render("  " + label + ": "))
		content.WriteString(valueStyle.Render(value))
		content.WriteString("\n")
	}

	row("Start", m.spec.StartDate.Format("2006-01-02"))
	row("Total leave", m.spec.TotalMonths.String()+" months")
	row("Preferred split", fmt.Sprintf("%s / %s months (%s / %s)",
		m.spec.PreferredMonths1.String(), m.spec.PreferredMonths2.String(),
		m.spec.Parent1.Name, m.spec.Parent2.Name))
	row("Income floor", tuistyles.FormatCurrency(m.spec.IncomeFloor)+"/month")
	row("Leave cadence", fmt.Sprintf("%d days/week", m.spec.DaysPerWeek))

	return content.String()
}

// renderPools shows the statutory day pools the plan draws from
func (m *HomeModel) renderPools() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("🗓 Benefit Day Pools"))
	content.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	content.WriteString(labelStyle.Render("  Standard tier: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d days", m.rules.StandardDays)))
	content.WriteString(labelStyle.Render(fmt.Sprintf(" (%d reserved per parent)", m.rules.ReservedDays)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("  Minimum tier: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d days", m.rules.MinimumDays)))
	content.WriteString(labelStyle.Render(fmt.Sprintf(" at %s/day", tuistyles.FormatCurrency(m.rules.MinimumRate))))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("  Double days at start: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.rules.DoubleDays)))
	content.WriteString("\n")

	return content.String()
}

// renderQuickActions shows available navigation shortcuts
func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("⚡ Quick Actions"))
	content.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	actions := []struct {
		key  string
		desc string
	}{
		{"s", "Pick an allocation strategy and run it"},
		{"p", "Adjust months, split, floor and cadence"},
		{"c", "Compare both strategies side by side"},
		{"o", "Search for the best split, floor or cadence"},
		{"r", "View the latest plan result"},
		{"?", "Show help"},
	}

	for _, action := range actions {
		content.WriteString("  ")
		content.WriteString(keyStyle.Render(action.key))
		content.WriteString(descStyle.Render("  " + action.desc))
		content.WriteString("\n")
	}

	return content.String()
}

// renderHelp shows getting started tips
func (m *HomeModel) renderHelp() string {
	var content strings.Builder

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)

	content.WriteString(subtleStyle.Render("💡 Tip: Press 's' to pick a strategy and get started"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render("    Press '?' at any time for help"))

	return content.String()
}

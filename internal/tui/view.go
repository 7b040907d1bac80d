package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneStrategies:
		content = m.strategiesModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	if m.calculating {
		content = m.renderCalculating()
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Title (2) + status (1) + padding (1)
	contentHeight := m.height - 4

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Föräldra-Boost - Parental Leave Planner")

	breadcrumb := ""
	if m.selectedStrategy.Valid() {
		breadcrumb = SubtitleStyle.Render(
			fmt.Sprintf("%s / %s", m.currentScene.String(), m.selectedStrategy),
		)
	} else {
		breadcrumb = SubtitleStyle.Render(m.currentScene.String())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		breadcrumb,
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("s", "strategies"),
		formatShortcut("p", "parameters"),
		formatShortcut("c", "compare"),
		formatShortcut("o", "optimize"),
		formatShortcut("r", "results"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	// Right-align transient feedback, falling back to the plan file name
	right := m.statusMessage
	if right == "" && m.file != nil {
		right = filepath.Base(m.planPath)
	}
	if right != "" {
		rendered := SubtitleStyle.Render(right)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(rendered) - 2
		if width > 0 {
			statusText = statusText + strings.Repeat(" ", width) + rendered
		}
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the start-up loading screen
func (m Model) renderLoading() string {
	content := BorderStyle.Render(
		fmt.Sprintf("⠋ Loading plan %s...", m.planPath),
	)
	return m.renderApp(content)
}

// renderCalculating renders the in-flight engine run overlay
func (m Model) renderCalculating() string {
	strategy := string(m.selectedStrategy)
	if strategy == "" {
		strategy = "plan"
	}
	return BorderStyle.Render(
		fmt.Sprintf("⠋ Calculating %s...", strategy),
	)
}

// renderError renders an error message
func (m Model) renderError() string {
	errorMsg := "An error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", errorMsg),
	)

	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
Föräldra-Boost - Parental Leave Planner

KEYBOARD SHORTCUTS:
  h        Navigate to Home
  s        Navigate to Strategies
  p        Navigate to Parameters
  c        Navigate to Compare
  o        Navigate to Optimize
  r        Navigate to Results
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

STRATEGIES:
  Pick an allocation strategy and press Enter to run it.
  minimize_days spends the fewest benefit days that keep
  every month at the income floor; maximize_income banks
  as much paid leave income as the day pools allow.

PARAMETERS:
  Arrow keys move between sliders, ←/→ adjust the focused
  value, Enter recalculates with the edited household,
  r restores the loaded plan, Ctrl+S saves it to a file.

COMPARE & OPTIMIZE:
  Compare lines both strategies up side by side. Optimize
  searches one input (split, floor or days/week) for the
  best outcome, optionally matching a target income.
`

	return BorderStyle.Render(helpText)
}

// Package tuistyles holds the shared color palette and lipgloss styles for
// the interactive planner. Scenes and components import this package rather
// than the tui root so the style definitions never create an import cycle.
package tuistyles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	ColorPrimary    = lipgloss.Color("#7C3AED") // headings, selection
	ColorSecondary  = lipgloss.Color("#2DD4BF") // secondary accents
	ColorAccent     = lipgloss.Color("#F59E0B") // highlights, stars
	ColorSuccess    = lipgloss.Color("#22C55E")
	ColorDanger     = lipgloss.Color("#EF4444")
	ColorInfo       = lipgloss.Color("#38BDF8")
	ColorBackground = lipgloss.Color("#1E1E2E")
	ColorForeground = lipgloss.Color("#CDD6F4")
	ColorMuted      = lipgloss.Color("#6C7086")
	ColorBorder     = lipgloss.Color("#45475A")

	ColorChartLine1 = lipgloss.Color("#38BDF8")
	ColorChartLine2 = lipgloss.Color("#F472B6")
	ColorChartLine3 = lipgloss.Color("#A6E3A1")
	ColorChartLine4 = lipgloss.Color("#F9E2AF")
)

// Application chrome
var (
	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)
)

// Containers and lists
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)
)

// Metric cards
var (
	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Bold(true)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)
)

// Parameter sliders
var (
	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	SliderThumbStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)
)

// Help and feedback
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Tables
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// MetricTrendStyle returns the style for a trend annotation.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow for a trend direction.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "↑"
	}
	return "↓"
}

// FormatCurrency renders a kronor amount for display: whole kr, thin-space
// thousands grouping.
func FormatCurrency(amount decimal.Decimal) string {
	v := amount.Round(0).IntPart()
	negative := v < 0
	if negative {
		v = -v
	}

	s := fmt.Sprintf("%d", v)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ") + " kr"
	if negative {
		return "-" + out
	}
	return out
}

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuistyles"
)

// StrategyCard displays a compact allocation-strategy overview
type StrategyCard struct {
	Name        string
	Description string
	Tagline     string
	Highlights  []string // Key parameters/metrics
	IsSelected  bool
	Width       int
}

// NewStrategyCard creates a new strategy card
func NewStrategyCard(name string) *StrategyCard {
	return &StrategyCard{
		Name:       name,
		Highlights: []string{},
		Width:      50,
	}
}

// WithDescription adds a description
func (s *StrategyCard) WithDescription(desc string) *StrategyCard {
	s.Description = desc
	return s
}

// WithTagline sets the one-line goal summary
func (s *StrategyCard) WithTagline(tagline string) *StrategyCard {
	s.Tagline = tagline
	return s
}

// AddHighlight adds a key metric or parameter
func (s *StrategyCard) AddHighlight(highlight string) *StrategyCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *StrategyCard) SetSelected(selected bool) *StrategyCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *StrategyCard) WithWidth(width int) *StrategyCard {
	s.Width = width
	return s
}

// Render returns the styled strategy card
func (s *StrategyCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(s.Name))
	content.WriteString("\n")

	if s.Tagline != "" {
		taglineStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(taglineStyle.Render("→ " + s.Tagline))
		content.WriteString("\n")
	}

	if s.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground)
		content.WriteString(descStyle.Render(s.Description))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		highlightStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted)
		for _, h := range s.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	var cardStyle lipgloss.Style
	if s.IsSelected {
		cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tuistyles.ColorPrimary).
			Padding(1, 2).
			Width(s.Width)
	} else {
		cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tuistyles.ColorBorder).
			Padding(1, 2).
			Width(s.Width)
	}

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a compact single-line version
func (s *StrategyCard) RenderCompact() string {
	var parts []string

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	parts = append(parts, nameStyle.Render(s.Name))

	if s.Tagline != "" {
		taglineStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted)
		parts = append(parts, taglineStyle.Render("("+s.Tagline+")"))
	}

	if len(s.Highlights) > 0 {
		highlightStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted)
		parts = append(parts, highlightStyle.Render("• "+s.Highlights[0]))
	}

	return strings.Join(parts, " ")
}

// StrategyList renders a list of strategy cards
func StrategyList(cards []*StrategyCard) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No strategies available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// StrategyListCompact renders a compact list for selection menus
func StrategyListCompact(cards []*StrategyCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No strategies available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle

		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}

		rendered[i] = style.Render(fmt.Sprintf("%s%s", prefix, card.RenderCompact()))
	}

	return strings.Join(rendered, "\n")
}

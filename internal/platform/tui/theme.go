package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the HUD styles drawn around the board.
type Theme struct {
	Title       lipgloss.Style
	ScoreLabel  lipgloss.Style
	ScoreValue  lipgloss.Style
	ListHeading lipgloss.Style
	ListEntry   lipgloss.Style
	ListEmpty   lipgloss.Style
	Panel       lipgloss.Style
	Prompt      lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		ScoreLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ScoreValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		ListHeading: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("245")),
		ListEntry:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		ListEmpty:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		Panel:       lipgloss.NewStyle().PaddingLeft(2),
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

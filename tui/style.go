package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	base    lipgloss.Style
	clock   lipgloss.Style
	goal    lipgloss.Style
	hint    lipgloss.Style
	warning lipgloss.Style
}

func newStyles() styles {
	return styles{
		base: lipgloss.NewStyle().Padding(1, 2),
		clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "252"}),
		goal: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}),
		hint: lipgloss.NewStyle().
			Faint(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "204"}),
	}
}

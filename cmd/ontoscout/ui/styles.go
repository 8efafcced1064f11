// Package ui provides the visual styling for the ontoscout CLI.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors shared by all commands
var (
	Success = lipgloss.Color("#8BC34A") // valid fields, strong matches
	Warning = lipgloss.Color("#FFC107") // middling scores, lint findings
	Danger  = lipgloss.Color("#E53935") // invalid fields, errors
	Info    = lipgloss.Color("#2196F3") // headings
	Muted   = lipgloss.Color("#808A9D") // secondary detail
)

// Styles holds the lipgloss styles used across commands and the
// interactive explorer.
type Styles struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Field    lipgloss.Style
	Optional lipgloss.Style
	Valid    lipgloss.Style
	Invalid  lipgloss.Style
	Score    lipgloss.Style
	LowScore lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the standard ontoscout styling.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Info),
		Prompt:   lipgloss.NewStyle().Foreground(Info),
		Field:    lipgloss.NewStyle().Foreground(Success),
		Optional: lipgloss.NewStyle().Foreground(Muted),
		Valid:    lipgloss.NewStyle().Foreground(Success),
		Invalid:  lipgloss.NewStyle().Foreground(Danger),
		Score:    lipgloss.NewStyle().Foreground(Success).Bold(true),
		LowScore: lipgloss.NewStyle().Foreground(Warning),
		Error:    lipgloss.NewStyle().Foreground(Danger).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(Muted).Italic(true),
	}
}

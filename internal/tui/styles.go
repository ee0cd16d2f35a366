package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#64748B")
	colorError   = lipgloss.Color("#E53935")
	colorAccent  = lipgloss.Color("#22D3EE")
)

// Styles groups the lipgloss styles of the form and report panes
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	FocusLabel  lipgloss.Style
	Suggestion  lipgloss.Style
	Highlighted lipgloss.Style
	Panel       lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Locked      lipgloss.Style
}

// DefaultStyles returns the default theme
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Label:       lipgloss.NewStyle().Width(12).Foreground(colorMuted),
		FocusLabel:  lipgloss.NewStyle().Width(12).Bold(true).Foreground(colorPrimary),
		Suggestion:  lipgloss.NewStyle().PaddingLeft(2),
		Highlighted: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(colorAccent).SetString("›"),
		Panel:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).MarginLeft(12),
		Error:       lipgloss.NewStyle().Foreground(colorError),
		Help:        lipgloss.NewStyle().Foreground(colorMuted),
		Locked:      lipgloss.NewStyle().Foreground(colorAccent),
	}
}

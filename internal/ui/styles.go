package ui

import "github.com/charmbracelet/lipgloss"

// StyleManager encapsulates the browser styles
type StyleManager struct {
	Title    lipgloss.Style
	Summary  lipgloss.Style
	Pass     lipgloss.Style
	Fail     lipgloss.Style
	Warn     lipgloss.Style
	Check    lipgloss.Style
	Message  lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Divider  lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:    lipgloss.NewStyle().Bold(true),
		Summary:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Check:    lipgloss.NewStyle().Bold(true),
		Message:  lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Divider:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

var styles = DefaultStyles()

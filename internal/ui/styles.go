package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	versionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	focusStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	footerStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

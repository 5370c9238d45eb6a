package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk       = lipgloss.Color("#ECEFF4")
	ColorDim       = lipgloss.Color("#6B7280")
	ColorAccent    = lipgloss.Color("#F2A65A")
	ColorAccentAlt = lipgloss.Color("#C97B41")
	ColorSuccess   = lipgloss.Color("#9CCB86")
	ColorWarn      = lipgloss.Color("#E5C07B")
)

var (
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccentAlt)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorWarn)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
)

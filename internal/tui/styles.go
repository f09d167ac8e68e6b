package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#AF2F2F")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("#FF5F5F")
	colorDone   = lipgloss.Color("#5FAF87")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	toggleAllStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	toggleAllActiveStyle = lipgloss.NewStyle().Foreground(colorDone).Bold(true)

	cursorStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	taskStyle      = lipgloss.NewStyle()
	doneTaskStyle  = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	footerStyle    = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorAccent)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1).
			MarginTop(1)

	warningStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)

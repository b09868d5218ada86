package picker

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7C3AED")
	subtle = lipgloss.Color("#6C6C6C")
	bright = lipgloss.Color("#E8E8E8")
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(accent).
	Padding(0, 1)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1).
			MarginRight(1)

	cardCursorStyle = cardStyle.
			BorderForeground(accent)

	labelStyle = lipgloss.NewStyle().
			Foreground(bright).
			Bold(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(subtle)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtle).
			MarginTop(1)
)

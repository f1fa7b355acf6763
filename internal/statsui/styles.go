package statsui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("#C89A3A")
	colorBorder = lipgloss.Color("#4A4A4A")
	colorBright = lipgloss.Color("#F0F0F0")
	colorMuted  = lipgloss.Color("#6E6E6E")
	colorGood   = lipgloss.Color("#52C41A")
	colorBad    = lipgloss.Color("#FF4D4F")
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B0B0B0")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(colorBorder)
	activeTabStyle = tabStyle.
			Foreground(colorBright).
			Bold(true).
			BorderForeground(colorAccent)

	headerStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorBad)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(colorBorder)
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)

	tableTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	upStyle        = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	downStyle      = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	barStyle       = lipgloss.NewStyle().Foreground(colorAccent).Background(colorAccent)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(colorAccent).
			Padding(1, 2)
)

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/config"
)

type styles struct {
	correct        lipgloss.Style
	incorrect      lipgloss.Style
	pending        lipgloss.Style
	currentWord    lipgloss.Style
	currentCorrect lipgloss.Style
	cursor         lipgloss.Style
	footer         lipgloss.Style
	title          lipgloss.Style
	panel          lipgloss.Style
	value          lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Untyped))
	current := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current))
	return styles{
		correct:        lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Correct)),
		incorrect:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Incorrect)),
		pending:        pending,
		currentWord:    current,
		currentCorrect: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Correct)).Bold(true),
		cursor:         current.Underline(true),
		footer:         lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)),
		title:          lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current)).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Muted)).
			Padding(0, 1),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Correct)),
	}
}

func (s styles) forStatus(st status) lipgloss.Style {
	switch st {
	case statusCorrect:
		return s.correct
	case statusIncorrect, statusCurrentIncorrect, statusOvertyped:
		return s.incorrect
	case statusCurrentCorrect:
		return s.currentCorrect
	case statusCurrentUntyped:
		return s.currentWord
	case statusCursor:
		return s.cursor
	default:
		return s.pending
	}
}

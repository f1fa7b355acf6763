package statsui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	minModalWidth = 40
	maxModalWidth = 80
	minInputWidth = 10
)

func modalWidth(termWidth int) int {
	return max(minModalWidth, min(termWidth-4, maxModalWidth))
}

// modalInnerWidth is the modal width less its border and padding.
func modalInnerWidth(termWidth int) int {
	return max(minInputWidth, modalWidth(termWidth)-modalStyle.GetHorizontalFrameSize())
}

// fitLines pads every line to width and clips or pads to exactly height
// lines. A zero height only pads.
func fitLines(s string, width, height int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		for len(lines) < height {
			lines = append(lines, "")
		}
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Left, line)
	}
	return strings.Join(lines, "\n")
}

// truncateLine shortens plain text to width display cells.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}

package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays rows out in space-separated columns sized to the widest
// cell. Columns listed in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}
	widths := columnWidths(all)
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, len(all))
	cells := make([]string, len(widths))
	for i, row := range all {
		for col, width := range widths {
			var cell string
			if col < len(row) {
				cell = row[col]
			}
			if rightAlign[col] {
				cells[col] = runewidth.FillLeft(cell, width)
			} else {
				cells[col] = runewidth.FillRight(cell, width)
			}
		}
		lines[i] = strings.Join(cells, " ")
	}
	return lines
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for col, cell := range row {
			if col == len(widths) {
				widths = append(widths, 0)
			}
			widths[col] = max(widths[col], displayWidth(cell))
		}
	}
	return widths
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}

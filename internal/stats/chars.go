package stats

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/verte-zerg/typr/internal/model"
)

// CharRow is one formatted line of the per-key table.
type CharRow struct {
	Char      string
	Accuracy  float64
	Latency   float64
	Dwell     float64
	HasDwell  bool
	Correct   int
	Incorrect int
}

// NewCharRow derives mean latency and dwell from an aggregate.
func NewCharRow(agg model.CharAggregate) CharRow {
	row := CharRow{
		Char:      agg.Char,
		Accuracy:  accuracy(agg),
		Correct:   agg.Correct,
		Incorrect: agg.Incorrect,
	}
	if agg.LatencyCount > 0 {
		row.Latency = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
	}
	if agg.DwellCount > 0 {
		row.Dwell = float64(agg.DwellSumMs) / float64(agg.DwellCount)
		row.HasDwell = true
	}
	return row
}

// CharRows converts aggregates into rows, lowest accuracy first.
func CharRows(aggs []model.CharAggregate) []CharRow {
	rows := make([]CharRow, len(aggs))
	for i, agg := range aggs {
		rows[i] = NewCharRow(agg)
	}
	slices.SortFunc(rows, func(a, b CharRow) int {
		if c := cmp.Compare(a.Accuracy, b.Accuracy); c != 0 {
			return c
		}
		return cmp.Compare(a.Char, b.Char)
	})
	return rows
}

// Cells formats the row for table output. A missing dwell shows as "-".
func (r CharRow) Cells() []string {
	dwell := "-"
	if r.HasDwell {
		dwell = fmt.Sprintf("%.1f", r.Dwell)
	}
	return []string{
		r.Char,
		fmt.Sprintf("%.2f%%", r.Accuracy*100),
		fmt.Sprintf("%.1f", r.Latency),
		dwell,
		strconv.Itoa(r.Correct),
		strconv.Itoa(r.Incorrect),
	}
}

// CharTableHeaders are the per-key table column titles.
var CharTableHeaders = []string{"Char", "Accuracy", "Avg Latency (ms)", "Avg Hold (ms)", "Correct", "Incorrect"}

// RenderCharTable prints per-key aggregates for the curve window.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	rows := CharRows(aggs)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
		if cells[i][0] == " " {
			cells[i][0] = "<space>"
		}
	}
	lines := formatTable(CharTableHeaders, cells, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
	out := "Per-Character (Windowed)\n" + strings.Join(lines, "\n") + "\n\n"
	_, err := io.WriteString(w, out)
	return err
}

// ParseChars splits a comma-separated key list, dropping empty entries.
func ParseChars(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package stats

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/verte-zerg/typr/internal/history"
)

var (
	upColor   = color.New(color.FgGreen, color.Bold)
	downColor = color.New(color.FgRed, color.Bold)
	flatColor = color.New(color.FgYellow)
	headColor = color.New(color.Bold)
)

func directionColor(d history.Direction) *color.Color {
	switch d {
	case history.Up:
		return upColor
	case history.Down:
		return downColor
	default:
		return flatColor
	}
}

// RenderAggregate prints the history summary, the 7-day comparison and the
// weekly trend.
func RenderAggregate(w io.Writer, agg history.Aggregate) error {
	if agg.Count == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	lines := []string{
		headColor.Sprint("Summary"),
		fmt.Sprintf("Sessions: %d", agg.Count),
		fmt.Sprintf("Avg WPM: %.1f (raw %.1f)", agg.AvgAdjusted, agg.AvgRaw),
		fmt.Sprintf("Avg Accuracy: %.1f%%", agg.AvgAccuracy),
		fmt.Sprintf("Most Practised: %s", agg.TopLanguage),
	}
	if agg.HasDwell {
		lines = append(lines, fmt.Sprintf("Avg Key Hold: %.1f ms", agg.AvgDwellMs))
	}
	lines = append(lines,
		"",
		headColor.Sprint("Last 7 Days"),
		formatWindow("Recent", agg.Recent),
		formatWindow("Previous", agg.Previous),
	)
	if agg.HasDelta {
		d := history.Flat
		switch {
		case agg.Delta > 0:
			d = history.Up
		case agg.Delta < 0:
			d = history.Down
		}
		lines = append(lines, fmt.Sprintf("Change: %s", directionColor(d).Sprintf("%+.1f WPM %s", agg.Delta, d)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderWeeklyTrend(w, agg)
}

func formatWindow(label string, win history.Window) string {
	if win.Count == 0 {
		return fmt.Sprintf("%s: no sessions", label)
	}
	return fmt.Sprintf("%s: %d sessions, avg %.1f WPM, best %.1f WPM", label, win.Count, win.AvgAdjusted, win.Best)
}

// RenderWeeklyTrend prints the per-week table and a sparkline with the
// coloured direction arrow.
func RenderWeeklyTrend(w io.Writer, agg history.Aggregate) error {
	if len(agg.Weeks) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, headColor.Sprint("Weekly Trend")); err != nil {
		return err
	}
	rows := make([][]string, 0, len(agg.Weeks))
	values := make([]float64, 0, len(agg.Weeks))
	for _, wk := range agg.Weeks {
		rows = append(rows, []string{
			wk.Label(),
			fmt.Sprintf("%d", wk.Count),
			fmt.Sprintf("%.1f", wk.AvgAdjusted),
		})
		values = append(values, wk.AvgAdjusted)
	}
	for _, line := range formatTable([]string{"Week", "Sessions", "Avg WPM"}, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Trend: [%s] %s\n\n", Sparkline(values), directionColor(agg.Direction).Sprint(agg.Direction))
	return err
}

package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/typr/internal/history"
)

// HistoryView is the input for the history listing.
type HistoryView struct {
	Path    string
	Missing bool
	Records []history.Record
	Total   int
	Limited bool
}

var historyHeaders = []string{"Date", "Language", "Words", "Raw WPM", "Adj WPM", "Acc %", "Worst Keys"}

// RenderHistoryTable prints stored sessions, oldest first.
func RenderHistoryTable(w io.Writer, view HistoryView) error {
	if view.Missing {
		_, err := fmt.Fprintf(w, "No history found at %s\n", view.Path)
		return err
	}
	if view.Total == 0 {
		_, err := fmt.Fprintln(w, "No results recorded yet.")
		return err
	}

	rows := make([][]string, 0, len(view.Records))
	for _, rec := range view.Records {
		rows = append(rows, []string{
			rec.At.Format(history.DateTimeLayout),
			rec.Language,
			strconv.Itoa(rec.Words),
			fmt.Sprintf("%.1f", rec.WPMRaw),
			fmt.Sprintf("%.1f", rec.WPMAdjusted),
			fmt.Sprintf("%.1f", rec.Accuracy),
			rec.WorstKeys,
		})
	}
	lines := formatTable(historyHeaders, rows, map[int]bool{2: true, 3: true, 4: true, 5: true})
	if len(lines) > 0 {
		if _, err := fmt.Fprintln(w, lines[0]); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.Repeat("-", displayWidth(lines[0]))); err != nil {
			return err
		}
		for _, line := range lines[1:] {
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}

	var err error
	if view.Limited {
		_, err = fmt.Fprintf(w, "\nShowing last %d of %d results. History file: %s\n", len(view.Records), view.Total, view.Path)
	} else {
		_, err = fmt.Fprintf(w, "\n%d results total. History file: %s\n", view.Total, view.Path)
	}
	return err
}

// Package stats builds and renders practice statistics.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typr/internal/model"
)

// sparkRamp is ordered from lowest to highest.
var sparkRamp = []rune("▁▂▃▄▅▆▇█")

// CurveOptions controls the learning curve plots.
type CurveOptions struct {
	// Window is the moving-average width in sessions.
	Window int
	// Width is the total width including the axis; zero fits the terminal.
	Width  int
	Height int
	// Color forces ANSI colours even when the writer is not a terminal.
	Color bool
}

func (o CurveOptions) plot(w io.Writer, title string, series []Series) error {
	width := 0
	if o.Width > 0 {
		width = PlotWidthFor(o.Width)
	}
	return PlotSeriesWithColor(w, title, series, width, o.Height, o.Color)
}

// SessionAccuracy returns the correct/total ratio of a stored session.
func SessionAccuracy(s model.SessionAggregate) float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// MovingAverage returns the trailing mean over window values. The first
// window-1 points average what is available so far.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	prefix := make([]float64, len(values)+1)
	for i, v := range values {
		prefix[i+1] = prefix[i] + v
	}
	for i := range values {
		start := max(0, i+1-window)
		out[i] = (prefix[i+1] - prefix[start]) / float64(i+1-start)
	}
	return out
}

// Sparkline renders values as a single line of block glyphs.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	top := len(sparkRamp) - 1
	var b strings.Builder
	for _, v := range values {
		idx := top / 2
		if hi-lo > 1e-9 {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		b.WriteRune(sparkRamp[idx])
	}
	return b.String()
}

// RenderCurves plots smoothed adjusted WPM and accuracy per session.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, opts CurveOptions) error {
	if len(sessions) == 0 {
		return nil
	}
	wpm := make([]float64, len(sessions))
	acc := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm[i] = s.WPMAdjusted
		acc[i] = SessionAccuracy(s) * 100
	}
	return opts.plot(w, "Learning Curves", []Series{
		{Name: "WPM", Values: MovingAverage(wpm, opts.Window)},
		{Name: "Accuracy", Values: MovingAverage(acc, opts.Window)},
	})
}

// RenderCharCurves plots smoothed accuracy and latency for each key in chars.
// Sessions in which a key was never typed are skipped for that key.
func RenderCharCurves(w io.Writer, sessions []model.SessionAggregate, perSession map[int64]map[string]model.CharAggregate, chars []string, opts CurveOptions) error {
	if len(chars) == 0 || len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Character Curves"); err != nil {
		return err
	}
	for _, ch := range chars {
		acc, latency := charSeries(sessions, perSession, ch)
		if len(acc) == 0 {
			if _, err := fmt.Fprintf(w, "Char %s: no data\n\n", ch); err != nil {
				return err
			}
			continue
		}
		err := opts.plot(w, "Char "+ch, []Series{
			{Name: "Accuracy", Values: MovingAverage(acc, opts.Window)},
			{Name: "Latency", Values: MovingAverage(latency, opts.Window)},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// charSeries collects accuracy (percent) and mean latency (ms) for ch, one
// point per session that has attempts for it.
func charSeries(sessions []model.SessionAggregate, perSession map[int64]map[string]model.CharAggregate, ch string) (acc, latency []float64) {
	for _, s := range sessions {
		agg, ok := perSession[s.SessionID][ch]
		if !ok || attempts(agg) == 0 {
			continue
		}
		acc = append(acc, accuracy(agg)*100)
		var lat float64
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		latency = append(latency, lat)
	}
	return acc, latency
}

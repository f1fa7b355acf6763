package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeriesMultipleSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Learning Curves", []Series{
		{Name: "WPM", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "Accuracy", Values: []float64{1, 1, 2, 3, 4}},
	}, 12, 4)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Learning Curves", scaleNote, "WPM: min=1.00 max=3.00", "Legend:", "100%", "0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, note, two ranges, four rows, legend
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d: %q", len(lines), out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes when writing to a buffer")
	}
}

func TestPlotSeriesSingleSeriesLabelsValues(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", []Series{{Name: "WPM", Values: []float64{40, 60, 80}}}, 10, 5); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.HasPrefix(lines[0], "  80") || !strings.HasPrefix(lines[2], "  60") || !strings.HasPrefix(lines[4], "  40") {
		t.Fatalf("expected value labels on the axis, got %q", out)
	}
	if strings.Contains(out, scaleNote) {
		t.Fatalf("single series should not print the scale note")
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", []Series{{Name: "WPM"}}, 10, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotSeriesForcedColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if err := PlotSeriesWithColor(&buf, "", []Series{{Name: "WPM", Values: []float64{1, 2}}}, 10, 2, true); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected color codes, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 73 {
		t.Fatalf("expected 73, got %d", got)
	}
	if got := PlotWidthFor(12); got != minPlotWidth {
		t.Fatalf("expected min width for narrow terminals, got %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResample(t *testing.T) {
	if got := resample([]float64{1, 3, 5, 7}, 2); got[0] != 2 || got[1] != 6 {
		t.Fatalf("expected bucket averages, got %v", got)
	}
	if got := resample([]float64{0, 10}, 3); got[1] != 5 {
		t.Fatalf("expected interpolation, got %v", got)
	}
}

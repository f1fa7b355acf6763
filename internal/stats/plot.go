package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 4
	axisSeparator       = " │ "
	scaleNote           = "Scaled per series; see min/max below."
	terminalWidthBackup = 80
)

// dash is an on/off pattern applied along the x axis in dot columns.
type dash struct {
	name   string
	period int
	on     int
}

func (d dash) draws(x int) bool {
	if d.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%d.period < d.on
}

var dashes = []dash{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var palette = []color.Attribute{color.FgCyan, color.FgMagenta, color.FgYellow, color.FgGreen, color.FgBlue}

// PlotSeries renders a multi-line text plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a multi-line text plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

// plotSeries scales each series to its own range. A single series gets value
// labels on the axis; several series share percentage labels and list their
// ranges above the plot.
func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = nonEmpty(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	canvases := make([]*canvas, len(series))
	ranges := make([][2]float64, len(series))
	for i, s := range series {
		values := resample(s.Values, width)
		lo, hi := bounds(values)
		ranges[i] = [2]float64{lo, hi}
		canvases[i] = newCanvas(width, height)
		canvases[i].trace(values, lo, hi, dashes[i%len(dashes)])
	}

	colors := seriesColors(len(series), useColor(w, forceColor))
	var labels []string
	if len(series) == 1 {
		labels = axisLabels(height, fmt.Sprintf("%.0f", ranges[0][1]), fmt.Sprintf("%.0f", (ranges[0][0]+ranges[0][1])/2), fmt.Sprintf("%.0f", ranges[0][0]))
	} else {
		labels = axisLabels(height, "100%", "50%", "0%")
	}

	var out strings.Builder
	if title != "" {
		out.WriteString(title + "\n")
	}
	if len(series) > 1 {
		out.WriteString(scaleNote + "\n")
		for i, s := range series {
			fmt.Fprintf(&out, "%s: min=%.2f max=%.2f\n", s.Name, ranges[i][0], ranges[i][1])
		}
	}
	for y := 0; y < height; y++ {
		out.WriteString(runewidth.FillLeft(labels[y], axisLabelWidth))
		out.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := compose(canvases, x, y)
			ch := string(braille(mask))
			if owner >= 0 {
				ch = colors[owner].Sprint(ch)
			}
			out.WriteString(ch)
		}
		out.WriteString("\n")
	}
	out.WriteString(legend(series, colors) + "\n\n")
	_, err := io.WriteString(w, out.String())
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-runewidth.StringWidth(axisSeparator), minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func useColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func seriesColors(n int, enabled bool) []*color.Color {
	colors := make([]*color.Color, n)
	for i := range colors {
		colors[i] = color.New(palette[i%len(palette)])
		if enabled {
			colors[i].EnableColor()
		} else {
			colors[i].DisableColor()
		}
	}
	return colors
}

func axisLabels(height int, top, mid, bottom string) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = top
	if height > 2 {
		labels[height/2] = mid
	}
	if height > 1 {
		labels[height-1] = bottom
	}
	return labels
}

func legend(series []Series, colors []*color.Color) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", braille(0x01), s.Name, dashes[i%len(dashes)].name)
		parts = append(parts, colors[i].Sprint(label))
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func nonEmpty(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// bounds returns the value range, widened around flat data so it always
// spans a non-zero interval.
func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return lo, hi
}

// resample fits values to width columns: bucket averages when shrinking,
// linear interpolation when stretching.
func resample(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// canvas is a grid of braille cells, each holding 2x4 dots.
type canvas struct {
	width  int
	height int
	cells  [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

// trace draws values, one per cell column, joining neighbours with lines.
func (c *canvas) trace(values []float64, lo, hi float64, d dash) {
	rows := c.height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		pos := (v - lo) / (hi - lo)
		y := int(math.Round((1 - pos) * float64(rows-1)))
		y = min(max(y, 0), rows-1)
		px := x * 2
		if prevX < 0 {
			if d.draws(px) {
				c.set(px, y)
			}
		} else {
			c.line(prevX, prevY, px, y, d)
		}
		prevX, prevY = px, y
	}
}

// line draws between two dots with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, d dash) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if d.draws(x0) {
			c.set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// dotBits maps a dot position inside a cell to its braille bit, indexed by
// [row][column].
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 || y/4 >= c.height || x/2 >= c.width {
		return
	}
	c.cells[y/4][x/2] |= dotBits[y%4][x%2]
}

// compose merges the cell at (x, y) across canvases. The owner is the first
// canvas with a dot there, or -1.
func compose(canvases []*canvas, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, c := range canvases {
		bits := c.cells[y][x]
		if bits == 0 {
			continue
		}
		if owner < 0 {
			owner = i
		}
		mask |= bits
	}
	return mask, owner
}

func braille(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

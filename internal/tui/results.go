package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/results"
	statsPkg "github.com/verte-zerg/typr/internal/stats"
)

const (
	maxDwellKeys = 5
	plotHeight   = 8
)

func (m *Model) renderResults() string {
	r := m.results
	panels := []string{
		m.panel("Overview", overviewLines(r)),
		m.panel("Worst Keys", worstKeyLines(r)),
	}
	if len(r.SlowWords) > 0 {
		panels = append(panels, m.panel("Slow Words", listLines(r.SlowWords)))
	}
	if r.Dwell.HasData {
		panels = append(panels, m.panel("Key Hold", dwellLines(r.Dwell)))
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	sections := []string{top}
	if chart := m.renderChart(); chart != "" {
		sections = append(sections, chart)
	}
	sections = append(sections, m.styles.footer.Render(m.help.View(resultsHelp{km: m.keys})))
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

func (m *Model) panel(title string, lines []string) string {
	body := m.styles.title.Render(title) + "\n" + m.styles.value.Render(strings.Join(lines, "\n"))
	return m.styles.panel.Render(body)
}

func (m *Model) renderChart() string {
	series := m.results.Timing.RollingWPM(results.RollingWindow)
	if len(series) == 0 {
		return ""
	}
	width := 0
	if m.width > 0 {
		width = statsPkg.PlotWidthFor(int(float64(m.width) * 0.8))
	}
	var buf bytes.Buffer
	title := fmt.Sprintf("WPM (%d-keypress rolling average)", results.RollingWindow)
	if err := statsPkg.PlotSeries(&buf, title, []statsPkg.Series{{Name: "WPM", Values: series}}, width, plotHeight); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

func overviewLines(r results.Results) []string {
	raw, adjusted, _ := r.WPM()
	return []string{
		fmt.Sprintf("Adjusted WPM: %.1f", adjusted),
		fmt.Sprintf("Accuracy: %.1f%%", r.Accuracy.Overall.Percent()),
		fmt.Sprintf("Raw WPM: %.1f", raw),
		fmt.Sprintf("Correct Keypresses: %s", r.Accuracy.Overall),
	}
}

func worstKeyLines(r results.Results) []string {
	scores := r.Accuracy.WorstKeys(5)
	if len(scores) == 0 {
		return []string{"None"}
	}
	lines := make([]string, len(scores))
	for i, s := range scores {
		lines[i] = fmt.Sprintf("- %c at %.1f%% accuracy", s.Char, s.Percent)
	}
	return lines
}

func listLines(words []string) []string {
	lines := make([]string, len(words))
	for i, w := range words {
		lines[i] = "- " + w
	}
	return lines
}

func dwellLines(d results.Dwell) []string {
	keys := d.PerKey
	if len(keys) > maxDwellKeys {
		keys = keys[:maxDwellKeys]
	}
	lines := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %c: %.0fms", k.Char, k.AvgMs))
	}
	return append(lines, fmt.Sprintf("avg: %.0fms", d.OverallAvgMs))
}

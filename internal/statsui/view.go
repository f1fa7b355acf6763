package statsui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/stats"
)

func (m *Model) renderTabs() string {
	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		style := tabStyle
		if i == m.activeTab {
			style = activeTabStyle
		}
		parts[i] = style.Render(title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return fitLines(m.renderTabs()+"\n"+m.renderFilterSummary(), m.width, 0)
}

func (m *Model) renderFilterSummary() string {
	orAny := func(s string) string {
		if s == "" {
			return "any"
		}
		return s
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: lang=%s  since=%s  until=%s  last=%s  window=%d",
		orAny(m.cfg.Lang), orAny(m.cfg.Since), orAny(m.cfg.Until), last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.help.View(m.formKeys)
	}
	km := m.keys
	km.EditChars.SetEnabled(m.activeTab == tabCharCurves)
	footer := m.help.View(km)
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	switch m.activeTab {
	case tabHistory:
		if len(m.report.Records) == 0 {
			return fitLines("No sessions found.", m.width, height)
		}
		return fitLines(tableTextStyle.Render(m.historyTable.View()), m.width, height)
	case tabCharTable:
		switch {
		case m.store == nil:
			return fitLines("Key statistics are unavailable.", m.width, height)
		case len(m.report.Sessions) == 0:
			return fitLines("No sessions found.", m.width, height)
		case len(m.report.CharAggsAll) == 0:
			return fitLines("No character stats found.", m.width, height)
		default:
			return fitLines(tableTextStyle.Render(m.charTable.View()), m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func renderOverview(report stats.Report, window, width int) string {
	agg := report.Aggregate
	if agg.Count == 0 {
		return "No sessions found."
	}
	parts := []string{renderSummaryCards(agg, width)}
	if chart := renderWeeklyChart(agg.Weeks, agg.Direction, width); chart != "" {
		parts = append(parts, chart)
	}
	if len(report.Sessions) > 0 {
		parts = append(parts, renderCurves(report.Sessions, window, width))
	}
	return strings.TrimRight(strings.Join(parts, "\n\n"), "\n")
}

func renderSummaryCards(agg history.Aggregate, width int) string {
	delta := "n/a"
	if agg.HasDelta {
		delta = directionStyle(agg.Delta).Render(fmt.Sprintf("%+.1f", agg.Delta))
	}
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", agg.Count)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", agg.AvgAdjusted)),
		metricCard("Avg Raw", fmt.Sprintf("%.1f", agg.AvgRaw)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", agg.AvgAccuracy)),
		metricCard("Top Lang", agg.TopLanguage),
		metricCard("Best 7d", fmt.Sprintf("%.1f", agg.Recent.Best)),
		metricCard("7d Change", delta),
	}
	if agg.HasDwell {
		cards = append(cards, metricCard("Avg Hold", fmt.Sprintf("%.0fms", agg.AvgDwellMs)))
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func directionStyle(delta float64) lipgloss.Style {
	switch {
	case delta > 0:
		return upStyle
	case delta < 0:
		return downStyle
	default:
		return cardValueStyle
	}
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

// renderWeeklyChart draws one bar per ISO week with the week labels and
// averages listed under the chart.
func renderWeeklyChart(weeks []history.Week, dir history.Direction, width int) string {
	if len(weeks) == 0 {
		return ""
	}
	barWidth := 3
	chartWidth := min(len(weeks)*(barWidth+1), width)
	bc := barchart.New(chartWidth, plotHeight/2,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	labels := make([]string, 0, len(weeks))
	for _, wk := range weeks {
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{Name: wk.Label(), Value: wk.AvgAdjusted, Style: barStyle}},
		})
		labels = append(labels, fmt.Sprintf("%s %.1f", wk.Label(), wk.AvgAdjusted))
	}
	bc.Draw()

	title := fmt.Sprintf("Weekly Trend %s", dir)
	switch dir {
	case history.Up:
		title = upStyle.Render(title)
	case history.Down:
		title = downStyle.Render(title)
	default:
		title = cardValueStyle.Render(title)
	}
	return strings.Join([]string{title, bc.View(), headerStyle.Render(strings.Join(labels, "  "))}, "\n")
}

func curveOptions(window, width int) stats.CurveOptions {
	return stats.CurveOptions{Window: window, Width: width, Height: plotHeight, Color: true}
}

func renderCurves(sessions []model.SessionAggregate, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, sessions, curveOptions(window, width)); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderCharCurves(sessions []model.SessionAggregate, chars []string, perSession map[int64]map[string]model.CharAggregate, window, width int, unavailable bool) string {
	if unavailable {
		return "Key statistics are unavailable."
	}
	if len(sessions) == 0 {
		return "No sessions found."
	}
	if len(chars) == 0 {
		return "No characters selected. Press Enter to set chars."
	}
	header := headerStyle.Render(fmt.Sprintf("Chars: %s", strings.Join(chars, ", ")))
	var buf bytes.Buffer
	if err := stats.RenderCharCurves(&buf, sessions, perSession, chars, curveOptions(window, width)); err != nil {
		return fmt.Sprintf("Failed to render character curves: %v", err)
	}
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 19},
		{Title: "Language", Width: 14},
		{Title: "Words", Width: 5},
		{Title: "Raw WPM", Width: 8},
		{Title: "Adj WPM", Width: 8},
		{Title: "Acc %", Width: 6},
		{Title: "Worst Keys", Width: 24},
	}
}

// historyRows lists records newest first.
func historyRows(records []history.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		rows = append(rows, table.Row{
			rec.At.Format(history.DateTimeLayout),
			rec.Language,
			strconv.Itoa(rec.Words),
			fmt.Sprintf("%.1f", rec.WPMRaw),
			fmt.Sprintf("%.1f", rec.WPMAdjusted),
			fmt.Sprintf("%.1f", rec.Accuracy),
			rec.WorstKeys,
		})
	}
	return rows
}

func charColumns() []table.Column {
	return []table.Column{
		{Title: "Char", Width: 4},
		{Title: "Accuracy", Width: 9},
		{Title: "Avg Latency (ms)", Width: 17},
		{Title: "Avg Hold (ms)", Width: 14},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
		{Title: "Total", Width: 6},
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	t.SetStyles(tableStyles())
	return t
}

// charRows lists per-key totals, most practised first.
func charRows(aggs []model.CharAggregate) []table.Row {
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range stats.SortByAttempts(aggs) {
		row := stats.NewCharRow(agg)
		cells := row.Cells()
		if cells[0] == " " {
			cells[0] = "<space>"
		}
		rows = append(rows, append(table.Row(cells), strconv.Itoa(row.Correct+row.Incorrect)))
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// Package statsui is the interactive stats browser behind "typr stats --tui".
package statsui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/stats"
	"github.com/verte-zerg/typr/internal/store"
)

const (
	tabOverview = iota
	tabHistory
	tabCharTable
	tabCharCurves
)

var tabTitles = []string{"Overview", "History", "Char Table", "Char Curves"}

const (
	plotHeight   = 10
	defaultWidth = 80
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	hist  *history.Store
	store *store.Store
	cfg   model.StatsConfig
	now   func() time.Time

	report stats.Report
	errMsg string

	keys      keyMap
	formKeys  formKeys
	help      help.Model
	activeTab int
	viewports []viewport.Model

	historyTable table.Model
	charTable    table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	charSelection  []string
	charPerSession map[int64]map[string]model.CharAggregate

	charInputMode bool
	charInput     textinput.Model
}

// NewModel constructs a stats UI model. st may be nil when the key-stats
// database is unavailable.
func NewModel(hist *history.Store, st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		hist:         hist,
		store:        st,
		cfg:          cfg,
		now:          time.Now,
		keys:         newKeyMap(),
		formKeys:     newFormKeys(),
		help:         help.New(),
		viewports:    make([]viewport.Model, len(tabTitles)),
		historyTable: newTable(historyColumns()),
		charTable:    newTable(charColumns()),
	}
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.initInputs()
	m.initCharInput()
	m.focusActiveTable()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit
		case m.filterMode:
			return m.updateFilter(msg)
		case m.charInputMode:
			return m.updateCharInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevTab):
		m.moveTab(-1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.NextTab):
		m.moveTab(1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.WidenWindow):
		m.setCurveWindow(nextCurveWindow(m.cfg.CurveWindow))
		return m, nil
	case key.Matches(msg, m.keys.NarrowWindow):
		m.setCurveWindow(prevCurveWindow(m.cfg.CurveWindow))
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		return m.startFilter()
	case key.Matches(msg, m.keys.EditChars) && m.activeTab == tabCharCurves:
		return m.startCharInput()
	case key.Matches(msg, m.keys.Top):
		if tbl := m.activeTable(); tbl != nil {
			tbl.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		if tbl := m.activeTable(); tbl != nil {
			tbl.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if tbl := m.activeTable(); tbl != nil {
		*tbl, cmd = tbl.Update(msg)
		return m, cmd
	}
	m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.charInputMode {
		return fitLines(m.renderCharModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	return strings.Join([]string{
		fitLines(m.renderHeader(), m.width, headerHeight),
		fitLines(m.renderBody(bodyHeight), m.width, bodyHeight),
		fitLines(m.renderFooter(), m.width, footerHeight),
	}, "\n")
}

func (m *Model) activeTable() *table.Model {
	switch m.activeTab {
	case tabHistory:
		return &m.historyTable
	case tabCharTable:
		return &m.charTable
	}
	return nil
}

// focusActiveTable focuses the table on the active tab.
func (m *Model) focusActiveTable() {
	m.historyTable.Blur()
	m.charTable.Blur()
	if tbl := m.activeTable(); tbl != nil {
		tbl.Focus()
	}
}

func (m *Model) layoutHeights() (header, body, footer int) {
	header = max(1, lipgloss.Height(activeTabStyle.Render("X"))) + 1
	footer = 1
	if !m.filterMode && m.errMsg != "" {
		footer++
	}
	body = max(1, m.height-header-footer)
	return header, body, footer
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, body, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = body
	}
	for _, tbl := range []*table.Model{&m.historyTable, &m.charTable} {
		tbl.SetWidth(m.width)
		tbl.SetHeight(max(1, body-1))
	}
	for i := range m.filterInputs {
		m.filterInputs[i].Width = max(minInputWidth, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
	m.charInput.Width = max(minInputWidth, modalInnerWidth(m.width)-lipgloss.Width(m.charInput.Prompt))
	m.help.Width = m.width
}

func (m *Model) moveTab(delta int) {
	n := len(tabTitles)
	m.activeTab = ((m.activeTab+delta)%n + n) % n
	m.focusActiveTable()
}

func (m *Model) setCurveWindow(window int) {
	m.cfg.CurveWindow = window
	m.refreshReport()
	m.updateLayout()
}

// refreshReport rebuilds every tab from the current filters.
func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.hist, m.store, m.cfg, m.now())
	if err != nil {
		m.errMsg = err.Error()
		m.renderTabContents()
		return
	}
	m.errMsg = ""
	m.report = report
	m.charSelection = report.Chars
	m.charPerSession = report.CharCurves
	m.historyTable.SetRows(historyRows(report.Records))
	m.historyTable.GotoTop()
	m.charTable.SetRows(charRows(report.CharAggsAll))
	m.charTable.GotoTop()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabCharCurves].SetContent(renderCharCurves(m.report.Sessions, m.charSelection, m.charPerSession, m.cfg.CurveWindow, width, m.store == nil))
}

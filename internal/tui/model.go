// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/config"
	"github.com/verte-zerg/typr/internal/generator"
	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/results"
	statsPkg "github.com/verte-zerg/typr/internal/stats"
	"github.com/verte-zerg/typr/internal/store"
	"github.com/verte-zerg/typr/internal/typing"
)

type state int

const (
	stateTest state = iota
	stateResults
)

// Deps bundles the collaborators of the typing UI. History and Store may be
// nil, which disables saving to them.
type Deps struct {
	Config  model.Config
	KeyMap  config.KeyMap
	Theme   config.Theme
	History *history.Store
	Store   *store.Store
	Gen     *generator.Generator
	Words   []string
	WeakSet map[rune]struct{}
	Now     func() time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	deps    Deps
	keys    keyMap
	help    help.Model
	styles  styles
	weakSet map[rune]struct{}

	weakNoticePrinted bool

	width  int
	height int

	state   state
	test    *typing.Test
	results results.Results
}

// NewModel constructs a typing TUI model and its first test.
func NewModel(deps Deps) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Gen == nil {
		deps.Gen = generator.New()
	}
	m := &Model{
		deps:    deps,
		keys:    newKeyMap(deps.KeyMap),
		help:    help.New(),
		styles:  newStyles(deps.Theme),
		weakSet: deps.WeakSet,
	}
	m.startTest(m.generateWords())
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
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.state == stateResults {
			return m.updateResults(msg)
		}
		return m.updateTest(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateTest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.finishTest()
		return m, nil
	case key.Matches(msg, m.keys.NewTest):
		m.startTest(m.generateWords())
		return m, nil
	}
	for _, ev := range keyEvents(msg, m.deps.Now()) {
		m.test.HandleKey(ev)
		if m.test.Complete() {
			m.finishTest()
			break
		}
	}
	return m, nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.startTest(m.generateWords())
	case key.Matches(msg, m.keys.Repeat):
		m.startTest(m.test.Texts())
	case key.Matches(msg, m.keys.PracticeMissed):
		m.startTest(m.deps.Gen.Repeat(m.results.MissedWords, generator.RepeatCount))
	case key.Matches(msg, m.keys.PracticeSlow):
		m.startTest(m.deps.Gen.Repeat(m.results.SlowWords, generator.RepeatCount))
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.state == stateResults {
		return m.renderResults()
	}
	return m.renderTest()
}

func (m *Model) renderTest() string {
	words := m.test.Words()
	if len(words) == 0 {
		return ""
	}
	styledRunes := buildStyledRunes(words, m.test.Current(), m.test.VisibleEnd(), m.deps.Config.Options.CaseInsensitive, m.styles)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	total := len(m.test.Words())
	if total == 0 {
		return ""
	}
	segments := []string{fmt.Sprintf("Word %d/%d", m.test.Current()+1, total)}
	if modes := m.modeLabels(); len(modes) > 0 {
		segments = append(segments, strings.Join(modes, " · "))
	}
	segments = append(segments, m.help.View(testHelp{km: m.keys}))
	return m.styles.footer.Render(strings.Join(segments, "  "))
}

func (m *Model) modeLabels() []string {
	opts := m.deps.Config.Options
	var modes []string
	if !opts.Backtracking {
		modes = append(modes, "no backtrack")
	}
	if opts.SuddenDeath {
		modes = append(modes, "sudden death")
	}
	if opts.CaseInsensitive {
		modes = append(modes, "case-insensitive")
	}
	if opts.NoBackspace {
		modes = append(modes, "no backspace")
	}
	if m.deps.Config.FocusWeak && len(m.weakSet) > 0 {
		modes = append(modes, "focus weak")
	}
	return modes
}

func (m *Model) generateWords() []string {
	if m.deps.Config.Verbatim {
		return append([]string(nil), m.deps.Words...)
	}
	if m.deps.Config.FocusWeak && len(m.weakSet) > 0 {
		return m.deps.Gen.PickWeighted(m.deps.Words, m.deps.Config.Words, m.weakSet, m.deps.Config.WeakFactor)
	}
	return m.deps.Gen.Pick(m.deps.Words, m.deps.Config.Words)
}

func (m *Model) startTest(words []string) {
	if len(words) == 0 {
		return
	}
	m.test = typing.New(words, m.deps.Config.Options)
	m.results = results.Results{}
	m.state = stateTest
}

func (m *Model) finishTest() {
	m.results = results.Derive(m.test)
	m.state = stateResults
	m.keys.PracticeMissed.SetEnabled(len(m.results.MissedWords) > 0)
	m.keys.PracticeSlow.SetEnabled(len(m.results.SlowWords) > 0)
	m.saveSession()
}

func (m *Model) saveSession() {
	if m.deps.Config.NoSave {
		return
	}
	words := m.test.Words()
	if m.deps.History != nil {
		m.deps.History.Save(m.deps.Now(), m.deps.Config.Lang, m.deps.Config.Words, m.results)
	}
	if m.deps.Store == nil {
		return
	}
	session, charStats, ok := statsPkg.BuildSession(words, m.deps.Config.Lang, m.deps.Config.Source, m.results)
	if !ok {
		return
	}
	ctx := context.Background()
	if _, err := m.deps.Store.InsertSession(ctx, session, charStats); err != nil {
		logErrf("failed to save session: %v\n", err)
		return
	}
	if m.deps.Config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.deps.Store.GetWeakChars(ctx, m.deps.Config.WeakWindow, m.deps.Config.Lang)
	if err != nil {
		logErrf("failed to load weak chars: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-char focus yet; using normal generator")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[rune]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakChars(aggs, m.deps.Config.WeakTop)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

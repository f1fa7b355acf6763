package statsui

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/stats"
)

const (
	fieldLang = iota
	fieldSince
	fieldUntil
	fieldLast
	fieldWindow
)

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		fieldLang:   newFilterInput("Lang: "),
		fieldSince:  newFilterInput("Since (YYYY-MM-DD): "),
		fieldUntil:  newFilterInput("Until (YYYY-MM-DD): "),
		fieldLast:   newFilterInput("Last: "),
		fieldWindow: newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initCharInput() {
	m.charInput = newFilterInput("Chars: ")
	m.charInput.Placeholder = "asdfjkl;"
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[fieldLang].SetValue(strings.TrimSpace(m.cfg.Lang))
	m.filterInputs[fieldSince].SetValue(m.cfg.Since)
	m.filterInputs[fieldUntil].SetValue(m.cfg.Until)
	if m.cfg.Last > 0 {
		m.filterInputs[fieldLast].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[fieldLast].SetValue("")
	}
	m.filterInputs[fieldWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case key.Matches(msg, m.formKeys.Apply):
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		return m, m.setFilterIndex(m.filterIndex + 1)
	case key.Matches(msg, m.formKeys.Prev):
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	n := len(m.filterInputs)
	if n == 0 {
		return nil
	}
	m.filterIndex = (idx%n + n) % n
	for i := range m.filterInputs {
		m.filterInputs[i].Blur()
	}
	return m.filterInputs[m.filterIndex].Focus()
}

// applyFilter validates the form and replaces the active filters. The
// character selection is kept.
func (m *Model) applyFilter() error {
	value := func(i int) string { return strings.TrimSpace(m.filterInputs[i].Value()) }

	cfg := model.StatsConfig{
		Lang:  value(fieldLang),
		Since: value(fieldSince),
		Until: value(fieldUntil),
		Chars: m.cfg.Chars,
	}
	if err := stats.Filters(cfg).Validate(); err != nil {
		return err
	}

	if in := value(fieldLast); in != "" {
		parsed, err := strconv.Atoi(in)
		if err != nil || parsed < 0 {
			return errors.New("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}

	cfg.CurveWindow = 1
	if in := value(fieldWindow); in != "" {
		parsed, err := strconv.Atoi(in)
		if err != nil {
			return errors.New("invalid curve window (use integer)")
		}
		if parsed < 1 {
			return errors.New("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}

	m.cfg = cfg
	return nil
}

func (m *Model) startCharInput() (tea.Model, tea.Cmd) {
	m.charInputMode = true
	m.charInput.SetValue(strings.Join(m.charSelection, ""))
	return m, m.charInput.Focus()
}

func (m *Model) updateCharInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.charInputMode = false
		return m, nil
	case key.Matches(msg, m.formKeys.Apply):
		m.applyCharInput()
		m.charInputMode = false
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.charInput, cmd = m.charInput.Update(msg)
	if normalized := normalizeCharInput(m.charInput.Value()); normalized != m.charInput.Value() {
		m.charInput.SetValue(normalized)
	}
	return m, cmd
}

// applyCharInput sets the curve characters. An empty input falls back to
// the most frequent keys.
func (m *Model) applyCharInput() {
	chars := parseRawChars(normalizeCharInput(m.charInput.Value()))
	m.cfg.Chars = strings.Join(chars, ",")
}

func (m *Model) renderCharModal() string {
	body := []string{
		cardValueStyle.Render("Select Characters"),
		m.charInput.View(),
		headerStyle.Render("Type characters (no commas). Spaces are ignored."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func parseRawChars(input string) []string {
	out := make([]string, 0, len([]rune(input)))
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, string(r))
	}
	return out
}

func normalizeCharInput(input string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

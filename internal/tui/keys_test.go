package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typr/internal/keys"
)

func TestKeyEvents(t *testing.T) {
	at := time.Unix(100, 0)
	cases := []struct {
		name string
		msg  tea.KeyMsg
		code keys.Code
		mods keys.Modifiers
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, keys.Char('x'), 0},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, keys.Char('x'), keys.ModAlt},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, keys.Char(' '), 0},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, keys.Enter, 0},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, keys.Backspace, 0},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, keys.Tab, 0},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, keys.Esc, 0},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, keys.Delete, 0},
		{"ctrl+w", tea.KeyMsg{Type: tea.KeyCtrlW}, keys.Char('w'), keys.ModCtrl},
		{"ctrl+h", tea.KeyMsg{Type: tea.KeyCtrlH}, keys.Char('h'), keys.ModCtrl},
		{"ctrl+space", tea.KeyMsg{Type: tea.KeyCtrlAt}, keys.Char(' '), keys.ModCtrl},
	}
	for _, tc := range cases {
		events := keyEvents(tc.msg, at)
		if len(events) != 1 {
			t.Fatalf("%s: expected 1 event, got %d", tc.name, len(events))
		}
		ev := events[0]
		if ev.Code != tc.code || ev.Mods != tc.mods || ev.Phase != keys.Press || !ev.Time.Equal(at) {
			t.Fatalf("%s: unexpected event %+v", tc.name, ev)
		}
	}
}

func TestKeyEventsMultipleRunes(t *testing.T) {
	events := keyEvents(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hé")}, time.Now())
	if len(events) != 2 || events[1].Code != keys.Char('é') {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestKeyEventsIgnoresArrows(t *testing.T) {
	if events := keyEvents(tea.KeyMsg{Type: tea.KeyUp}, time.Now()); len(events) != 0 {
		t.Fatalf("expected no events, got %+v", events)
	}
}

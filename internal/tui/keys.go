package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typr/internal/config"
	"github.com/verte-zerg/typr/internal/keys"
)

// keyEvents converts a bubbletea key message into press events. Pasted or
// batched runes become one press each. bubbletea v1 never sends key release
// events, so no release is produced here and dwell stays empty for sessions
// typed in the terminal UI.
func keyEvents(msg tea.KeyMsg, at time.Time) []keys.Event {
	var mods keys.Modifiers
	if msg.Alt {
		mods |= keys.ModAlt
	}
	press := func(code keys.Code, m keys.Modifiers) []keys.Event {
		return []keys.Event{keys.PressOf(code, m, at)}
	}
	switch msg.Type {
	case tea.KeyRunes:
		out := make([]keys.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, keys.PressOf(keys.Char(r), mods, at))
		}
		return out
	case tea.KeySpace:
		return press(keys.Char(' '), mods)
	case tea.KeyEnter:
		return press(keys.Enter, mods)
	case tea.KeyTab:
		return press(keys.Tab, mods)
	case tea.KeyEsc:
		return press(keys.Esc, mods)
	case tea.KeyBackspace:
		return press(keys.Backspace, mods)
	case tea.KeyDelete:
		return press(keys.Delete, mods)
	case tea.KeyCtrlAt:
		return press(keys.Char(' '), mods|keys.ModCtrl)
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		letter := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return press(keys.Char(letter), mods|keys.ModCtrl)
	}
	return nil
}

type keyMap struct {
	Quit           key.Binding
	Restart        key.Binding
	Repeat         key.Binding
	PracticeMissed key.Binding
	PracticeSlow   key.Binding
	NewTest        key.Binding
	Back           key.Binding
	ForceQuit      key.Binding
}

func bindingFor(b config.KeyBinding, help string) key.Binding {
	return key.NewBinding(key.WithKeys(b.TeaKey()), key.WithHelp(b.HelpKey(), help))
}

func newKeyMap(km config.KeyMap) keyMap {
	return keyMap{
		Quit:           bindingFor(km.Quit, "quit"),
		Restart:        bindingFor(km.Restart, "new"),
		Repeat:         bindingFor(km.Repeat, "repeat"),
		PracticeMissed: bindingFor(km.PracticeMissed, "missed"),
		PracticeSlow:   bindingFor(km.PracticeSlow, "slow"),
		NewTest:        bindingFor(km.NewTest, "new test"),
		Back:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "finish")),
		ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type testHelp struct{ km keyMap }

// ShortHelp implements help.KeyMap.
func (h testHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.NewTest, h.km.Back, h.km.ForceQuit}
}

// FullHelp implements help.KeyMap.
func (h testHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type resultsHelp struct{ km keyMap }

// ShortHelp implements help.KeyMap. Disabled practice bindings are hidden.
func (h resultsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Quit, h.km.Restart, h.km.Repeat, h.km.PracticeSlow, h.km.PracticeMissed}
}

// FullHelp implements help.KeyMap.
func (h resultsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

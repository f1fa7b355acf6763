package statsui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	PrevTab      key.Binding
	NextTab      key.Binding
	Scroll       key.Binding
	Top          key.Binding
	Bottom       key.Binding
	WidenWindow  key.Binding
	NarrowWindow key.Binding
	Settings     key.Binding
	EditChars    key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PrevTab:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		NextTab:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Scroll:       key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Top:          key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		WidenWindow:  key.NewBinding(key.WithKeys("="), key.WithHelp("=", "wider window")),
		NarrowWindow: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower window")),
		Settings:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "settings")),
		EditChars:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit chars")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.Scroll, k.EditChars, k.NarrowWindow, k.WidenWindow, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab},
		{k.Scroll, k.Top, k.Bottom},
		{k.NarrowWindow, k.WidenWindow, k.EditChars},
		{k.Settings, k.Quit},
	}
}

// formKeys drive the settings form and the character modal.
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Apply  key.Binding
	Cancel key.Binding
}

func newFormKeys() formKeys {
	return formKeys{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Apply, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Package keys defines the keyboard event vocabulary consumed by the typing engine.
package keys

import (
	"strings"
	"time"
)

// Kind identifies the family of a key.
type Kind uint8

// Key kinds.
const (
	KindOther Kind = iota
	KindChar
	KindEnter
	KindBackspace
	KindTab
	KindEsc
	KindDelete
)

// Code is a comparable key identity. Rune is only meaningful for KindChar.
type Code struct {
	Kind Kind
	Rune rune
}

// Char returns the code for a character key.
func Char(r rune) Code {
	return Code{Kind: KindChar, Rune: r}
}

// Named key codes.
var (
	Enter     = Code{Kind: KindEnter}
	Backspace = Code{Kind: KindBackspace}
	Tab       = Code{Kind: KindTab}
	Esc       = Code{Kind: KindEsc}
	Delete    = Code{Kind: KindDelete}
)

// IsChar reports whether the code is a character key.
func (c Code) IsChar() bool {
	return c.Kind == KindChar
}

// String renders the code for display.
func (c Code) String() string {
	switch c.Kind {
	case KindChar:
		if c.Rune == ' ' {
			return "Space"
		}
		return string(c.Rune)
	case KindEnter:
		return "Enter"
	case KindBackspace:
		return "Backspace"
	case KindTab:
		return "Tab"
	case KindEsc:
		return "Esc"
	case KindDelete:
		return "Delete"
	default:
		return "?"
	}
}

// Modifiers is a set of modifier keys held during an event.
type Modifiers uint8

// Modifier flags.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all flags in m are set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// String renders the set as "ctrl+alt+shift" order-stable text.
func (mods Modifiers) String() string {
	var parts []string
	if mods.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if mods.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if mods.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Phase distinguishes key presses from releases.
type Phase uint8

// Event phases.
const (
	Press Phase = iota
	Release
)

// Event is a single keyboard event delivered to the engine.
type Event struct {
	Code  Code
	Mods  Modifiers
	Phase Phase
	Time  time.Time
}

// PressOf builds a press event for code at t.
func PressOf(code Code, mods Modifiers, t time.Time) Event {
	return Event{Code: code, Mods: mods, Phase: Press, Time: t}
}

// ReleaseOf builds a release event for code at t.
func ReleaseOf(code Code, t time.Time) Event {
	return Event{Code: code, Phase: Release, Time: t}
}

package config

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typr/internal/keys"
)

// KeyBinding is a single key with optional Ctrl or Alt.
type KeyBinding struct {
	Code keys.Code
	Mods keys.Modifiers
}

var namedKeys = map[string]keys.Code{
	"Tab":       keys.Tab,
	"Backspace": keys.Backspace,
	"Enter":     keys.Enter,
	"Esc":       keys.Esc,
	"Delete":    keys.Delete,
	"Space":     keys.Char(' '),
}

// ParseKeyBinding parses "q", "C-r", "A-x" or a named key such as "Tab".
func ParseKeyBinding(value string) (KeyBinding, error) {
	parts := strings.Split(value, "-")
	switch len(parts) {
	case 1:
		code, err := parseKeyCode(parts[0])
		if err != nil {
			return KeyBinding{}, err
		}
		return KeyBinding{Code: code}, nil
	case 2:
		mods, err := parseModifier(parts[0])
		if err != nil {
			return KeyBinding{}, err
		}
		code, err := parseKeyCode(parts[1])
		if err != nil {
			return KeyBinding{}, err
		}
		return KeyBinding{Code: code, Mods: mods}, nil
	default:
		return KeyBinding{}, fmt.Errorf("invalid keybinding %q: expected 'key' or 'modifier-key'", value)
	}
}

func parseModifier(s string) (keys.Modifiers, error) {
	switch s {
	case "C":
		return keys.ModCtrl, nil
	case "A":
		return keys.ModAlt, nil
	default:
		return 0, fmt.Errorf("unknown modifier %q: expected 'C' (Ctrl) or 'A' (Alt)", s)
	}
}

func parseKeyCode(s string) (keys.Code, error) {
	if code, ok := namedKeys[s]; ok {
		return code, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return keys.Char(r), nil
	}
	return keys.Code{}, fmt.Errorf("unknown key %q: expected a single character or one of Tab, Backspace, Enter, Esc, Delete, Space", s)
}

// String renders the binding in config syntax.
func (b KeyBinding) String() string {
	var parts []string
	if b.Mods.Has(keys.ModCtrl) {
		parts = append(parts, "C")
	}
	if b.Mods.Has(keys.ModAlt) {
		parts = append(parts, "A")
	}
	parts = append(parts, b.Code.String())
	return strings.Join(parts, "-")
}

// TeaKey renders the binding the way bubbletea names key presses.
func (b KeyBinding) TeaKey() string {
	var base string
	switch b.Code {
	case keys.Tab:
		base = "tab"
	case keys.Backspace:
		base = "backspace"
	case keys.Enter:
		base = "enter"
	case keys.Esc:
		base = "esc"
	case keys.Delete:
		base = "delete"
	case keys.Char(' '):
		base = " "
		if b.Mods.Has(keys.ModCtrl) {
			base = "@"
		}
	default:
		base = string(b.Code.Rune)
		if b.Mods.Has(keys.ModCtrl) {
			base = string(unicode.ToLower(b.Code.Rune))
		}
	}
	prefix := ""
	if b.Mods.Has(keys.ModAlt) {
		prefix += "alt+"
	}
	if b.Mods.Has(keys.ModCtrl) {
		prefix += "ctrl+"
	}
	return prefix + base
}

// HelpKey renders the binding for the help line.
func (b KeyBinding) HelpKey() string {
	if b.Mods == 0 && b.Code.IsChar() && b.Code.Rune != ' ' {
		return string(b.Code.Rune)
	}
	return strings.ToLower(b.String())
}

// KeyMap holds the configurable bindings.
type KeyMap struct {
	Quit           KeyBinding
	Restart        KeyBinding
	Repeat         KeyBinding
	PracticeMissed KeyBinding
	PracticeSlow   KeyBinding
	NewTest        KeyBinding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:           KeyBinding{Code: keys.Char('q')},
		Restart:        KeyBinding{Code: keys.Char('r')},
		Repeat:         KeyBinding{Code: keys.Char('t')},
		PracticeMissed: KeyBinding{Code: keys.Char('p')},
		PracticeSlow:   KeyBinding{Code: keys.Char('s')},
		NewTest:        KeyBinding{Code: keys.Tab},
	}
}

// Conflicts reports every pair of actions bound to the same key.
func (km KeyMap) Conflicts() []string {
	bindings := []struct {
		name    string
		binding KeyBinding
	}{
		{"quit", km.Quit},
		{"restart", km.Restart},
		{"repeat", km.Repeat},
		{"practice-missed", km.PracticeMissed},
		{"practice-slow", km.PracticeSlow},
		{"new-test", km.NewTest},
	}
	seen := map[KeyBinding]string{}
	var conflicts []string
	for _, b := range bindings {
		if existing, ok := seen[b.binding]; ok {
			conflicts = append(conflicts, fmt.Sprintf("Key conflict: '%s' and '%s' are both bound to %s", existing, b.name, b.binding))
			continue
		}
		seen[b.binding] = b.name
	}
	return conflicts
}

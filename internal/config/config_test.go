package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/typr/internal/keys"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DefaultLanguage != nil || cfg.Practice.Words != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
default-language = "english1000"
history-file = "/tmp/h.csv"

[practice]
words = 30
sudden-death = true
look-ahead = 2

[key-map]
quit = "C-q"
new-test = "Space"

[theme]
correct = "#00FF00"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg.DefaultLanguage != "english1000" || *cfg.HistoryFile != "/tmp/h.csv" {
		t.Fatalf("unexpected top-level values")
	}
	if *cfg.Practice.Words != 30 || !*cfg.Practice.SuddenDeath || *cfg.Practice.LookAhead != 2 {
		t.Fatalf("unexpected practice values")
	}
	if cfg.Practice.Backtrack != nil {
		t.Fatalf("expected unset backtrack")
	}

	km, err := cfg.ResolveKeyMap()
	if err != nil {
		t.Fatalf("keymap: %v", err)
	}
	if km.Quit != (KeyBinding{Code: keys.Char('q'), Mods: keys.ModCtrl}) {
		t.Fatalf("unexpected quit binding %+v", km.Quit)
	}
	if km.NewTest.Code != keys.Char(' ') || km.Restart != DefaultKeyMap().Restart {
		t.Fatalf("unexpected bindings %+v", km)
	}

	theme := cfg.ResolveTheme()
	if theme.Correct != "#00FF00" || theme.Incorrect != DefaultTheme().Incorrect {
		t.Fatalf("unexpected theme %+v", theme)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[practice]\nwordz = 3\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestResolveKeyMapInvalidBinding(t *testing.T) {
	path := writeConfig(t, "[key-map]\nquit = \"X-q\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.ResolveKeyMap(); err == nil || !strings.Contains(err.Error(), "key-map.quit") {
		t.Fatalf("expected key-map.quit error, got %v", err)
	}
}

func TestParseKeyBinding(t *testing.T) {
	cases := []struct {
		in   string
		want KeyBinding
		tea  string
	}{
		{"q", KeyBinding{Code: keys.Char('q')}, "q"},
		{"C-r", KeyBinding{Code: keys.Char('r'), Mods: keys.ModCtrl}, "ctrl+r"},
		{"A-x", KeyBinding{Code: keys.Char('x'), Mods: keys.ModAlt}, "alt+x"},
		{"Tab", KeyBinding{Code: keys.Tab}, "tab"},
		{"Enter", KeyBinding{Code: keys.Enter}, "enter"},
		{"Esc", KeyBinding{Code: keys.Esc}, "esc"},
		{"Delete", KeyBinding{Code: keys.Delete}, "delete"},
		{"Backspace", KeyBinding{Code: keys.Backspace}, "backspace"},
		{"Space", KeyBinding{Code: keys.Char(' ')}, " "},
		{"ä", KeyBinding{Code: keys.Char('ä')}, "ä"},
	}
	for _, tc := range cases {
		got, err := ParseKeyBinding(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %+v, got %+v", tc.in, tc.want, got)
		}
		if got.TeaKey() != tc.tea {
			t.Fatalf("tea key for %q: expected %q, got %q", tc.in, tc.tea, got.TeaKey())
		}
	}
}

func TestParseKeyBindingErrors(t *testing.T) {
	for _, in := range []string{"", "ab", "S-q", "C-", "C-r-x", "F1"} {
		if _, err := ParseKeyBinding(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestKeyBindingString(t *testing.T) {
	b := KeyBinding{Code: keys.Char('r'), Mods: keys.ModCtrl}
	if b.String() != "C-r" {
		t.Fatalf("unexpected format %q", b.String())
	}
	if (KeyBinding{Code: keys.Tab}).String() != "Tab" {
		t.Fatalf("unexpected tab format")
	}
}

func TestKeyMapConflicts(t *testing.T) {
	if conflicts := DefaultKeyMap().Conflicts(); len(conflicts) != 0 {
		t.Fatalf("expected default keymap to be conflict free, got %v", conflicts)
	}
	km := DefaultKeyMap()
	km.Restart = km.Quit
	km.PracticeSlow = km.Quit
	conflicts := km.Conflicts()
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %v", conflicts)
	}
	if conflicts[0] != "Key conflict: 'quit' and 'restart' are both bound to q" {
		t.Fatalf("unexpected message %q", conflicts[0])
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if DefaultConfigPath() != filepath.Join("/cfg", "typr", "config.toml") {
		t.Fatalf("unexpected config path %q", DefaultConfigPath())
	}
	if DefaultHistoryPath() != filepath.Join("/data", "typr", "history.csv") {
		t.Fatalf("unexpected history path %q", DefaultHistoryPath())
	}
	if DefaultDBPath() != filepath.Join("/data", "typr", "typr.db") {
		t.Fatalf("unexpected db path %q", DefaultDBPath())
	}
	if DefaultLanguageDir() != filepath.Join("/cfg", "typr", "language") {
		t.Fatalf("unexpected language dir %q", DefaultLanguageDir())
	}
}

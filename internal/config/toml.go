// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	DefaultLanguage *string        `toml:"default-language"`
	HistoryFile     *string        `toml:"history-file"`
	Practice        PracticeConfig `toml:"practice"`
	KeyMap          KeyMapConfig   `toml:"key-map"`
	Theme           ThemeConfig    `toml:"theme"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Words           *int     `toml:"words"`
	Backtrack       *bool    `toml:"backtrack"`
	SuddenDeath     *bool    `toml:"sudden-death"`
	CaseInsensitive *bool    `toml:"case-insensitive"`
	NoBackspace     *bool    `toml:"no-backspace"`
	LookAhead       *int     `toml:"look-ahead"`
	FocusWeak       *bool    `toml:"focus-weak"`
	WeakTop         *int     `toml:"weak-top"`
	WeakFactor      *float64 `toml:"weak-factor"`
	WeakWindow      *int     `toml:"weak-window"`
}

// KeyMapConfig maps result-screen key bindings.
type KeyMapConfig struct {
	Quit           *string `toml:"quit"`
	Restart        *string `toml:"restart"`
	Repeat         *string `toml:"repeat"`
	PracticeMissed *string `toml:"practice-missed"`
	PracticeSlow   *string `toml:"practice-slow"`
	NewTest        *string `toml:"new-test"`
}

// ThemeConfig maps UI colours.
type ThemeConfig struct {
	Correct   *string `toml:"correct"`
	Incorrect *string `toml:"incorrect"`
	Untyped   *string `toml:"untyped"`
	Current   *string `toml:"current"`
	Muted     *string `toml:"muted"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Theme holds resolved colours.
type Theme struct {
	Correct   string
	Incorrect string
	Untyped   string
	Current   string
	Muted     string
}

// DefaultTheme returns the built-in colours.
func DefaultTheme() Theme {
	return Theme{
		Correct:   "#F0F0F0",
		Incorrect: "#FF4D4F",
		Untyped:   "#8C8C8C",
		Current:   "#C89A3A",
		Muted:     "#6E6E6E",
	}
}

// ResolveTheme overlays configured colours on the defaults.
func (c FileConfig) ResolveTheme() Theme {
	theme := DefaultTheme()
	overlay := []struct {
		dst *string
		src *string
	}{
		{&theme.Correct, c.Theme.Correct},
		{&theme.Incorrect, c.Theme.Incorrect},
		{&theme.Untyped, c.Theme.Untyped},
		{&theme.Current, c.Theme.Current},
		{&theme.Muted, c.Theme.Muted},
	}
	for _, o := range overlay {
		if o.src != nil && *o.src != "" {
			*o.dst = *o.src
		}
	}
	return theme
}

// ResolveKeyMap parses configured bindings over the defaults.
func (c FileConfig) ResolveKeyMap() (KeyMap, error) {
	km := DefaultKeyMap()
	overlay := []struct {
		name string
		dst  *KeyBinding
		src  *string
	}{
		{"quit", &km.Quit, c.KeyMap.Quit},
		{"restart", &km.Restart, c.KeyMap.Restart},
		{"repeat", &km.Repeat, c.KeyMap.Repeat},
		{"practice-missed", &km.PracticeMissed, c.KeyMap.PracticeMissed},
		{"practice-slow", &km.PracticeSlow, c.KeyMap.PracticeSlow},
		{"new-test", &km.NewTest, c.KeyMap.NewTest},
	}
	for _, o := range overlay {
		if o.src == nil {
			continue
		}
		binding, err := ParseKeyBinding(*o.src)
		if err != nil {
			return KeyMap{}, fmt.Errorf("invalid key-map.%s: %w", o.name, err)
		}
		*o.dst = binding
	}
	return km, nil
}

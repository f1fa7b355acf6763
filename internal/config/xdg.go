package config

import (
	"os"
	"path/filepath"
)

const appName = "typr"

// baseDir returns $env when set, else ~/<fallback...>, else ".".
func baseDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string { return baseDir("XDG_CONFIG_HOME", ".config") }

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string { return baseDir("XDG_DATA_HOME", ".local", "share") }

// DefaultConfigPath is where "typr config" writes its template.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLanguageDir holds user word lists, one <name>.txt per language.
func DefaultLanguageDir() string {
	return filepath.Join(XDGConfigHome(), appName, "language")
}

// DefaultHistoryPath is the CSV log of finished tests.
func DefaultHistoryPath() string {
	return filepath.Join(XDGDataHome(), appName, "history.csv")
}

// DefaultDBPath is the SQLite key-stats database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "typr.db")
}

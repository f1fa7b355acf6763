// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/typr/internal/typing"
)

// Config defines practice settings.
type Config struct {
	Lang    string
	Source  string
	Words   int
	Options typing.Options
	// Verbatim types the loaded words in order instead of sampling them.
	Verbatim   bool
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
	NoSave     bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       string
	Until       string
	Last        int
	CurveWindow int
	Chars       string
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	StartedAt   time.Time
	EndedAt     time.Time
	Lang        string
	Words       int
	Source      string
	Correct     int
	Total       int
	DurationMs  int64
	WPMRaw      float64
	WPMAdjusted float64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
	DwellSumMs   int64
	DwellCount   int64
}

// Aggregated per-char stats for selection or reporting.

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
	DwellSumMs   int64
	DwellCount   int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID   int64
	EndedAt     time.Time
	Correct     int
	Total       int
	DurationMs  int64
	WPMAdjusted float64
}

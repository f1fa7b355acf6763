package history

import (
	"math"
	"testing"
	"time"
)

func rec(at time.Time, lang string, adjusted float64) Record {
	return Record{At: at, Language: lang, WPMRaw: adjusted + 10, WPMAdjusted: adjusted, Accuracy: 90}
}

func TestSummarizeEmpty(t *testing.T) {
	agg := Summarize(nil, time.Now())
	if agg.Count != 0 || agg.TopLanguage != "" || agg.HasDelta || len(agg.Weeks) != 0 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
}

func TestSummarizeAverages(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.Local)
	records := []Record{
		rec(now.AddDate(0, 0, -1), "english", 60),
		rec(now.AddDate(0, 0, -2), "german", 70),
		rec(now.AddDate(0, 0, -3), "english", 80),
	}
	records[1].DwellMs = 90
	records[1].HasDwell = true
	agg := Summarize(records, now)
	if agg.Count != 3 {
		t.Fatalf("expected 3, got %d", agg.Count)
	}
	if math.Abs(agg.AvgAdjusted-70) > 1e-9 || math.Abs(agg.AvgRaw-80) > 1e-9 || agg.AvgAccuracy != 90 {
		t.Fatalf("unexpected averages %+v", agg)
	}
	if agg.TopLanguage != "english" {
		t.Fatalf("expected english, got %q", agg.TopLanguage)
	}
	if !agg.HasDwell || agg.AvgDwellMs != 90 {
		t.Fatalf("expected dwell over records that carry it, got %v/%v", agg.HasDwell, agg.AvgDwellMs)
	}
}

func TestTopLanguageTieIsLexicographic(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.Local)
	records := []Record{
		rec(now, "zulu", 50),
		rec(now, "alpha", 50),
		rec(now, "mid", 50),
		rec(now, "zulu", 50),
		rec(now, "alpha", 50),
	}
	if got := Summarize(records, now).TopLanguage; got != "alpha" {
		t.Fatalf("expected alpha, got %q", got)
	}
}

func TestRecentWindow(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.Local)
	records := []Record{
		rec(now.AddDate(0, 0, -20), "english", 10),
		rec(now.AddDate(0, 0, -10), "english", 50),
		rec(now.AddDate(0, 0, -8), "english", 54),
		rec(now.AddDate(0, 0, -5), "english", 60),
		rec(now.AddDate(0, 0, -1), "english", 64),
	}
	agg := Summarize(records, now)
	if agg.Recent.Count != 2 || agg.Recent.AvgAdjusted != 62 || agg.Recent.Best != 64 {
		t.Fatalf("unexpected recent window %+v", agg.Recent)
	}
	if agg.Previous.Count != 2 || agg.Previous.AvgAdjusted != 52 {
		t.Fatalf("unexpected previous window %+v", agg.Previous)
	}
	if !agg.HasDelta || agg.Delta != 10 {
		t.Fatalf("expected delta 10, got %v/%v", agg.HasDelta, agg.Delta)
	}
}

func TestRecentWindowWithoutPrevious(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.Local)
	agg := Summarize([]Record{rec(now.AddDate(0, 0, -1), "english", 64)}, now)
	if agg.HasDelta {
		t.Fatalf("expected no delta without a previous window")
	}
}

func TestWeeklyTrend(t *testing.T) {
	// Mondays of ISO weeks 1 through 8 of 2026.
	start := time.Date(2025, 12, 29, 9, 0, 0, 0, time.Local)
	var records []Record
	for i := 0; i < 8; i++ {
		at := start.AddDate(0, 0, 7*i)
		records = append(records, rec(at, "english", float64(40+i)), rec(at.Add(time.Hour), "english", float64(42+i)))
	}
	agg := Summarize(records, start.AddDate(0, 0, 60))
	if len(agg.Weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(agg.Weeks))
	}
	first := agg.Weeks[0]
	if first.Year != 2026 || first.Number != 3 || first.Count != 2 || first.AvgAdjusted != 43 {
		t.Fatalf("unexpected first week %+v", first)
	}
	if agg.Weeks[5].Label() != "2026-W08" {
		t.Fatalf("unexpected label %q", agg.Weeks[5].Label())
	}
	if agg.Direction != Up {
		t.Fatalf("expected up, got %v", agg.Direction)
	}
}

func TestDirection(t *testing.T) {
	cases := []struct {
		weeks []Week
		want  Direction
	}{
		{nil, Flat},
		{[]Week{{AvgAdjusted: 50}}, Flat},
		{[]Week{{AvgAdjusted: 50}, {AvgAdjusted: 50.5}}, Flat},
		{[]Week{{AvgAdjusted: 50}, {AvgAdjusted: 55}}, Up},
		{[]Week{{AvgAdjusted: 55}, {AvgAdjusted: 50}}, Down},
	}
	for _, tc := range cases {
		if got := direction(tc.weeks); got != tc.want {
			t.Fatalf("direction(%v): expected %v, got %v", tc.weeks, tc.want, got)
		}
	}
}

func TestAggregateFromStore(t *testing.T) {
	store := writeSample(t)
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.Local)
	agg, err := store.Aggregate(Filters{Language: "peter1000"}, now)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if agg.Count != 3 || agg.TopLanguage != "peter1000" {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
	if !agg.HasDwell || agg.AvgDwellMs != 102.5 {
		t.Fatalf("expected dwell 102.5, got %v/%v", agg.HasDwell, agg.AvgDwellMs)
	}
	if _, err := store.Aggregate(Filters{Since: "bad"}, now); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

package history

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	windowDays  = 7
	trendWeeks  = 6
	flatEpsilon = 1.0
)

// Direction summarizes the change between the last two trend weeks.
type Direction int

// Trend directions.
const (
	Flat Direction = iota
	Up
	Down
)

// String renders the direction as an arrow.
func (d Direction) String() string {
	switch d {
	case Up:
		return "↑"
	case Down:
		return "↓"
	default:
		return "→"
	}
}

// Window summarizes sessions inside a day range.
type Window struct {
	Count       int
	AvgAdjusted float64
	Best        float64
}

// Week is the average adjusted WPM for one ISO week.
type Week struct {
	Year        int
	Number      int
	Count       int
	AvgAdjusted float64
}

// Label renders the week as "2026-W07".
func (w Week) Label() string {
	return isoLabel(w.Year, w.Number)
}

// Aggregate summarizes a filtered record set.
type Aggregate struct {
	Count       int
	AvgRaw      float64
	AvgAdjusted float64
	AvgAccuracy float64
	TopLanguage string
	AvgDwellMs  float64
	HasDwell    bool

	Recent   Window
	Previous Window
	// Delta is Recent minus Previous average adjusted WPM; HasDelta is false
	// when either window is empty.
	Delta    float64
	HasDelta bool

	Weeks     []Week
	Direction Direction
}

// Aggregate computes the summary of the records matching f relative to now.
func (s *Store) Aggregate(f Filters, now time.Time) (Aggregate, error) {
	records, err := s.Query(f)
	if err != nil {
		return Aggregate{}, err
	}
	return Summarize(records, now), nil
}

// Summarize aggregates records relative to now.
func Summarize(records []Record, now time.Time) Aggregate {
	agg := Aggregate{Count: len(records)}
	if len(records) == 0 {
		return agg
	}

	langs := map[string]int{}
	var dwellSum float64
	var dwellCount int
	for _, rec := range records {
		agg.AvgRaw += rec.WPMRaw
		agg.AvgAdjusted += rec.WPMAdjusted
		agg.AvgAccuracy += rec.Accuracy
		langs[rec.Language]++
		if rec.HasDwell {
			dwellSum += rec.DwellMs
			dwellCount++
		}
	}
	n := float64(len(records))
	agg.AvgRaw /= n
	agg.AvgAdjusted /= n
	agg.AvgAccuracy /= n
	agg.TopLanguage = topLanguage(langs)
	if dwellCount > 0 {
		agg.AvgDwellMs = dwellSum / float64(dwellCount)
		agg.HasDwell = true
	}

	recentStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)
	var recent, previous []Record
	for _, rec := range records {
		switch {
		case rec.At.After(now):
		case rec.At.After(recentStart):
			recent = append(recent, rec)
		case rec.At.After(previousStart):
			previous = append(previous, rec)
		}
	}
	agg.Recent = summarizeWindow(recent)
	agg.Previous = summarizeWindow(previous)
	if agg.Recent.Count > 0 && agg.Previous.Count > 0 {
		agg.Delta = agg.Recent.AvgAdjusted - agg.Previous.AvgAdjusted
		agg.HasDelta = true
	}

	agg.Weeks = weeklyTrend(records)
	agg.Direction = direction(agg.Weeks)
	return agg
}

func topLanguage(counts map[string]int) string {
	best := ""
	bestCount := 0
	for lang, c := range counts {
		if c > bestCount || (c == bestCount && lang < best) {
			best = lang
			bestCount = c
		}
	}
	return best
}

func summarizeWindow(records []Record) Window {
	w := Window{Count: len(records)}
	if w.Count == 0 {
		return w
	}
	var sum float64
	for _, rec := range records {
		sum += rec.WPMAdjusted
		if rec.WPMAdjusted > w.Best {
			w.Best = rec.WPMAdjusted
		}
	}
	w.AvgAdjusted = sum / float64(w.Count)
	return w
}

func weeklyTrend(records []Record) []Week {
	type key struct{ year, week int }
	sums := map[key]*Week{}
	for _, rec := range records {
		year, week := rec.At.ISOWeek()
		k := key{year, week}
		w, ok := sums[k]
		if !ok {
			w = &Week{Year: year, Number: week}
			sums[k] = w
		}
		w.Count++
		w.AvgAdjusted += rec.WPMAdjusted
	}
	weeks := make([]Week, 0, len(sums))
	for _, w := range sums {
		w.AvgAdjusted /= float64(w.Count)
		weeks = append(weeks, *w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year == weeks[j].Year {
			return weeks[i].Number < weeks[j].Number
		}
		return weeks[i].Year < weeks[j].Year
	})
	if len(weeks) > trendWeeks {
		weeks = weeks[len(weeks)-trendWeeks:]
	}
	return weeks
}

func direction(weeks []Week) Direction {
	if len(weeks) < 2 {
		return Flat
	}
	diff := weeks[len(weeks)-1].AvgAdjusted - weeks[len(weeks)-2].AvgAdjusted
	switch {
	case math.Abs(diff) < flatEpsilon:
		return Flat
	case diff > 0:
		return Up
	default:
		return Down
	}
}

func isoLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

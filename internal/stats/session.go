package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/results"
	"github.com/verte-zerg/typr/internal/typing"
)

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
	dwellSumMs   int64
	dwellCount   int64
}

// BuildSession summarizes a finished test for the key-stats store. ok is false
// when no key was recorded.
func BuildSession(words []typing.Word, lang, source string, r results.Results) (model.SessionStats, []model.CharStats, bool) {
	var first, last time.Time
	for _, w := range words {
		for _, ev := range w.Events {
			if first.IsZero() || ev.Time.Before(first) {
				first = ev.Time
			}
			if ev.Time.After(last) {
				last = ev.Time
			}
		}
	}
	if first.IsZero() {
		return model.SessionStats{}, nil, false
	}
	raw, adjusted, _ := r.WPM()
	session := model.SessionStats{
		StartedAt:   first,
		EndedAt:     last,
		Lang:        lang,
		Words:       len(words),
		Source:      source,
		Correct:     r.Accuracy.Overall.Numerator,
		Total:       r.Accuracy.Overall.Denominator,
		DurationMs:  last.Sub(first).Milliseconds(),
		WPMRaw:      raw,
		WPMAdjusted: adjusted,
	}
	return session, CharStatsFromWords(words), true
}

// CharStatsFromWords computes per-character correctness, latency and hold
// time from recorded key events. Space and non-character keys are skipped.
func CharStatsFromWords(words []typing.Word) []model.CharStats {
	stats := map[rune]*charStat{}
	var prev time.Time
	for _, w := range words {
		for _, ev := range w.Events {
			gap := ev.Time.Sub(prev)
			hasGap := !prev.IsZero() && gap >= 0
			prev = ev.Time
			if !ev.Code.IsChar() || ev.Code.Rune == ' ' || !ev.Mark.Defined() {
				continue
			}
			cs := stats[ev.Code.Rune]
			if cs == nil {
				cs = &charStat{}
				stats[ev.Code.Rune] = cs
			}
			if ev.Mark == typing.MarkCorrect {
				cs.correct++
				if hasGap {
					cs.latencySumMs += gap.Milliseconds()
					cs.latencyCount++
				}
			} else {
				cs.incorrect++
			}
			if ev.Released() {
				cs.dwellSumMs += ev.ReleasedAt.Sub(ev.Time).Milliseconds()
				cs.dwellCount++
			}
		}
	}

	out := make([]model.CharStats, 0, len(stats))
	for ch, cs := range stats {
		out = append(out, model.CharStats{
			Char:         string(ch),
			Correct:      cs.correct,
			Incorrect:    cs.incorrect,
			LatencySumMs: cs.latencySumMs,
			LatencyCount: cs.latencyCount,
			DwellSumMs:   cs.dwellSumMs,
			DwellCount:   cs.dwellCount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

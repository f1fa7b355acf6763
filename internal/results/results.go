package results

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typr/internal/keys"
	"github.com/verte-zerg/typr/internal/typing"
)

const (
	// WPMPerCPS converts characters per second to words per minute at five
	// characters per word.
	WPMPerCPS = 12.0
	// RollingWindow is the keypress window for the results WPM series.
	RollingWindow = 10

	maxSlowWords = 5
	maxWorstKeys = 5
)

// Timing holds keypress interval statistics.
type Timing struct {
	// PerEvent holds the seconds between consecutive events.
	PerEvent []float64
	// PerKey holds the mean interval, in seconds, leading up to each key.
	PerKey map[keys.Code]float64

	cps   float64
	hasCP bool
}

// NewTiming builds a Timing from keypress intervals in seconds.
func NewTiming(perEvent []float64, perKey map[keys.Code]float64) Timing {
	timing := Timing{PerEvent: perEvent, PerKey: perKey}
	if timing.PerKey == nil {
		timing.PerKey = map[keys.Code]float64{}
	}
	var sum float64
	for _, v := range perEvent {
		sum += v
	}
	if len(perEvent) > 0 && sum > 0 {
		timing.cps = float64(len(perEvent)) / sum
		timing.hasCP = true
	}
	return timing
}

// CPS returns characters per second, or false when fewer than two events
// were recorded.
func (t Timing) CPS() (float64, bool) {
	return t.cps, t.hasCP
}

// RollingWPM returns the WPM over each run of window consecutive intervals.
func (t Timing) RollingWPM(window int) []float64 {
	if window <= 0 || len(t.PerEvent) < window {
		return nil
	}
	out := make([]float64, 0, len(t.PerEvent)-window+1)
	var sum float64
	for i, v := range t.PerEvent {
		sum += v
		if i >= window {
			sum -= t.PerEvent[i-window]
		}
		if i < window-1 || sum <= 0 {
			continue
		}
		out = append(out, float64(window)/sum*WPMPerCPS)
	}
	return out
}

// Accuracy holds overall and per-key correctness.
type Accuracy struct {
	Overall Fraction
	PerKey  map[keys.Code]Fraction
}

// KeyScore is a character key with its accuracy percentage.
type KeyScore struct {
	Char    rune
	Percent float64
}

// WorstKeys returns up to n character keys below 100% accuracy, lowest first.
func (a Accuracy) WorstKeys(n int) []KeyScore {
	scores := make([]KeyScore, 0, len(a.PerKey))
	for code, frac := range a.PerKey {
		if !code.IsChar() {
			continue
		}
		pct := frac.Percent()
		if pct >= 100 {
			continue
		}
		scores = append(scores, KeyScore{Char: code.Rune, Percent: pct})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Percent == scores[j].Percent {
			return scores[i].Char < scores[j].Char
		}
		return scores[i].Percent < scores[j].Percent
	})
	if n >= 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// FormatWorstKeys renders the five worst keys as "b:50%;c:75%".
func (a Accuracy) FormatWorstKeys() string {
	return FormatKeyScores(a.WorstKeys(maxWorstKeys))
}

// FormatKeyScores joins scores as "char:NN%" entries.
func FormatKeyScores(scores []KeyScore) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%c:%.0f%%", s.Char, s.Percent)
	}
	return strings.Join(parts, ";")
}

// KeyDwell is the mean hold time of one character key.
type KeyDwell struct {
	Char  rune
	AvgMs float64
}

// Dwell holds key-hold statistics. HasData is false when the input source
// never reported releases.
type Dwell struct {
	PerKey       []KeyDwell
	OverallAvgMs float64
	HasData      bool
}

// Results is the immutable summary of a typing test.
type Results struct {
	Timing      Timing
	Accuracy    Accuracy
	Dwell       Dwell
	MissedWords []string
	SlowWords   []string
	Words       []string
}

// WPM returns raw and accuracy-adjusted words per minute, or false when the
// timing could not be computed.
func (r Results) WPM() (raw, adjusted float64, ok bool) {
	cps, ok := r.Timing.CPS()
	if !ok {
		return 0, 0, false
	}
	raw, adjusted = CalculateWPMs(cps, r.Accuracy.Overall.Float())
	return raw, adjusted, true
}

// CalculateWPMs converts characters per second and accuracy (0-1) to raw and
// adjusted WPM.
func CalculateWPMs(cps, accuracy float64) (raw, adjusted float64) {
	raw = cps * WPMPerCPS
	return raw, raw * accuracy
}

// Derive computes results from the current state of a test.
func Derive(t *typing.Test) Results {
	return FromWords(t.Words())
}

// FromWords computes results from word records in target order.
func FromWords(words []typing.Word) Results {
	var events []typing.KeyEvent
	texts := make([]string, len(words))
	for i, w := range words {
		events = append(events, w.Events...)
		texts[i] = w.Text
	}
	return Results{
		Timing:      calcTiming(events),
		Accuracy:    calcAccuracy(events, targetAlphabet(texts)),
		Dwell:       calcDwell(events),
		MissedWords: calcMissedWords(words),
		SlowWords:   calcSlowWords(words),
		Words:       texts,
	}
}

func targetAlphabet(texts []string) map[rune]struct{} {
	set := map[rune]struct{}{}
	for _, text := range texts {
		for _, r := range text {
			set[unicode.ToLower(r)] = struct{}{}
			set[unicode.ToUpper(r)] = struct{}{}
		}
	}
	return set
}

func calcTiming(events []typing.KeyEvent) Timing {
	type acc struct {
		total float64
		count int
	}
	var perEvent []float64
	perKey := map[keys.Code]*acc{}
	for i := 1; i < len(events); i++ {
		d := events[i].Time.Sub(events[i-1].Time)
		if d < 0 {
			continue
		}
		secs := d.Seconds()
		perEvent = append(perEvent, secs)
		entry, ok := perKey[events[i].Code]
		if !ok {
			entry = &acc{}
			perKey[events[i].Code] = entry
		}
		entry.total += secs
		entry.count++
	}
	avg := make(map[keys.Code]float64, len(perKey))
	for code, entry := range perKey {
		avg[code] = entry.total / float64(entry.count)
	}
	return NewTiming(perEvent, avg)
}

func calcAccuracy(events []typing.KeyEvent, alphabet map[rune]struct{}) Accuracy {
	acc := Accuracy{PerKey: map[keys.Code]Fraction{}}
	for _, ev := range events {
		if !ev.Mark.Defined() {
			continue
		}
		correct := ev.Mark == typing.MarkCorrect
		acc.Overall = acc.Overall.add(correct)

		// Keys outside the target text would always read 0%.
		if ev.Code.IsChar() {
			if _, ok := alphabet[ev.Code.Rune]; !ok {
				continue
			}
		}
		acc.PerKey[ev.Code] = acc.PerKey[ev.Code].add(correct)
	}
	return acc
}

func calcDwell(events []typing.KeyEvent) Dwell {
	perKey := map[rune][]float64{}
	var total float64
	var count int
	for _, ev := range events {
		if !ev.Code.IsChar() || !ev.Released() {
			continue
		}
		d := ev.ReleasedAt.Sub(ev.Time)
		if d < 0 {
			continue
		}
		ms := float64(d.Microseconds()) / 1000.0
		perKey[ev.Code.Rune] = append(perKey[ev.Code.Rune], ms)
		total += ms
		count++
	}
	dwell := Dwell{HasData: count > 0}
	if !dwell.HasData {
		return dwell
	}
	dwell.OverallAvgMs = total / float64(count)
	for r, holds := range perKey {
		var sum float64
		for _, h := range holds {
			sum += h
		}
		dwell.PerKey = append(dwell.PerKey, KeyDwell{Char: r, AvgMs: sum / float64(len(holds))})
	}
	sort.Slice(dwell.PerKey, func(i, j int) bool {
		if dwell.PerKey[i].AvgMs == dwell.PerKey[j].AvgMs {
			return dwell.PerKey[i].Char < dwell.PerKey[j].Char
		}
		return dwell.PerKey[i].AvgMs > dwell.PerKey[j].AvgMs
	})
	return dwell
}

func calcMissedWords(words []typing.Word) []string {
	var missed []string
	for _, w := range words {
		if w.Missed() {
			missed = append(missed, w.Text)
		}
	}
	return missed
}

func calcSlowWords(words []typing.Word) []string {
	type speed struct {
		text    string
		perChar float64
	}
	var speeds []speed
	for _, w := range words {
		if w.Missed() || len(w.Events) < 2 || w.Text == "" {
			continue
		}
		d := w.Events[len(w.Events)-1].Time.Sub(w.Events[0].Time)
		if d < 0 {
			continue
		}
		speeds = append(speeds, speed{
			text:    w.Text,
			perChar: d.Seconds() / float64(utf8.RuneCountInString(w.Text)),
		})
	}
	sort.SliceStable(speeds, func(i, j int) bool {
		return speeds[i].perChar > speeds[j].perChar
	})
	if len(speeds) > maxSlowWords {
		speeds = speeds[:maxSlowWords]
	}
	out := make([]string, len(speeds))
	for i, s := range speeds {
		out[i] = s.text
	}
	return out
}

// Package typing implements the input state machine that tracks typed progress
// against a sequence of target words.
package typing

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typr/internal/keys"
)

// NoLookAhead disables look-ahead limiting.
const NoLookAhead = -1

// Mark is the tri-state correctness of a recorded key event.
type Mark uint8

// Marks.
const (
	MarkNeutral Mark = iota
	MarkCorrect
	MarkIncorrect
)

func markOf(ok bool) Mark {
	if ok {
		return MarkCorrect
	}
	return MarkIncorrect
}

// Defined reports whether the mark carries a correctness value.
func (m Mark) Defined() bool {
	return m != MarkNeutral
}

// KeyEvent is a key press recorded against a word.
type KeyEvent struct {
	Time       time.Time
	Code       keys.Code
	Mods       keys.Modifiers
	Mark       Mark
	ReleasedAt time.Time
}

// Released reports whether a matching release was paired with this press.
func (e KeyEvent) Released() bool {
	return !e.ReleasedAt.IsZero()
}

// Word is one target word with the user's progress on it.
type Word struct {
	Text     string
	Progress string
	Events   []KeyEvent
}

// Missed reports whether any recorded event on the word was not correct.
func (w Word) Missed() bool {
	for _, ev := range w.Events {
		if ev.Mark != MarkCorrect {
			return true
		}
	}
	return false
}

// Options toggles the behavioural modes of a Test.
type Options struct {
	Backtracking    bool
	SuddenDeath     bool
	CaseInsensitive bool
	NoBackspace     bool
	// LookAhead limits how many upcoming words are visible; NoLookAhead shows all.
	LookAhead int
}

// DefaultOptions matches the stock practice settings.
func DefaultOptions() Options {
	return Options{Backtracking: true, LookAhead: NoLookAhead}
}

type location struct {
	word  int
	event int
}

// Test is the typing state machine for one session.
type Test struct {
	words    []Word
	current  int
	complete bool
	opts     Options
	// One pending press per key code; a repeated press replaces the earlier one.
	pending map[keys.Code]location
}

// New creates a Test over words. Callers must not pass an empty list.
func New(words []string, opts Options) *Test {
	t := &Test{
		words:   make([]Word, len(words)),
		opts:    opts,
		pending: map[keys.Code]location{},
	}
	for i, w := range words {
		t.words[i] = Word{Text: w}
	}
	return t
}

// Words returns the word records in target order.
func (t *Test) Words() []Word {
	return t.words
}

// Texts returns the target texts in order.
func (t *Test) Texts() []string {
	out := make([]string, len(t.words))
	for i, w := range t.words {
		out[i] = w.Text
	}
	return out
}

// Current returns the index of the word being typed.
func (t *Test) Current() int {
	return t.current
}

// Complete reports whether the last word has been finished.
func (t *Test) Complete() bool {
	return t.complete
}

// Options returns the modes the test was created with.
func (t *Test) Options() Options {
	return t.opts
}

// VisibleEnd returns the exclusive end of the words a renderer may show.
func (t *Test) VisibleEnd() int {
	if t.opts.LookAhead < 0 {
		return len(t.words)
	}
	return min(t.current+1+t.opts.LookAhead, len(t.words))
}

// HandleKey applies a single key event.
func (t *Test) HandleKey(ev keys.Event) {
	if len(t.words) == 0 {
		return
	}
	switch ev.Phase {
	case keys.Release:
		t.recordRelease(ev.Code, ev.Time)
		return
	case keys.Press:
	default:
		return
	}

	ctrl := ev.Mods.Has(keys.ModCtrl)
	switch {
	case (ev.Code == keys.Char(' ') || ev.Code == keys.Enter) && !ctrl:
		t.handleBoundary(ev)
	case ev.Code == keys.Backspace || (ctrl && isLetter(ev.Code, 'h')):
		t.handleDelete(ev)
	case ctrl && isLetter(ev.Code, 'w'):
		t.handleClearWord(ev)
	case ev.Code.IsChar() && !ctrl:
		t.handleChar(ev)
	}
}

// Reset clears all progress and returns to the first word.
func (t *Test) Reset() {
	for i := range t.words {
		t.words[i].Progress = ""
		t.words[i].Events = nil
	}
	t.current = 0
	t.complete = false
	t.pending = map[keys.Code]location{}
}

func (t *Test) handleBoundary(ev keys.Event) {
	w := &t.words[t.current]
	if next, ok := nextRune(w); ok && next == ' ' {
		w.Progress += " "
		t.record(ev, MarkCorrect)
		return
	}
	if w.Progress == "" && w.Text != "" {
		return
	}
	correct := t.fold(w.Progress) == t.fold(w.Text)
	if t.opts.SuddenDeath && !correct {
		t.Reset()
		return
	}
	t.record(ev, markOf(correct))
	t.nextWord()
}

func (t *Test) handleDelete(ev keys.Event) {
	if t.opts.NoBackspace {
		return
	}
	w := &t.words[t.current]
	if w.Progress == "" {
		if t.opts.Backtracking {
			t.previousWord()
		}
		return
	}
	// Deleting a wrong character is the right move.
	t.record(ev, markOf(!t.isPrefix(w.Progress, w.Text)))
	w.Progress = dropLastRune(w.Progress)
}

func (t *Test) handleClearWord(ev keys.Event) {
	if t.opts.NoBackspace {
		return
	}
	if t.words[t.current].Progress == "" && t.opts.Backtracking {
		t.previousWord()
	}
	w := &t.words[t.current]
	t.record(ev, MarkNeutral)
	w.Progress = ""
}

func (t *Test) handleChar(ev keys.Event) {
	r := ev.Code.Rune
	if t.opts.CaseInsensitive {
		r = unicode.ToLower(r)
	}
	w := &t.words[t.current]
	w.Progress += string(r)
	correct := t.isPrefix(w.Progress, w.Text)
	if t.opts.SuddenDeath && !correct {
		t.Reset()
		return
	}
	t.record(ev, markOf(correct))
	if t.current == len(t.words)-1 && t.fold(w.Progress) == t.fold(w.Text) {
		t.finish()
	}
}

func (t *Test) record(ev keys.Event, mark Mark) {
	w := &t.words[t.current]
	w.Events = append(w.Events, KeyEvent{
		Time: ev.Time,
		Code: ev.Code,
		Mods: ev.Mods,
		Mark: mark,
	})
	t.pending[ev.Code] = location{word: t.current, event: len(w.Events) - 1}
}

func (t *Test) recordRelease(code keys.Code, at time.Time) {
	loc, ok := t.pending[code]
	if !ok {
		return
	}
	delete(t.pending, code)
	if loc.word >= len(t.words) || loc.event >= len(t.words[loc.word].Events) {
		return
	}
	t.words[loc.word].Events[loc.event].ReleasedAt = at
}

func (t *Test) previousWord() {
	if t.current > 0 {
		t.current--
	}
}

func (t *Test) nextWord() {
	if t.current == len(t.words)-1 {
		t.finish()
		return
	}
	t.current++
}

func (t *Test) finish() {
	t.complete = true
	t.current = 0
}

func (t *Test) fold(s string) string {
	if t.opts.CaseInsensitive {
		return strings.ToLower(s)
	}
	return s
}

func (t *Test) isPrefix(progress, text string) bool {
	return strings.HasPrefix(t.fold(text), t.fold(progress))
}

func nextRune(w *Word) (rune, bool) {
	idx := utf8.RuneCountInString(w.Progress)
	for i, r := range []rune(w.Text) {
		if i == idx {
			return r, true
		}
	}
	return 0, false
}

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func isLetter(code keys.Code, letter rune) bool {
	return code.IsChar() && unicode.ToLower(code.Rune) == letter
}

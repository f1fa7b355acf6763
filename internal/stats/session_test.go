package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/typr/internal/keys"
	"github.com/verte-zerg/typr/internal/results"
	"github.com/verte-zerg/typr/internal/typing"
)

func typedTest(t *testing.T) *typing.Test {
	t.Helper()
	test := typing.New([]string{"ab", "c"}, typing.DefaultOptions())
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.Local)
	press := func(code keys.Code) {
		test.HandleKey(keys.PressOf(code, 0, now))
		now = now.Add(100 * time.Millisecond)
	}
	press(keys.Char('a'))
	test.HandleKey(keys.ReleaseOf(keys.Char('a'), now.Add(-20*time.Millisecond)))
	press(keys.Char('x'))
	press(keys.Backspace)
	press(keys.Char('b'))
	press(keys.Char(' '))
	press(keys.Char('c'))
	if !test.Complete() {
		t.Fatalf("expected test to complete")
	}
	return test
}

func TestCharStatsFromWords(t *testing.T) {
	test := typedTest(t)
	stats := CharStatsFromWords(test.Words())
	byChar := map[string]int{}
	for i, cs := range stats {
		byChar[cs.Char] = i
	}
	if _, ok := byChar[" "]; ok {
		t.Fatalf("space should not be tracked")
	}
	a := stats[byChar["a"]]
	if a.Correct != 1 || a.Incorrect != 0 || a.LatencyCount != 0 {
		t.Fatalf("unexpected a stats %+v", a)
	}
	if a.DwellCount != 1 || a.DwellSumMs != 80 {
		t.Fatalf("unexpected a dwell %+v", a)
	}
	x := stats[byChar["x"]]
	if x.Correct != 0 || x.Incorrect != 1 {
		t.Fatalf("unexpected x stats %+v", x)
	}
	b := stats[byChar["b"]]
	if b.Correct != 1 || b.LatencyCount != 1 || b.LatencySumMs != 100 {
		t.Fatalf("unexpected b stats %+v", b)
	}
}

func TestBuildSession(t *testing.T) {
	test := typedTest(t)
	r := results.Derive(test)
	session, chars, ok := BuildSession(test.Words(), "english200", "english200", r)
	if !ok {
		t.Fatalf("expected session")
	}
	if session.DurationMs != 500 || session.Words != 2 {
		t.Fatalf("unexpected session %+v", session)
	}
	if session.Correct != r.Accuracy.Overall.Numerator || session.Total != r.Accuracy.Overall.Denominator {
		t.Fatalf("unexpected counts %+v", session)
	}
	if len(chars) != 4 {
		t.Fatalf("expected 4 chars, got %+v", chars)
	}
}

func TestBuildSessionEmpty(t *testing.T) {
	test := typing.New([]string{"a"}, typing.DefaultOptions())
	if _, _, ok := BuildSession(test.Words(), "x", "x", results.Derive(test)); ok {
		t.Fatalf("expected no session for untyped test")
	}
}

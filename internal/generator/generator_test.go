package generator

import (
	"sort"
	"strings"
	"testing"
)

func TestPickCyclesThroughShuffledWords(t *testing.T) {
	g := NewSeeded(1)
	words := []string{"a", "b", "c"}
	got := g.Pick(words, 7)
	if len(got) != 7 {
		t.Fatalf("expected 7 words, got %d", len(got))
	}
	first := append([]string(nil), got[:3]...)
	sort.Strings(first)
	if strings.Join(first, "") != "abc" {
		t.Fatalf("expected first cycle to be a permutation, got %v", got[:3])
	}
	for i := 3; i < len(got); i++ {
		if got[i] != got[i-3] {
			t.Fatalf("expected cycle to repeat at %d: %v", i, got)
		}
	}
}

func TestPickDoesNotMutateInput(t *testing.T) {
	words := []string{"one", "two", "three", "four"}
	NewSeeded(2).Pick(words, 4)
	if strings.Join(words, ",") != "one,two,three,four" {
		t.Fatalf("input mutated: %v", words)
	}
}

func TestPickEmpty(t *testing.T) {
	if got := NewSeeded(1).Pick(nil, 5); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestRepeatCountsEachWord(t *testing.T) {
	got := NewSeeded(3).Repeat([]string{"x", "y"}, RepeatCount)
	if len(got) != 10 {
		t.Fatalf("expected 10 words, got %d", len(got))
	}
	counts := map[string]int{}
	for _, w := range got {
		counts[w]++
	}
	if counts["x"] != 5 || counts["y"] != 5 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestPickWeightedPrefersWeakWords(t *testing.T) {
	g := NewSeeded(4)
	words := []string{"zzz", "aaa"}
	got := g.PickWeighted(words, 2000, map[rune]struct{}{'z': {}}, 5)
	weak := 0
	for _, w := range got {
		if w == "zzz" {
			weak++
		}
	}
	// weight 16 vs 1
	if weak < 1700 {
		t.Fatalf("expected weak word to dominate, got %d of %d", weak, len(got))
	}
}

func TestPickWeightedWithoutWeakSetFallsBack(t *testing.T) {
	got := NewSeeded(5).PickWeighted([]string{"a", "b"}, 4, nil, 2)
	if len(got) != 4 {
		t.Fatalf("expected 4 words, got %v", got)
	}
}

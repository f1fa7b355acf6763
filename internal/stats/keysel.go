package stats

import (
	"cmp"
	"slices"

	"github.com/verte-zerg/typr/internal/model"
)

// TopCharsByFrequency returns up to n keys with the most attempts, ties
// broken by key.
func TopCharsByFrequency(aggs []model.CharAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	ranked := SortByAttempts(aggs)
	n = min(n, len(ranked))
	out := make([]string, 0, n)
	for _, agg := range ranked[:n] {
		out = append(out, agg.Char)
	}
	return out
}

// SortByAttempts returns a copy of aggs ordered by attempts, most first,
// then by key.
func SortByAttempts(aggs []model.CharAggregate) []model.CharAggregate {
	return rankChars(aggs, func(a, b model.CharAggregate) int {
		return cmp.Compare(attempts(b), attempts(a))
	})
}

// SelectWeakChars returns the first rune of the top lowest-accuracy keys.
// A non-positive top selects every key.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	ranked := rankChars(aggs, func(a, b model.CharAggregate) int {
		return cmp.Compare(accuracy(a), accuracy(b))
	})
	if top <= 0 || top > len(ranked) {
		top = len(ranked)
	}
	weak := make(map[rune]struct{}, top)
	for _, agg := range ranked[:top] {
		for _, r := range agg.Char {
			weak[r] = struct{}{}
			break
		}
	}
	return weak
}

// rankChars sorts a copy of aggs by order, falling back to the key itself.
func rankChars(aggs []model.CharAggregate, order func(a, b model.CharAggregate) int) []model.CharAggregate {
	ranked := slices.Clone(aggs)
	slices.SortFunc(ranked, func(a, b model.CharAggregate) int {
		if c := order(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Char, b.Char)
	})
	return ranked
}

func attempts(agg model.CharAggregate) int {
	return agg.Correct + agg.Incorrect
}

// accuracy treats a key with no attempts as fully accurate.
func accuracy(agg model.CharAggregate) float64 {
	total := attempts(agg)
	if total == 0 {
		return 1
	}
	return float64(agg.Correct) / float64(total)
}

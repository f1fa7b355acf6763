package typing

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/verte-zerg/typr/internal/keys"
)

func TestStateMachineProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("spelled non-last word advances by one", prop.ForAll(
		func(words []string, idx int) bool {
			idx = idx % (len(words) - 1)
			f := newFeeder(words, DefaultOptions())
			for i := 0; i < idx; i++ {
				f.typeString(words[i])
				f.space()
			}
			f.typeString(words[idx])
			f.space()
			w := f.t.Words()[idx]
			return f.t.Current() == idx+1 && !w.Missed() && w.Progress == words[idx]
		},
		gen.SliceOfN(6, gen.RegexMatch(`^[a-z]{1,8}$`)),
		gen.IntRange(0, 100),
	))

	properties.Property("sudden death wrong word resets everything", prop.ForAll(
		func(words []string) bool {
			opts := DefaultOptions()
			opts.SuddenDeath = true
			f := newFeeder(words, opts)
			f.typeString(words[0])
			f.space()
			// A strict prefix is accepted per char but fails at the boundary.
			f.typeString(words[1][:len(words[1])-1])
			f.space()
			for _, w := range f.t.Words() {
				if w.Progress != "" || len(w.Events) != 0 {
					return false
				}
			}
			return f.t.Current() == 0 && !f.t.Complete()
		},
		gen.SliceOfN(3, gen.RegexMatch(`^[a-z]{2,8}$`)),
	))

	properties.Property("backspace at word start respects backtracking", prop.ForAll(
		func(words []string, backtrack bool) bool {
			opts := DefaultOptions()
			opts.Backtracking = backtrack
			f := newFeeder(words, opts)
			f.typeString(words[0])
			f.space()
			f.press(keys.Backspace, 0)
			if backtrack {
				return f.t.Current() == 0
			}
			return f.t.Current() == 1
		},
		gen.SliceOfN(3, gen.RegexMatch(`^[a-z]{1,8}$`)),
		gen.Bool(),
	))

	properties.Property("case-insensitive upper typing matches lower target", prop.ForAll(
		func(word string) bool {
			f := newFeeder([]string{word}, caseInsensitive())
			for _, r := range word {
				f.press(keys.Char(r-'a'+'A'), keys.ModShift)
			}
			return f.t.Complete()
		},
		gen.RegexMatch(`^[a-z]{1,10}$`),
	))

	properties.TestingRun(t)
}

package wordlist

import (
	"slices"
	"strings"
	"unicode"
)

// FilterFunc reports whether a word should be kept.
type FilterFunc func(string) bool

// FilterForLang picks the word filter for a language. English lists are
// restricted to ASCII letters; other languages only lose words that cannot
// be typed as a single token.
func FilterForLang(lang string) FilterFunc {
	if strings.HasPrefix(strings.ToLower(lang), "english") {
		return onlyRunes(func(r rune) bool { return r < unicode.MaxASCII && unicode.IsLetter(r) })
	}
	return onlyRunes(func(r rune) bool { return unicode.IsGraphic(r) && !unicode.IsSpace(r) })
}

// Filter returns the words accepted by keep, in order.
func Filter(words []string, keep FilterFunc) []string {
	return slices.DeleteFunc(slices.Clone(words), func(w string) bool { return !keep(w) })
}

func onlyRunes(ok func(rune) bool) FilterFunc {
	return func(word string) bool {
		return word != "" && strings.IndexFunc(word, func(r rune) bool { return !ok(r) }) < 0
	}
}

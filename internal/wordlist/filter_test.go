package wordlist

import "testing"

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("english200")
	for _, word := range []string{"hello", "I"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass english filter", word)
		}
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterOtherLanguagesKeepsAll(t *testing.T) {
	words := Filter([]string{"Straße", "naïve"}, FilterForLang("german"))
	if len(words) != 2 {
		t.Fatalf("expected all words kept, got %v", words)
	}
}

func TestFilterDropsUntypeableWords(t *testing.T) {
	words := Filter([]string{"", "zwei wörter", "tab\tword", "gut"}, FilterForLang("german"))
	if len(words) != 1 || words[0] != "gut" {
		t.Fatalf("unexpected words %v", words)
	}
}

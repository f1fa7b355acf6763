package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWordsSplitsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("one two\n\tthree\n\nfour  "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Join(words, ",") != "one,two,three,four" {
		t.Fatalf("unexpected words %v", words)
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 'a'})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected invalid utf-8 error, got %v", err)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrEmpty) {
			t.Fatalf("expected empty error for %q, got %v", in, err)
		}
	}
}

func TestReadFromReader(t *testing.T) {
	words, err := Read(strings.NewReader("alpha beta"))
	if err != nil || len(words) != 2 {
		t.Fatalf("unexpected result %v/%v", words, err)
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEmbeddedLanguages(t *testing.T) {
	langs, err := Languages("")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if strings.Join(langs, ",") != "english1000,english200" {
		t.Fatalf("unexpected languages %v", langs)
	}
	words, err := LoadLanguage("english200", "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 200 || words[0] != "the" {
		t.Fatalf("unexpected english200 contents: %d words", len(words))
	}
	big, err := LoadLanguage("english1000", "")
	if err != nil || len(big) != 1000 {
		t.Fatalf("unexpected english1000: %d/%v", len(big), err)
	}
}

func TestUserLanguageOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "english200"), []byte("custom words café"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "klingon"), []byte("Qapla' tlhIngan"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadLanguage("english200", dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Join(words, ",") != "custom,words" {
		t.Fatalf("unexpected words %v", words)
	}
	langs, err := Languages(dir)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if strings.Join(langs, ",") != "english1000,english200,klingon" {
		t.Fatalf("unexpected languages %v", langs)
	}
	if _, err := LoadLanguage("klingon", dir); err != nil {
		t.Fatalf("load klingon: %v", err)
	}
}

func TestLoadLanguageErrors(t *testing.T) {
	for _, name := range []string{"", "../etc", "missing"} {
		if _, err := LoadLanguage(name, t.TempDir()); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}

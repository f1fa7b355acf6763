// Package wordlist loads word lists from files, stdin and embedded languages.
package wordlist

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

//go:embed languages/*
var embedded embed.FS

// ErrInvalidUTF8 is returned for word sources that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("has invalid UTF-8 encoding")

// ErrEmpty is returned when a source yields no words.
var ErrEmpty = errors.New("word list is empty")

// LoadWords reads whitespace-separated words from path, or stdin for "-".
func LoadWords(path string) ([]string, error) {
	if path == Stdin {
		return Read(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	words, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Read splits r into words.
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse splits data into words, rejecting invalid UTF-8 and empty input.
func Parse(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	words := strings.Fields(string(bytes.TrimPrefix(data, []byte("\ufeff"))))
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// Languages lists the embedded languages plus those in userDir, sorted and
// de-duplicated.
func Languages(userDir string) ([]string, error) {
	set := map[string]struct{}{}
	entries, err := embedded.ReadDir("languages")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		set[entry.Name()] = struct{}{}
	}
	if userDir != "" {
		userEntries, err := os.ReadDir(userDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read language directory: %w", err)
		}
		for _, entry := range userEntries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			set[entry.Name()] = struct{}{}
		}
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// LoadLanguage loads a named language, preferring a file in userDir over the
// embedded copy.
func LoadLanguage(name, userDir string) ([]string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid language name %q", name)
	}
	var words []string
	if userDir != "" {
		path := filepath.Join(userDir, name)
		loaded, err := LoadWords(path)
		switch {
		case err == nil:
			words = loaded
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}
	if words == nil {
		data, err := embedded.ReadFile("languages/" + name)
		if err != nil {
			return nil, fmt.Errorf("language %q not found", name)
		}
		if words, err = Parse(data); err != nil {
			return nil, fmt.Errorf("language %q: %w", name, err)
		}
	}
	words = Filter(words, FilterForLang(name))
	if len(words) == 0 {
		return nil, fmt.Errorf("language %q: %w", name, ErrEmpty)
	}
	return words, nil
}

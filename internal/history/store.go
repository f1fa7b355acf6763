package history

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typr/internal/results"
)

// Filters narrows a history query. Empty fields match everything; Last keeps
// the most recent N matches when positive.
type Filters struct {
	Language string
	Since    string
	Until    string
	Last     int
}

// Validate checks the date bounds.
func (f Filters) Validate() error {
	for _, d := range []string{f.Since, f.Until} {
		if d == "" {
			continue
		}
		if err := ValidateDate(d); err != nil {
			return err
		}
	}
	if f.Since != "" && f.Until != "" && f.Since > f.Until {
		return errors.New("--since date must be before or equal to --until date")
	}
	return nil
}

func (f Filters) match(rec Record) bool {
	if f.Language != "" && rec.Language != f.Language {
		return false
	}
	date := rec.Date()
	if f.Since != "" && date < f.Since {
		return false
	}
	if f.Until != "" && date > f.Until {
		return false
	}
	return true
}

// Store is a CSV history file.
type Store struct {
	path string
	logw io.Writer
}

// New returns a store for path. Best-effort write failures are reported to
// logw, or stderr when logw is nil.
func New(path string, logw io.Writer) *Store {
	if logw == nil {
		logw = os.Stderr
	}
	return &Store{path: path, logw: logw}
}

// Path returns the history file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes rec, preceded by the header when the file is new.
func (s *Store) Append(rec Record) error {
	isNew := false
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		isNew = true
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after flush.
			_ = cerr
		}
	}()

	w := csv.NewWriter(file)
	if isNew {
		if err := w.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("failed to write history header: %w", err)
		}
	}
	if err := w.Write(rec.Fields()); err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush history file: %w", err)
	}
	return nil
}

// Save records a finished session. Failures are logged and never returned.
func (s *Store) Save(at time.Time, lang string, words int, r results.Results) {
	if err := s.Append(NewRecord(at, lang, words, r)); err != nil {
		if _, werr := fmt.Fprintf(s.logw, "warning: %v\n", err); werr != nil {
			_ = werr
		}
	}
}

// Load returns every well-formed record in file order. A missing file yields
// no records.
func (s *Store) Load() ([]Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close on read.
			_ = cerr
		}
	}()

	var records []Record
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			first = false
			if strings.HasPrefix(line, "datetime,") {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return records, nil
}

// Query returns the records matching f, oldest first.
func (s *Store) Query(f Filters) ([]Record, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	all, err := s.Load()
	if err != nil {
		return nil, err
	}
	return Filter(all, f), nil
}

// Filter applies f to records without validating the date bounds.
func Filter(records []Record, f Filters) []Record {
	var out []Record
	for _, rec := range records {
		if f.match(rec) {
			out = append(out, rec)
		}
	}
	if f.Last > 0 && len(out) > f.Last {
		out = out[len(out)-f.Last:]
	}
	return out
}

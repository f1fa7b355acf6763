package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typr/internal/keys"
	"github.com/verte-zerg/typr/internal/results"
)

const sampleCSV = Header + `
2026-02-10 10:00:00,english,50,72.0,68.4,95.0,190,200,a:90%,
2026-02-11 10:00:00,english,50,75.0,71.2,95.0,190,200,,
2026-02-12 10:00:00,peter1000,50,78.0,74.1,95.0,380,400,y:50%,hello
2026-02-13 10:00:00,peter1000,50,80.0,76.0,95.0,380,400,,,
2026-02-14 10:00:00,peter1000,50,82.0,77.9,95.0,380,400,,world,102.5
`

func writeSample(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return New(path, &bytes.Buffer{})
}

func sampleResults(missed []string) results.Results {
	// Thirteen intervals over two seconds: 6.5 characters per second.
	intervals := make([]float64, 0, 13)
	for i := 0; i < 12; i++ {
		intervals = append(intervals, 0.125)
	}
	intervals = append(intervals, 0.5)
	return results.Results{
		Timing: results.NewTiming(intervals, nil),
		Accuracy: results.Accuracy{
			Overall: results.NewFraction(380, 400),
			PerKey:  map[keys.Code]results.Fraction{keys.Char('y'): results.NewFraction(1, 2)},
		},
		MissedWords: missed,
	}
}

func TestRecordFields(t *testing.T) {
	at := time.Date(2026, 2, 14, 12, 43, 34, 0, time.Local)
	rec := NewRecord(at, "peter1000", 50, sampleResults([]string{"Architektur", "Frontend"}))
	fields := rec.Fields()
	want := []string{"2026-02-14 12:43:34", "peter1000", "50", "78.0", "74.1", "95.0", "380", "400", "y:50%", "Architektur;Frontend", ""}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field %d: expected %q, got %q", i, want[i], fields[i])
		}
	}
}

func TestRecordWithoutTiming(t *testing.T) {
	r := results.Results{Accuracy: results.Accuracy{Overall: results.NewFraction(1, 1)}}
	rec := NewRecord(time.Now(), "english", 1, r)
	if rec.WPMRaw != 0 || rec.WPMAdjusted != 0 {
		t.Fatalf("expected zero wpm, got %v/%v", rec.WPMRaw, rec.WPMAdjusted)
	}
}

func TestDwellRoundTrip(t *testing.T) {
	at := time.Date(2026, 2, 14, 12, 0, 0, 0, time.Local)
	store := New(filepath.Join(t.TempDir(), "history.csv"), nil)

	none := NewRecord(at, "english", 10, sampleResults(nil))
	with := none
	with.DwellMs = 102.5
	with.HasDwell = true
	for _, rec := range []Record{none, with} {
		if err := store.Append(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].HasDwell {
		t.Fatalf("expected no dwell data on first record")
	}
	if !got[1].HasDwell || got[1].DwellMs != 102.5 {
		t.Fatalf("expected dwell 102.5, got %v/%v", got[1].HasDwell, got[1].DwellMs)
	}
}

func TestParseLegacyRecord(t *testing.T) {
	rec, err := ParseRecord("2026-02-10 10:00:00,english,50,72.0,68.4,95.0,190,200,a:90%,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.HasDwell {
		t.Fatalf("expected legacy record to have no dwell")
	}
	if rec.Correct != 190 || rec.Total != 200 || rec.WorstKeys != "a:90%" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLoadUnquotedLegacyLinesWithQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := Header + "\n" +
		"2026-02-10 10:00:00,english,50,72.0,68.4,95.0,19,20,\":50%;a:90%,it's\n" +
		"2026-02-11 10:00:00,english,50,72.0,68.4,95.0,19,20,a:90%,\"quoted\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := New(path, nil).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 legacy records, got %d", len(got))
	}
	if got[0].WorstKeys != "\":50%;a:90%" || got[0].MissedWords != "it's" {
		t.Fatalf("unexpected first record %+v", got[0])
	}
	if got[1].MissedWords != "\"quoted" || got[1].HasDwell {
		t.Fatalf("unexpected second record %+v", got[1])
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"garbage",
		"2026-02-10 10:00:00,english,50,72.0,68.4,95.0,190,200",
		"2026-02-10,english,50,72.0,68.4,95.0,190,200,,",
		"2026-02-10 10:00:00,english,fifty,72.0,68.4,95.0,190,200,,",
		"2026-02-10 10:00:00,english,50,fast,68.4,95.0,190,200,,",
		"2026-02-10 10:00:00,english,50,72.0,68.4,95.0,190,200,,,slow",
		"2026-02-10 10:00:00,english,50,72.0,68.4,95.0,190,200,,,1,2",
	}
	for _, line := range cases {
		if _, err := ParseRecord(line); err == nil {
			t.Fatalf("expected error for %q", line)
		}
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.csv")
	store := New(path, nil)
	rec := NewRecord(time.Now(), "test", 50, sampleResults(nil))
	for i := 0; i < 2; i++ {
		if err := store.Append(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != Header {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "datetime,") != 1 {
		t.Fatalf("expected a single header")
	}
}

func TestAppendQuotesCommas(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "history.csv"), nil)
	rec := NewRecord(time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local), "code", 5, sampleResults([]string{"a,b", `say"hi"`}))
	if err := store.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].MissedWords != `a,b;say"hi"` {
		t.Fatalf("unexpected records %+v", got)
	}
}

func TestSaveSwallowsErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var logs bytes.Buffer
	store := New(filepath.Join(blocker, "history.csv"), &logs)
	store.Save(time.Now(), "english", 10, sampleResults(nil))
	if !strings.Contains(logs.String(), "warning:") {
		t.Fatalf("expected a logged warning, got %q", logs.String())
	}
}

func TestQuerySince(t *testing.T) {
	store := writeSample(t)
	recs, err := store.Query(Filters{Since: "2026-02-13"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 || recs[0].Date() != "2026-02-13" || recs[1].Date() != "2026-02-14" {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestQueryRangeAndLanguage(t *testing.T) {
	store := writeSample(t)
	recs, err := store.Query(Filters{Language: "peter1000", Since: "2026-02-11", Until: "2026-02-13"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 || recs[0].Date() != "2026-02-12" || recs[1].Date() != "2026-02-13" {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestQueryLast(t *testing.T) {
	store := writeSample(t)
	recs, err := store.Query(Filters{Last: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 || recs[0].Date() != "2026-02-13" || recs[1].Date() != "2026-02-14" {
		t.Fatalf("unexpected records %+v", recs)
	}
	all, err := store.Query(Filters{Last: 100})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 records, got %d", len(all))
	}
}

func TestQueryMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.csv"), nil)
	recs, err := store.Query(Filters{})
	if err != nil || len(recs) != 0 {
		t.Fatalf("expected no records and no error, got %v/%v", recs, err)
	}
}

func TestQuerySkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := Header + "\nnot,a,record\n2026-02-10 10:00:00,english,50,72.0,68.4,95.0,190,200,,\n\"broken\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := New(path, nil).Query(Filters{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
}

func TestInvalidDateFilters(t *testing.T) {
	store := writeSample(t)
	for _, f := range []Filters{
		{Since: "2026-2-13"},
		{Until: "13/02/2026"},
		{Since: "2026-02-13x"},
		{Since: "2026-02-14", Until: "2026-02-13"},
	} {
		if _, err := store.Query(f); err == nil {
			t.Fatalf("expected error for %+v", f)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2026-02-13"); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	for _, s := range []string{"", "2026-02", "2026/02/13", "abcd-ef-gh", "2026-02-130"} {
		if err := ValidateDate(s); err == nil {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

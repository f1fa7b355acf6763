// Package history persists one summary per typing session to an append-only
// CSV file and computes filtered listings and aggregates over it.
package history

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typr/internal/results"
)

// Header is the first line of every history file.
const Header = "datetime,language,words,wpm_raw,wpm_adjusted,accuracy,correct,total,worst_keys,missed_words,avg_dwell_ms"

const (
	// DateTimeLayout is the record timestamp format (local time).
	DateTimeLayout = "2006-01-02 15:04:05"
	// DateLayout is the date filter format.
	DateLayout = "2006-01-02"

	legacyFieldCount = 10
	fieldCount       = 11
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Record is one stored session summary.
type Record struct {
	At          time.Time
	Language    string
	Words       int
	WPMRaw      float64
	WPMAdjusted float64
	Accuracy    float64
	Correct     int
	Total       int
	WorstKeys   string
	MissedWords string
	DwellMs     float64
	HasDwell    bool
}

// NewRecord summarizes results for storage. WPM is 0 when timing could not be
// computed.
func NewRecord(at time.Time, lang string, words int, r results.Results) Record {
	raw, adjusted, _ := r.WPM()
	rec := Record{
		At:          at,
		Language:    lang,
		Words:       words,
		WPMRaw:      raw,
		WPMAdjusted: adjusted,
		Accuracy:    r.Accuracy.Overall.Percent(),
		Correct:     r.Accuracy.Overall.Numerator,
		Total:       r.Accuracy.Overall.Denominator,
		WorstKeys:   r.Accuracy.FormatWorstKeys(),
		MissedWords: strings.Join(r.MissedWords, ";"),
	}
	if r.Dwell.HasData {
		rec.DwellMs = r.Dwell.OverallAvgMs
		rec.HasDwell = true
	}
	return rec
}

// Date returns the YYYY-MM-DD prefix used for filtering.
func (r Record) Date() string {
	return r.At.Format(DateLayout)
}

// Fields renders the record in header order.
func (r Record) Fields() []string {
	dwell := ""
	if r.HasDwell {
		dwell = formatFloat(r.DwellMs)
	}
	return []string{
		r.At.Format(DateTimeLayout),
		r.Language,
		strconv.Itoa(r.Words),
		formatFloat(r.WPMRaw),
		formatFloat(r.WPMAdjusted),
		formatFloat(r.Accuracy),
		strconv.Itoa(r.Correct),
		strconv.Itoa(r.Total),
		r.WorstKeys,
		r.MissedWords,
		dwell,
	}
}

// ParseRecord parses one CSV line. Lines without the trailing dwell field are
// accepted with no dwell data. Older files were written without quoting, so a
// line that is not valid CSV is split on commas instead.
func ParseRecord(line string) (Record, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	fields, err := reader.Read()
	if err != nil {
		fields = strings.Split(line, ",")
	}
	return parseFields(fields)
}

func parseFields(fields []string) (Record, error) {
	if len(fields) != legacyFieldCount && len(fields) != fieldCount {
		return Record{}, fmt.Errorf("expected %d or %d fields, got %d", legacyFieldCount, fieldCount, len(fields))
	}
	var rec Record
	var err error
	if rec.At, err = time.ParseInLocation(DateTimeLayout, fields[0], time.Local); err != nil {
		return Record{}, fmt.Errorf("invalid datetime %q: %w", fields[0], err)
	}
	rec.Language = fields[1]
	if rec.Words, err = strconv.Atoi(fields[2]); err != nil {
		return Record{}, fmt.Errorf("invalid words %q: %w", fields[2], err)
	}
	floats := []*float64{&rec.WPMRaw, &rec.WPMAdjusted, &rec.Accuracy}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(fields[3+i], 64); err != nil {
			return Record{}, fmt.Errorf("invalid number %q: %w", fields[3+i], err)
		}
	}
	if rec.Correct, err = strconv.Atoi(fields[6]); err != nil {
		return Record{}, fmt.Errorf("invalid correct count %q: %w", fields[6], err)
	}
	if rec.Total, err = strconv.Atoi(fields[7]); err != nil {
		return Record{}, fmt.Errorf("invalid total count %q: %w", fields[7], err)
	}
	rec.WorstKeys = fields[8]
	rec.MissedWords = fields[9]
	if len(fields) == fieldCount && fields[10] != "" {
		if rec.DwellMs, err = strconv.ParseFloat(fields[10], 64); err != nil {
			return Record{}, fmt.Errorf("invalid dwell %q: %w", fields[10], err)
		}
		rec.HasDwell = true
	}
	return rec, nil
}

// ValidateDate checks that s has the YYYY-MM-DD shape.
func ValidateDate(s string) error {
	if !datePattern.MatchString(s) {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

package stats

import (
	"testing"

	"github.com/verte-zerg/typr/internal/model"
)

func TestCharRowsSortAndFormat(t *testing.T) {
	rows := CharRows([]model.CharAggregate{
		{Char: "a", Correct: 3, Incorrect: 1, LatencySumMs: 300, LatencyCount: 3},
		{Char: "b", Correct: 1, Incorrect: 1, DwellSumMs: 200, DwellCount: 2},
	})
	if rows[0].Char != "b" || rows[1].Char != "a" {
		t.Fatalf("unexpected order %+v", rows)
	}
	cells := rows[0].Cells()
	if cells[1] != "50.00%" || cells[3] != "100.0" {
		t.Fatalf("unexpected cells %v", cells)
	}
	if rows[1].Cells()[2] != "100.0" || rows[1].Cells()[3] != "-" {
		t.Fatalf("unexpected cells %v", rows[1].Cells())
	}
}

func TestParseChars(t *testing.T) {
	got := ParseChars(" a, ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected chars %v", got)
	}
}

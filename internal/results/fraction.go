// Package results derives timing, accuracy and dwell statistics from a typing test.
package results

import "fmt"

// Fraction is an exact correct-over-total ratio.
type Fraction struct {
	Numerator   int
	Denominator int
}

// NewFraction returns numerator/denominator.
func NewFraction(numerator, denominator int) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

// Float converts the fraction; an empty fraction is 0.
func (f Fraction) Float() float64 {
	if f.Denominator == 0 {
		return 0
	}
	return float64(f.Numerator) / float64(f.Denominator)
}

// Percent returns the fraction scaled to 0-100.
func (f Fraction) Percent() float64 {
	return f.Float() * 100
}

// Less orders fractions by value.
func (f Fraction) Less(other Fraction) bool {
	return f.Float() < other.Float()
}

// Empty reports whether no events were counted.
func (f Fraction) Empty() bool {
	return f.Denominator == 0
}

func (f Fraction) add(correct bool) Fraction {
	f.Denominator++
	if correct {
		f.Numerator++
	}
	return f
}

// String renders "n/d".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

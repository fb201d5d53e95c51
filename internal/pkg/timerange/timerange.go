package timerange

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("start must be before end")

// Range is a half-open time interval [Start, End).
// The start instant belongs to the range, the end instant does not,
// so back-to-back ranges can legally share a boundary.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a Range from two instants.
// Zero-length and inverted inputs are rejected with ErrInvalidRange.
func New(start, end time.Time) (Range, error) {
	if !start.Before(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Overlaps reports whether r and other share at least one instant.
// Ranges that merely touch, like [a,b) and [b,c), do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether t falls inside r.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the range.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

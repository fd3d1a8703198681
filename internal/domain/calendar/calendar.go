// Package calendar normalizes calendar dates to local midnight and formats
// them for display.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date layout used by event records.
const DateLayout = "2006-01-02"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.At }

// ParseDate validates an ISO calendar date and returns it as midnight in loc.
// Surrounding whitespace is rejected.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Midnight truncates t to 00:00 of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Normalizer turns dates into comparable local-midnight instants.
type Normalizer struct {
	clock Clock
	loc   *time.Location
}

// NewNormalizer builds a Normalizer. A nil clock reads the wall clock and a
// nil location means time.Local.
func NewNormalizer(clock Clock, loc *time.Location) *Normalizer {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{clock: clock, loc: loc}
}

// Location returns the display location used for normalization.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Now returns the clock's current instant.
func (n *Normalizer) Now() time.Time {
	return n.clock.Now()
}

// Today returns local midnight of the current date.
func (n *Normalizer) Today() time.Time {
	return Midnight(n.clock.Now(), n.loc)
}

// Normalize returns local midnight of the given ISO date.
func (n *Normalizer) Normalize(date string) (time.Time, error) {
	return ParseDate(date, n.loc)
}

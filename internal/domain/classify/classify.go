// Package classify partitions events into upcoming and past relative to today
// and orders each partition.
package classify

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/model"
)

// Normalizer is the subset of calendar.Normalizer the classifier needs.
type Normalizer interface {
	Today() time.Time
	Normalize(date string) (time.Time, error)
}

var _ Normalizer = (*calendar.Normalizer)(nil)

type dated struct {
	event model.Event
	day   time.Time
}

// Split partitions events into upcoming (on or after today) and past.
//
// Upcoming is sorted soonest first and past most recent first. Both sorts are
// stable, so events sharing a date keep their input order. A record whose date
// does not normalize fails the whole split.
func Split(events []model.Event, norm Normalizer) (model.Partitions, error) {
	return SplitAt(events, norm.Today(), norm)
}

// SplitAt is Split against a given day, which must be a local midnight as
// returned by Normalizer.Today.
func SplitAt(events []model.Event, today time.Time, norm Normalizer) (model.Partitions, error) {
	upcoming := make([]dated, 0, len(events))
	past := make([]dated, 0, len(events))

	for i, e := range events {
		day, err := norm.Normalize(e.Date)
		if err != nil {
			return model.Partitions{}, fmt.Errorf("%w: record %d (%q): %w", ErrUnclassifiable, i, e.Title, err)
		}
		if !day.Before(today) {
			upcoming = append(upcoming, dated{event: e, day: day})
		} else {
			past = append(past, dated{event: e, day: day})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].day.Before(upcoming[j].day) })
	sort.SliceStable(past, func(i, j int) bool { return past[i].day.After(past[j].day) })

	return model.Partitions{
		Upcoming: unwrap(upcoming),
		Past:     unwrap(past),
	}, nil
}

// Preview returns at most n events from the front of the upcoming partition.
func Preview(p model.Partitions, n int) []model.Event {
	if n <= 0 {
		return []model.Event{}
	}
	if n > len(p.Upcoming) {
		n = len(p.Upcoming)
	}
	out := make([]model.Event, n)
	copy(out, p.Upcoming[:n])
	return out
}

func unwrap(in []dated) []model.Event {
	out := make([]model.Event, len(in))
	for i, d := range in {
		out[i] = d.event
	}
	return out
}

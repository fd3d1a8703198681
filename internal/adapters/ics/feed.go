// Package ics exports the event store as an iCalendar feed. Every event
// becomes an all-day VEVENT because records only carry a calendar date;
// the free-form time text goes into the description.
package ics

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/pkg/metrics"
)

const (
	defaultName   = "Club Events"
	defaultProdID = "-//eventboard//events feed//EN"
	uidDomain     = "eventboard"
)

// Feed builds calendars from event records.
type Feed struct {
	name   string
	prodID string
	loc    *time.Location
	clock  calendar.Clock
}

// Option applies a configuration option to the Feed.
type Option func(*Feed)

// WithName sets the calendar display name.
func WithName(name string) Option {
	return func(f *Feed) {
		if name != "" {
			f.name = name
		}
	}
}

// WithLocation sets the timezone the event dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(f *Feed) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithClock sets the clock used for DTSTAMP.
func WithClock(c calendar.Clock) Option {
	return func(f *Feed) {
		if c != nil {
			f.clock = c
		}
	}
}

// NewFeed creates a Feed with the given options.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		name:   defaultName,
		prodID: defaultProdID,
		loc:    time.Local,
		clock:  calendar.SystemClock{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// UID derives a stable identifier for an event from its title, date and
// location, so feed subscribers see updates instead of duplicates.
func UID(e model.Event) string {
	key := strings.Join([]string{e.Title, e.Date, e.Location}, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + "@" + uidDomain
}

// Build returns a calendar with one all-day VEVENT per record, in record order.
func (f *Feed) Build(events []model.Event) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(f.prodID)
	cal.SetName(f.name)
	cal.SetXWRCalName(f.name)
	cal.SetXWRTimezone(f.loc.String())

	stamp := f.clock.Now().UTC()
	for i, e := range events {
		day, err := calendar.ParseDate(e.Date, f.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d (%q): %w", ErrExport, i, e.Title, err)
		}

		ev := cal.AddEvent(UID(e))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Title)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if desc := description(e); desc != "" {
			ev.SetDescription(desc)
		}
		if e.Type != "" {
			ev.AddCategory(e.Type)
		}
		if e.HasRegistration() {
			ev.SetURL(e.RegisterLink)
		}
	}
	return cal, nil
}

// Write serializes the feed for events to w.
func (f *Feed) Write(ctx context.Context, w io.Writer, events []model.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cal, err := f.Build(events)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	metrics.RecordICSExport()
	return nil
}

func description(e model.Event) string {
	switch {
	case e.Time == "":
		return e.Description
	case e.Description == "":
		return e.Time
	default:
		return e.Time + "\n\n" + e.Description
	}
}

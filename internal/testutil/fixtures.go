// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"sync"
	"time"

	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/model"
)

// SampleEvents returns the five events shipped with the default site, in
// their configured order.
func SampleEvents() []model.Event {
	return []model.Event{
		{
			Title:        "Intro to AI Workshop",
			Date:         "2025-11-25",
			Time:         "3:00 PM – 5:00 PM",
			Location:     "Room 101, CS Building",
			Description:  "Hands-on session on basic AI concepts and Python demos.",
			Type:         "Workshop",
			RegisterLink: "https://example.com/register",
		},
		{
			Title:       "IEEE Welcome Meet",
			Date:        "2025-10-10",
			Time:        "4:00 PM – 6:00 PM",
			Location:    "Auditorium",
			Description: "Kick-off event to introduce IEEE activities for the semester.",
			Type:        "Meetup",
		},
		{
			Title:        "Web Development Bootcamp",
			Date:         "2025-12-05",
			Time:         "10:00 AM – 4:00 PM",
			Location:     "Computer Lab 2",
			Description:  "Full-day intensive bootcamp covering HTML, CSS, and JavaScript fundamentals.",
			Type:         "Workshop",
			RegisterLink: "https://example.com/register",
		},
		{
			Title:       "Tech Talk: IoT in Smart Cities",
			Date:        "2025-11-20",
			Time:        "2:00 PM – 3:30 PM",
			Location:    "Seminar Hall",
			Description: "Expert speaker discussing IoT applications in modern urban development.",
			Type:        "Tech Talk",
		},
		{
			Title:        "Annual Hackathon 2025",
			Date:         "2026-01-15",
			Time:         "9:00 AM – 9:00 PM",
			Location:     "Main Campus Hall",
			Description:  "24-hour hackathon challenging students to build innovative solutions.",
			Type:         "Hackathon",
			RegisterLink: "https://example.com/hackathon",
		},
	}
}

// ClockAt returns a fixed clock at the given ISO date and hour in loc.
func ClockAt(date string, hour int, loc *time.Location) calendar.FixedClock {
	d, err := calendar.ParseDate(date, loc)
	if err != nil {
		panic(err)
	}
	return calendar.FixedClock{At: d.Add(time.Duration(hour) * time.Hour)}
}

// NormalizerAt returns a UTC normalizer whose today is date.
func NormalizerAt(date string) *calendar.Normalizer {
	return calendar.NewNormalizer(ClockAt(date, 10, time.UTC), time.UTC)
}

// Titles projects events to their titles.
func Titles(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

// ManualClock is a clock tests can move forward.
type ManualClock struct {
	mu sync.Mutex
	at time.Time
}

// NewManualClock starts a ManualClock at the given ISO date and hour in loc.
func NewManualClock(date string, hour int, loc *time.Location) *ManualClock {
	return &ManualClock{at: ClockAt(date, hour, loc).At}
}

// Now returns the current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

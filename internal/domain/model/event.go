// Package model contains domain models passed between layers.
package model

import "time"

// Event is one statically configured club activity.
// Records are loaded once and never mutated afterwards.
type Event struct {
	Title        string `yaml:"title" json:"title"`
	Date         string `yaml:"date" json:"date"` // ISO 8601 calendar date, YYYY-MM-DD
	Time         string `yaml:"time" json:"time"` // display text only
	Location     string `yaml:"location" json:"location"`
	Description  string `yaml:"description" json:"description"`
	Type         string `yaml:"type" json:"type"`
	RegisterLink string `yaml:"register_link" json:"register_link,omitempty"`
}

// HasRegistration reports whether the event links to an external registration page.
func (e Event) HasRegistration() bool {
	return e.RegisterLink != ""
}

// Partitions holds the classified and ordered event groups.
type Partitions struct {
	// Upcoming is ordered soonest first.
	Upcoming []Event
	// Past is ordered most recent first.
	Past []Event
}

// Len returns the total number of events across both partitions.
func (p Partitions) Len() int {
	return len(p.Upcoming) + len(p.Past)
}

// Snapshot is the classification of the store for one calendar day.
// Its slices are shared between readers and must not be modified.
type Snapshot struct {
	// Today is local midnight of the day the snapshot was built for.
	Today       time.Time
	Partitions  Partitions
	RefreshedAt time.Time
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/model"
)

// MemoryStore is an immutable in-memory Store.
type MemoryStore struct {
	events []model.Event
	loc    *time.Location
	source string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore validates events and returns a store holding a private copy.
// Every record needs a non-empty title and a date that parses as YYYY-MM-DD.
func NewMemoryStore(events []model.Event, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		loc:    time.Local,
		source: "memory",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.events = make([]model.Event, len(events))
	for i, e := range events {
		if err := validate(e, s.loc); err != nil {
			return nil, fmt.Errorf("%w: record %d (%q): %w", ErrInvalidEvent, i, e.Title, err)
		}
		s.events[i] = e
	}
	return s, nil
}

// All returns a copy of every record in insertion order.
func (s *MemoryStore) All(_ context.Context) []model.Event {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Count returns the number of records.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.events)
}

// Source describes where the records came from.
func (s *MemoryStore) Source() string {
	return s.source
}

func validate(e model.Event, loc *time.Location) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if _, err := calendar.ParseDate(e.Date, loc); err != nil {
		return err
	}
	return nil
}

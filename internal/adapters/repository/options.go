package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithLocation sets the location dates are validated in.
func WithLocation(loc *time.Location) Option {
	return func(s *MemoryStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithSource labels the store with its origin.
func WithSource(source string) Option {
	return func(s *MemoryStore) {
		if source != "" {
			s.source = source
		}
	}
}

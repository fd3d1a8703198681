// Package repository holds the read-only event store loaded from static
// configuration.
package repository

import (
	"context"

	"github.com/okian/eventboard/internal/domain/model"
)

// Store provides read access to the loaded event records.
type Store interface {
	// All returns a copy of every record in insertion order.
	All(ctx context.Context) []model.Event

	// Count returns the number of records.
	Count(ctx context.Context) int

	// Source describes where the records came from (file path or "embedded").
	Source() string
}

package repository

import "errors"

// Sentinel kinds for event store errors.
var (
	ErrInvalidEvent = errors.New("invalid event record")
	ErrLoad         = errors.New("load events failed")
)

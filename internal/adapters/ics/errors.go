package ics

import "errors"

// ErrExport is returned when an event cannot be written to the feed.
var ErrExport = errors.New("ics: export failed")

package service

import "errors"

// ErrSchedule is returned when the refresh schedule cannot be parsed.
var ErrSchedule = errors.New("service: invalid refresh schedule")

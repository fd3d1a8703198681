package config

import "errors"

// Sentinel errors; Load and Validate wrap them with the offending key.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

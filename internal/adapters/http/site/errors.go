package site

import "errors"

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

package page

import "errors"

var (
	// ErrParse is returned when the page cannot be parsed as HTML.
	ErrParse = errors.New("page: parse failed")
	// ErrFill is returned when a container could not be filled.
	ErrFill = errors.New("page: fill failed")
)

package classify

import "errors"

// Sentinel kinds for classification errors.
var (
	ErrUnclassifiable = errors.New("event cannot be classified")
)

package build

import "errors"

// Sentinel errors for builds.
var (
	ErrConfig = errors.New("build: invalid config")
	ErrBuild  = errors.New("build: failed")
)

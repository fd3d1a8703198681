package site

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// FS returns the embedded sample site rooted at its top directory.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Only fails on an invalid path literal.
		return staticFS
	}
	return sub
}

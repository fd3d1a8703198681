package build

import (
	"time"

	"golang.org/x/text/language"
)

// Config holds the parameters of one static build.
type Config struct {
	// SiteDir is the source site. Empty uses the embedded sample site.
	SiteDir string
	// OutDir receives the filled site.
	OutDir string
	// Today pins the classification day (YYYY-MM-DD). Empty uses the clock.
	Today string
	// EventsFile is the YAML events file. Empty uses the embedded sample data.
	EventsFile    string
	Location      *time.Location
	Locale        language.Tag
	MembershipURL string
	Workers       int
	Verbose       bool
}

// Stats summarizes a build.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Pages     int64 // HTML pages written
	Full      int64 // pages filled with the full lists
	Preview   int64 // pages filled with the preview
	Untouched int64 // pages without containers
	Assets    int64 // other files copied as is
	Events    int
}

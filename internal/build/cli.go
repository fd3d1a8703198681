package build

import (
	"fmt"
	"os"
)

// ShowHelp prints usage information for the static build tool.
func ShowHelp() {
	os.Stdout.WriteString(`eventboard static build
=======================

Fills the event containers of every page in a site directory and writes the
result, plus an events.ics feed, to an output directory.

Usage:
  eventbuild -out DIR [options]

Options:
  -site string
        Site directory to fill (default: the embedded sample site)
  -out string
        Output directory (required)
  -today string
        Classify as of this day, YYYY-MM-DD (default: today)
  -events string
        YAML events file (default: EVENTBOARD_EVENTS_FILE or the sample data)
  -workers int
        Number of concurrent page workers (default CPU cores)
  -verbose
        Log every page written
  -help
        Show this help message

Settings not given as flags (timezone, locale, membership_url) are read from
EVENTBOARD_CONFIG and EVENTBOARD_* like the server.

Examples:
  eventbuild -out public
  eventbuild -site ./site -out ./public -today 2025-11-01
`)
}

// Summary renders build statistics as a short report.
func Summary(s *Stats) string {
	return fmt.Sprintf("events: %d, pages: %d (full: %d, preview: %d, untouched: %d), assets: %d, took %s",
		s.Events, s.Pages, s.Full, s.Preview, s.Untouched, s.Assets, s.Duration)
}

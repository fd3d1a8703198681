package build

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o644
)

// CalendarFile is the feed written next to the pages.
const CalendarFile = "events.ics"

package calendar

import (
	"time"

	"golang.org/x/text/language"
)

// longDateLayout renders "November 25, 2025".
const longDateLayout = "January 2, 2006"

// DefaultLocale is the single display locale.
var DefaultLocale = language.AmericanEnglish

// Formatter renders calendar dates as long-form display strings.
type Formatter struct {
	tag language.Tag
}

// NewFormatter returns a formatter for tag. Only English is supported; any
// other tag falls back to DefaultLocale.
func NewFormatter(tag language.Tag) *Formatter {
	if !SupportedLocale(tag) {
		tag = DefaultLocale
	}
	return &Formatter{tag: tag}
}

// Locale returns the tag the formatter renders for.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// LongDate formats an ISO date as "Month D, YYYY". Input that does not parse
// is returned unchanged.
func (f *Formatter) LongDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(longDateLayout)
}

// SupportedLocale reports whether tag renders in the fixed English long form.
func SupportedLocale(tag language.Tag) bool {
	base, _ := tag.Base()
	en, _ := language.English.Base()
	return base == en
}

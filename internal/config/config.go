// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"time"

	"golang.org/x/text/language"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventsFile is the YAML events file. Empty uses the embedded sample data.
	EventsFile string `koanf:"events_file"`

	// Timezone is the IANA zone that defines "today". Empty means local time.
	Timezone string `koanf:"timezone"`

	// Locale is the display locale; only English variants are accepted.
	Locale string `koanf:"locale"`

	// MembershipURL is where events without a registration link point.
	MembershipURL string `koanf:"membership_url"`

	// RefreshCron is the standard cron expression for snapshot rebuilds.
	RefreshCron string `koanf:"refresh_cron"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		Locale:        "en-US",
		MembershipURL: "register.html",
		RefreshCron:   "0 0 * * *",
	}
}

// Location resolves Timezone. Call after Validate.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LocaleTag resolves Locale. Call after Validate.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

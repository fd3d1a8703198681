package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"github.com/okian/eventboard/internal/domain/calendar"
)

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
		}
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err)
	}
	if !calendar.SupportedLocale(tag) {
		return fmt.Errorf("%w: locale %q is not supported, use an English locale", ErrInvalidConfig, c.Locale)
	}

	if strings.TrimSpace(c.MembershipURL) == "" {
		return fmt.Errorf("%w: membership_url must not be empty", ErrInvalidConfig)
	}

	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		return fmt.Errorf("%w: refresh_cron %q: %w", ErrInvalidConfig, c.RefreshCron, err)
	}
	return nil
}

// Package timezone provides timezone utilities for the SpeakNote Remind application.
//
// This package handles timezone parsing and anchoring to ensure consistent
// time handling across the application. Relative-date extraction depends on
// the anchor instant produced here.
package timezone

import (
	"fmt"
	"time"
)

// Default location constants
var (
	// UTC is the coordinated universal time timezone
	UTC = time.UTC

	// Local is the local timezone
	Local = time.Local
)

// ParseTimezone parses an IANA timezone identifier (e.g., "America/New_York").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	if tz == "" || tz == "UTC" {
		return true
	}

	_, err := time.LoadLocation(tz)
	return err == nil
}

// Resolve maps an optional caller-supplied timezone hint to a concrete
// location. A valid IANA hint wins; anything else silently degrades to
// fallback, and a nil fallback degrades to the host's local timezone.
// Invalid hints never produce an error: callers of the extraction
// pipeline must not fail because a client sent a bad zone name.
func Resolve(hint string, fallback *time.Location) *time.Location {
	if hint != "" {
		if loc, err := time.LoadLocation(hint); err == nil {
			return loc
		}
	}
	if fallback != nil {
		return fallback
	}
	return Local
}

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = UTC
	}
	return time.Date(t.In(tz).Year(), t.In(tz).Month(), t.In(tz).Day(), 0, 0, 0, 0, tz)
}

// ToUserTimezone converts a Unix timestamp to the user's timezone.
func ToUserTimezone(ts int64, tz *time.Location) time.Time {
	if tz == nil {
		tz = UTC
	}
	return time.Unix(ts, 0).In(tz)
}

// FormatReminderTime formats a reminder's scheduled time for display.
func FormatReminderTime(ts int64, tz *time.Location) string {
	return ToUserTimezone(ts, tz).Format("2006-01-02 15:04")
}

// Package dateutils provides the date layouts and day-granularity helpers
// shared by the ledger, planner and analytics packages.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts used by the persisted files and the CLI
const (
	DateLayoutISO   = "2006-01-02"
	DateLayoutFull  = "2006-01-02 15:04:05"
	DateLayoutMonth = "2006-01"
	TimeLayoutClock = "15:04"
)

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespace.ReplaceAllString(dateStr, " ")
}

// ParseTimestamp parses a transaction timestamp. Both the full
// "YYYY-MM-DD HH:MM:SS" layout and a bare "YYYY-MM-DD" (midnight) are accepted.
func ParseTimestamp(value string) (time.Time, error) {
	value = CleanDateString(value)
	if t, err := time.ParseInLocation(DateLayoutFull, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(DateLayoutISO, value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", value)
}

// ParseISODate parses a strict "YYYY-MM-DD" calendar date.
func ParseISODate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayoutISO, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
	}
	return t, nil
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(value string) (time.Time, error) {
	t, err := time.Parse(TimeLayoutClock, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse time: %s", value)
	}
	return t, nil
}

// FormatTimestamp formats t with DateLayoutFull
func FormatTimestamp(t time.Time) string {
	return t.Format(DateLayoutFull)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// Day truncates t to its calendar date, dropping the time of day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WithinDays reports whether day lies in [from, from+days] at day granularity.
func WithinDays(day, from time.Time, days int) bool {
	d := Day(day)
	start := Day(from)
	end := start.AddDate(0, 0, days)
	return !d.Before(start) && !d.After(end)
}

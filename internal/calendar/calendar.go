// Package calendar handles month rollover and the day-first display format
// used in invoice documents.
package calendar

import (
	"fmt"
	"time"
)

// PrettyFormat is the day-first date layout used across invoice files.
const PrettyFormat = "02.01.2006"

// EndOfMonth returns the last calendar day of the month containing date.
// It walks forward from day 28, which is correct for every month length
// including leap-year February.
func EndOfMonth(date time.Time) time.Time {
	current := time.Date(date.Year(), date.Month(), 28, 0, 0, 0, 0, date.Location())
	for {
		next := current.AddDate(0, 0, 1)
		if next.Month() != current.Month() {
			return current
		}
		current = next
	}
}

// PrettyDate formats a date as DD.MM.YYYY.
func PrettyDate(date time.Time) string {
	return date.Format(PrettyFormat)
}

// ParsePrettyDate parses a DD.MM.YYYY date string.
func ParsePrettyDate(s string) (time.Time, error) {
	date, err := time.Parse(PrettyFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD.MM.YYYY: %w", s, err)
	}
	return date, nil
}

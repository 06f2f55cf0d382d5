// Package timecalc converts clock-time strings to fractional hours and
// computes how much of a time interval falls outside business hours.
package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTimeFormat is returned when a clock-time string is not "H:MM".
	ErrTimeFormat = errors.New("invalid clock time, expected H:MM")

	// ErrInvalidInterval is returned when a time range is not strictly increasing.
	ErrInvalidInterval = errors.New("invalid time interval, start must precede end")
)

// TimeToHours parses a "H:MM" clock-time string into fractional hours,
// so "9:30" becomes 9.5.
func TimeToHours(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}

	return float64(hours) + float64(minutes)/60.0, nil
}

// HoursOutsideBusiness returns the portion of [from, to) that falls outside
// the business window [businessStart, businessEnd). An interval that does not
// overlap the window at all bills its full duration. All arguments are
// fractional hours.
func HoursOutsideBusiness(businessStart, businessEnd, from, to float64) (float64, error) {
	if businessStart >= businessEnd {
		return 0, fmt.Errorf("%w: business hours %.2f-%.2f", ErrInvalidInterval, businessStart, businessEnd)
	}
	if from >= to {
		return 0, fmt.Errorf("%w: %.2f-%.2f", ErrInvalidInterval, from, to)
	}

	if to <= businessStart || from >= businessEnd {
		return to - from, nil
	}

	before := businessStart - from
	if before < 0 {
		before = 0
	}
	after := to - businessEnd
	if after < 0 {
		after = 0
	}
	return before + after, nil
}

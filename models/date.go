package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date at UTC midnight. The wall-clock date of t is
// kept, so callers should convert to the hotel's location first.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// MustDate is ParseDate for literals; it panics on malformed input.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Nights returns the number of nights between two calendar dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOf(checkOut).Sub(DateOf(checkIn)).Hours() / 24)
}

// Overlaps is the half-open interval test for [aStart, aEnd) and [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

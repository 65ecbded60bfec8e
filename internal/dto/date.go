package dto

import (
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// ParseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates and
// returns the instant in UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// ParseEndOfDay is ParseDate, except a bare date covers the whole day.
func ParseEndOfDay(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond).UTC(), nil
	}
	return ParseDate(s)
}

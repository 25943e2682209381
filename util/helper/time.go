package helper_util

import (
	"time"
)

// ParseTime parses an RFC3339 timestamp from a query parameter.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err
}

// DayBounds returns the start of t's calendar day and the start of the
// next one, in t's location.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

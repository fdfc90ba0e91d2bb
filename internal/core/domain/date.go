package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date layout used across the API
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date into a UTC midnight instant.
// Calendar dates are stored and compared at UTC midnight so that the same
// wire string always maps to the same stored value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t.UTC(), nil
}

// WeekRange returns the Monday and Sunday of the week containing t, at UTC
// midnight. Used as the default analytics range.
func WeekRange(t time.Time) (start, end time.Time) {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	start = t.AddDate(0, 0, -(weekday - 1))
	end = start.AddDate(0, 0, 6)
	return start, end
}

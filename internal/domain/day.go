// Package domain holds the pure types of the ritual engine.
// No infrastructure imports — services and stores depend on this
// package, never the other way around.
package domain

import (
	"fmt"
	"time"
)

// Day is a civil calendar date ("YYYY-MM-DD"). All point and streak
// computations operate on whole days; storing the date as a string
// avoids timezone arithmetic at day boundaries.
type Day string

const dayLayout = "2006-01-02"

// Today returns the current civil date in local time.
func Today() Day {
	return DayOf(time.Now())
}

// DayOf truncates a timestamp to its civil date.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// ParseDay validates a YYYY-MM-DD string.
// Returns ErrInvalidRange for anything malformed.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a valid date", ErrInvalidRange, s)
	}
	return DayOf(t), nil
}

// Time returns the midnight timestamp of the day in local time.
func (d Day) Time() time.Time {
	t, _ := time.ParseInLocation(dayLayout, string(d), time.Local)
	return t
}

// AddDays returns the day shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
// Lexicographic comparison is correct for the fixed layout.
func (d Day) Before(other Day) bool { return string(d) < string(other) }

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool { return string(d) > string(other) }

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool { return d == "" }

// DaysBetween returns the inclusive day count from start through end.
// Zero when end precedes start. Counted in UTC so local DST
// transitions cannot shorten a day below 24 hours.
func DaysBetween(start, end Day) int {
	if end.Before(start) {
		return 0
	}
	s, _ := time.Parse(dayLayout, string(start))
	e, _ := time.Parse(dayLayout, string(end))
	return int(e.Sub(s).Hours()/24) + 1
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

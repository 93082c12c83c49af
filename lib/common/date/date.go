// Package date handles calendar days, represented as UTC midnight time.Time
// values.
package date

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date creates a day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns today's day.
func Today() time.Time {
	now := time.Now().Local()
	return Date(now.Year(), now.Month(), now.Day())
}

// Parse parses a day in ISO format. Spreadsheet exports sometimes use
// US-style slashes, which are accepted as a fallback.
func Parse(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("1/2/2006", s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// MustParse parses a day in ISO format and panics on failure. For tests and
// constants.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Format formats a day in ISO format.
func Format(t time.Time) string {
	return t.Format(layout)
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysBetween returns the number of whole days from t1 to t2. Negative if t2
// is before t1.
func DaysBetween(t1, t2 time.Time) int {
	return int(Trunc(t2).Sub(Trunc(t1)).Hours() / 24)
}

// Trunc truncates a time to its calendar day.
func Trunc(t time.Time) time.Time {
	return Date(t.Date())
}

// EndOfYear returns December 31 of the given year.
func EndOfYear(year int) time.Time {
	return Date(year, time.December, 31)
}

// EachDay calls f for every day from start through end, inclusive.
func EachDay(start, end time.Time, f func(day time.Time) error) error {
	for day := Trunc(start); !day.After(Trunc(end)); day = day.AddDate(0, 0, 1) {
		if err := f(day); err != nil {
			return err
		}
	}
	return nil
}

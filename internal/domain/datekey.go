// Package domain contains the core data types for the horse-calendar
// application: cavaliers (roster members), day records (assignments), and
// the calendar grid derivation. This package holds no I/O and is imported
// by every other internal package.
package domain

import (
	"fmt"
	"time"
)

// DateKey is the canonical "YYYY-MM-DD" identifier of a calendar day.
// Because the format is fixed-width and zero-padded, lexicographic string
// comparison orders keys chronologically; no timezone is involved.
type DateKey string

// NewDateKey builds the DateKey for a given calendar day.
func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
}

// DateKeyOf returns the DateKey of t in t's location.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(time.DateOnly))
}

// Time parses the key back into a time.Time at midnight UTC.
func (k DateKey) Time() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, string(k))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD)", ErrValidation, string(k))
	}
	return t, nil
}

// Valid reports whether the key is a well-formed calendar date.
func (k DateKey) Valid() bool {
	_, err := k.Time()
	return err == nil
}

// YearMonth returns the "YYYY" and "MM" components of the key.
// The key is assumed well-formed; callers validate first.
func (k DateKey) YearMonth() (year, month string) {
	s := string(k)
	if len(s) < 7 {
		return "", ""
	}
	return s[0:4], s[5:7]
}

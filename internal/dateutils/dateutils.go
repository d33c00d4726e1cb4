// Package dateutils provides the calendar arithmetic behind report periods and
// the date formats accepted on the command line.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04"
)

// inputFormats are tried in order by ParseDateString.
var inputFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutEuropean,
	"02/01/2006",
	"2.1.2006",
	"2 January 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDateString parses s in one of the supported layouts, interpreting
// zone-less values in loc. An empty string yields the zero time.
func ParseDateString(s string, loc *time.Location) (time.Time, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}

	switch strings.ToLower(s) {
	case "today", "now":
		return StartOfDay(time.Now().In(loc)), nil
	case "yesterday":
		return StartOfDay(time.Now().In(loc)).AddDate(0, 0, -1), nil
	}

	for _, layout := range inputFormats {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// StartOfDay is midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek is midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// EndOfDay is the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// EndOfWeek is the last nanosecond of the Sunday closing t's week.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// DaysLeftInMonth counts the remaining days of t's month, t's day included.
func DaysLeftInMonth(t time.Time) int {
	return EndOfMonth(t).Day() - t.Day() + 1
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// FormatDateTime renders t for listings, e.g. "2026-03-14 09:30".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayoutFull)
}

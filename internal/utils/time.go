package utils

import (
	"fmt"
	"time"

	"github.com/dohsimpson/habittrove/internal/constants"
)

// dstProbeStep is the granularity used to walk out of a DST gap that swallows local midnight.
// Every tz database transition falls on a quarter hour.
const dstProbeStep = 15 * time.Minute

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" it returns the system's local timezone; empty means UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the clock's current time in the specified timezone.
func NowInTimezone(clock Clock, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return OrSystem(clock).Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(clock Clock, timezone string) (string, error) {
	now, err := NowInTimezone(clock, timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// CalendarDate returns the YYYY-MM-DD date the instant falls on in loc.
func CalendarDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// IsSameDay reports whether a and b fall on the same calendar date in loc.
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	return CalendarDate(a, loc) == CalendarDate(b, loc)
}

// ParseStoredTimestamp parses a persisted ISO-8601 timestamp. Bare dates are read as UTC midnight.
func ParseStoredTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatForStorage renders t in UTC using the persisted layout.
func FormatForStorage(t time.Time) string {
	return t.UTC().Format(constants.StorageFormat)
}

// FormatForDisplay renders t in loc with a Go layout string.
func FormatForDisplay(t time.Time, loc *time.Location, layout string) string {
	return t.In(loc).Format(layout)
}

// StartOfDay returns the first instant of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return localMidnight(y, m, d, loc)
}

// EndOfDay returns the last instant of t's calendar day in loc. Days may be 23 or 25 hours long.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return localMidnight(y, m, d+1, loc).Add(-time.Nanosecond)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) and returns its first instant in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return localMidnight(t.Year(), t.Month(), t.Day(), loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// DateIn is time.Date, except when a DST gap swallows the wall time: time.Date may then resolve to
// the previous evening, so step forward to the first instant that falls on the wanted local day.
func DateIn(y int, m time.Month, d, hour, minute, sec int, loc *time.Location) time.Time {
	t := time.Date(y, m, d, hour, minute, sec, 0, loc)
	want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
	for i := 0; i < 12 && t.In(loc).Format(constants.DateFormat) < want; i++ {
		t = t.Add(dstProbeStep)
	}
	return t
}

func localMidnight(y int, m time.Month, d int, loc *time.Location) time.Time {
	return DateIn(y, m, d, 0, 0, 0, loc)
}

// Package timeutil wraps zoned-date conversion and local-calendar-day
// comparison. All functions are pure; daylight-saving offset changes are
// handled by resolving the offset at each instant, never by carrying one
// offset across dates.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

var ErrMalformedDate = errors.New("malformed date")
var ErrUnknownTimeZone = errors.New("unknown time zone")

const dateLayout = "2006-01-02"

// LoadLocation resolves an IANA zone name. An empty name and "UTC" resolve to
// UTC; anything unresolvable is a caller error, never silently defaulted.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeZone, name)
	}

	return loc, nil
}

// ToLocal converts an instant into the given location.
func ToLocal(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// Format renders an instant as local time in the given location.
func Format(t time.Time, loc *time.Location, layout string) string {
	return t.In(loc).Format(layout)
}

// SameLocalDay reports whether two instants fall on the same calendar date as
// observed in loc. This is the authoritative equality test between a
// candidate occurrence date and a persisted event: time-of-day drift is
// ignored on purpose.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight of the calendar day t falls on in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AtLocalTime pins t's local calendar day in loc to the wall-clock
// time-of-day of clock (also read in loc).
func AtLocalTime(t, clock time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	c := clock.In(loc)
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, loc)
}

// ParseDate accepts either a date-only string ("2006-01-02"), interpreted as
// local midnight of that calendar date in loc, or a full RFC3339 instant,
// decomposed timezone-aware. It never truncates an instant string to its
// first ten characters: "2026-03-12T03:00:00Z" in America/Vancouver is the
// local date 2026-03-11.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}

	return t.In(loc), nil
}

// Package scheduler holds the pure decision logic of the signup bot: turning
// partial time specifications into concrete future instants, deriving identity
// keys for bookings, and formatting countdowns. Nothing in this package
// performs I/O.
package scheduler

import (
	"errors"
	"time"
)

var (
	// ErrInvalidHour is returned when the requested hour falls outside [0, 23].
	ErrInvalidHour = errors.New("scheduler: hour must be between 0 and 23")
	// ErrInvalidDay is returned when the requested day falls outside [1, 31].
	ErrInvalidDay = errors.New("scheduler: day must be between 1 and 31")
)

// ResolveSlot maps an hour and an optional day-of-month to a concrete UTC
// instant that is strictly after now.
//
// The candidate instant is built in the current UTC month at the requested
// hour with minutes and seconds zeroed; when day is nil today's day-of-month
// is kept. A candidate at or before now is moved forward by one calendar
// month. Days beyond the end of the target month clamp to that month's last
// day, both before and after the rollover (asking for day 31 in February
// yields February 28 or 29, never March).
func ResolveSlot(hour int, day *int, now time.Time) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, ErrInvalidHour
	}
	if day != nil && (*day < 1 || *day > 31) {
		return time.Time{}, ErrInvalidDay
	}

	now = now.UTC()
	dom := now.Day()
	if day != nil {
		dom = *day
	}

	slot := dateClamped(now.Year(), now.Month(), dom, hour)
	if !slot.After(now) {
		next := slot.AddDate(0, 0, -slot.Day()+1).AddDate(0, 1, 0) // first of next month
		slot = dateClamped(next.Year(), next.Month(), dom, hour)
	}
	return slot, nil
}

// dateClamped builds a UTC instant, clamping day to the last valid
// day-of-month instead of letting time.Date normalise into the next month.
func dateClamped(year int, month time.Month, day, hour int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package models

import "time"

// CivilDate returns the calendar date of t, read in t's own location, as
// midnight UTC. Records store and compare dates in this form.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b, ignoring time of day. It is
// negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

// CoversDay reports whether the inclusive calendar-day range [start, end]
// contains the calendar day of day.
func CoversDay(start, end, day time.Time) bool {
	d := CivilDate(day)
	return !CivilDate(start).After(d) && !CivilDate(end).Before(d)
}

func civilPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := CivilDate(*t)
	return &c
}

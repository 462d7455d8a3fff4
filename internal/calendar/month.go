package calendar

import (
	"fmt"
	"time"

	"rentaltrack/server/internal/models"
)

// Month identifies a calendar month independent of time zone.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing the calendar day of t.
func MonthOf(t time.Time) Month {
	y, m, _ := t.Date()
	return Month{Year: y, Month: m}
}

// ParseMonth parses the YYYY-MM form produced by String.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// First is the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last is the last day of the month.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Days is the number of days in the month.
func (m Month) Days() int {
	return m.Last().Day()
}

// Date returns the given day of the month.
func (m Month) Date(day int) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Add moves the month by delta months.
func (m Month) Add(delta int) Month {
	return MonthOf(m.First().AddDate(0, delta, 0))
}

// Contains reports whether t falls on a day of this month.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(models.CivilDate(t)) == m
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

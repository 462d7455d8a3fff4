package dashboard

import (
	"strings"
	"time"

	"rentaltrack/server/internal/models"
)

// IsBookedTonight reports whether an income transaction of p covers the
// calendar day of now. A missing end date makes a single-night booking.
func IsBookedTonight(p models.Property, now time.Time) bool {
	_, ok := tonightsBooking(p, now)
	return ok
}

// HasActiveTenant reports whether an income transaction of p covers the
// calendar day of now. Unlike IsBookedTonight, a missing end date runs
// for one month from the start date.
func HasActiveTenant(p models.Property, now time.Time) bool {
	for _, t := range p.Transactions {
		if !t.IsIncome || t.StartDate == nil {
			continue
		}
		end := t.StartDate.AddDate(0, 1, 0)
		if t.EndDate != nil {
			end = *t.EndDate
		}
		if models.CoversDay(*t.StartDate, end, now) {
			return true
		}
	}
	return false
}

// CurrentBookingPlatform returns the upper-cased platform label of the
// booking that makes p booked tonight.
func CurrentBookingPlatform(p models.Property, now time.Time) (string, bool) {
	t, ok := tonightsBooking(p, now)
	if !ok {
		return "", false
	}
	return strings.ToUpper(t.PlatformLabel()), true
}

func tonightsBooking(p models.Property, now time.Time) (models.Transaction, bool) {
	for _, t := range p.Transactions {
		if !t.IsIncome {
			continue
		}
		start, end, ok := t.Span()
		if ok && models.CoversDay(start, end, now) {
			return t, true
		}
	}
	return models.Transaction{}, false
}

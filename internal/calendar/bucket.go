package calendar

import (
	"time"

	"github.com/google/uuid"

	"rentaltrack/server/internal/models"
)

// Spanner is a record with an inclusive calendar-day range. ok is false for
// records that have no range at all.
type Spanner interface {
	Span() (start, end time.Time, ok bool)
}

// Record is a ranged record with a stable identity.
type Record interface {
	Spanner
	Key() uuid.UUID
}

// Bucket maps each day of month to the records whose inclusive range covers
// it. Ranges are clipped to the month; records that end up empty after
// clipping contribute nothing. Within a day, records keep their input order.
// Days without records have no key.
func Bucket[T Spanner](month Month, records []T) map[int][]T {
	first, last := month.First(), month.Last()
	days := make(map[int][]T)

	for _, r := range records {
		start, end, ok := r.Span()
		if !ok {
			continue
		}
		start, end = models.CivilDate(start), models.CivilDate(end)
		if start.Before(first) {
			start = first
		}
		if end.After(last) {
			end = last
		}
		if end.Before(start) {
			continue
		}
		for d := start.Day(); d <= end.Day(); d++ {
			days[d] = append(days[d], r)
		}
	}

	return days
}

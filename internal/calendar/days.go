package calendar

import (
	"time"

	"github.com/google/uuid"

	"rentaltrack/server/internal/models"
)

// DayCell is everything a month grid needs to draw one day.
type DayCell struct {
	Day         int       `json:"day"`
	Date        time.Time `json:"date"`
	Bookings    int       `json:"bookings"`
	Platforms   []string  `json:"platforms,omitempty"`
	Blocked     bool      `json:"blocked"`
	BlockReason string    `json:"block_reason,omitempty"`
	Today       bool      `json:"today"`
	Selected    bool      `json:"selected"`
}

// Days returns one cell per day of the displayed month.
func (a *Aggregator) Days() []DayCell {
	today := a.Today()
	cells := make([]DayCell, 0, a.month.Days())
	for d := 1; d <= a.month.Days(); d++ {
		date := a.month.Date(d)
		cell := DayCell{
			Day:       d,
			Date:      date,
			Bookings:  len(uniqueByKey(a.bookingDays[d])),
			Platforms: a.PlatformLabelsForDay(d),
			Today:     date.Equal(today),
			Selected:  d == a.selected,
		}
		if b, ok := a.BlockedRecordFor(d); ok {
			cell.Blocked = true
			cell.BlockReason = b.Reason
		}
		cells = append(cells, cell)
	}
	return cells
}

// Conflict is a day on which one property has overlapping bookings.
type Conflict struct {
	Day        int                  `json:"day"`
	Date       time.Time            `json:"date"`
	PropertyID uuid.UUID            `json:"property_id"`
	Bookings   []models.Transaction `json:"bookings"`
}

// Conflicts lists every day of the displayed month on which a property has
// two or more distinct bookings, ordered by day.
func (a *Aggregator) Conflicts() []Conflict {
	var conflicts []Conflict
	for d := 1; d <= a.month.Days(); d++ {
		var order []uuid.UUID
		byProperty := map[uuid.UUID][]models.Transaction{}
		for _, b := range uniqueByKey(a.bookingDays[d]) {
			if _, ok := byProperty[b.PropertyID]; !ok {
				order = append(order, b.PropertyID)
			}
			byProperty[b.PropertyID] = append(byProperty[b.PropertyID], b)
		}
		for _, id := range order {
			if len(byProperty[id]) > 1 {
				conflicts = append(conflicts, Conflict{
					Day:        d,
					Date:       a.month.Date(d),
					PropertyID: id,
					Bookings:   byProperty[id],
				})
			}
		}
	}
	return conflicts
}

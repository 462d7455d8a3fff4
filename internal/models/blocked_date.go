package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockedDate is an owner-imposed unavailability window, inclusive on both ends.
type BlockedDate struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	StartDate  time.Time `json:"start_date" gorm:"not null"`
	EndDate    time.Time `json:"end_date" gorm:"not null"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b *BlockedDate) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.StartDate = CivilDate(b.StartDate)
	if b.EndDate.IsZero() {
		b.EndDate = b.StartDate
	}
	b.EndDate = CivilDate(b.EndDate)
	return nil
}

func (b *BlockedDate) Validate() error {
	if b.PropertyID == uuid.Nil {
		return ErrMissingOwner
	}
	if b.StartDate.IsZero() {
		return ErrMissingStart
	}
	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return ErrInvalidRange
	}
	return nil
}

// Span returns the inclusive range; a zero end date means a single day.
func (b BlockedDate) Span() (time.Time, time.Time, bool) {
	if b.StartDate.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	end := b.EndDate
	if end.IsZero() {
		end = b.StartDate
	}
	return b.StartDate, end, true
}

func (b BlockedDate) Key() uuid.UUID { return b.ID }

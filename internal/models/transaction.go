package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange  = errors.New("end date must not be before start date")
	ErrMissingOwner  = errors.New("record must belong to a property")
	ErrMissingStart  = errors.New("start date is required")
	ErrInvalidAmount = errors.New("amount sign does not match income flag")
)

// Transaction is either a booking (IsIncome) or an expense against a property.
type Transaction struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID       `json:"property_id" gorm:"type:uuid;not null;index"`
	IsIncome   bool            `json:"is_income" gorm:"index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,2)"`
	StartDate  *time.Time      `json:"start_date"`
	EndDate    *time.Time      `json:"end_date"`
	Platform   Platform        `json:"platform"`
	Category   string          `json:"category"`
	Detail     string          `json:"detail"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.IsIncome && t.Platform == "" {
		t.Platform = PlatformDirect
	}
	t.StartDate = civilPtr(t.StartDate)
	t.EndDate = civilPtr(t.EndDate)
	return nil
}

// Validate checks ownership, the date range and that the sign of Amount
// agrees with IsIncome (a zero amount is accepted for either).
func (t *Transaction) Validate() error {
	if t.PropertyID == uuid.Nil {
		return ErrMissingOwner
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return ErrInvalidRange
	}
	if t.EndDate != nil && t.StartDate == nil {
		return ErrMissingStart
	}
	if (t.IsIncome && t.Amount.IsNegative()) || (!t.IsIncome && t.Amount.IsPositive()) {
		return ErrInvalidAmount
	}
	return nil
}

// Span returns the inclusive date range of the transaction. A missing end
// date makes it a single-day range; a missing start date means no range.
func (t Transaction) Span() (time.Time, time.Time, bool) {
	if t.StartDate == nil {
		return time.Time{}, time.Time{}, false
	}
	end := *t.StartDate
	if t.EndDate != nil {
		end = *t.EndDate
	}
	return *t.StartDate, end, true
}

// Key returns the record identity.
func (t Transaction) Key() uuid.UUID { return t.ID }

// Nights is the whole number of days between start and end, never negative.
func (t Transaction) Nights() int {
	start, end, ok := t.Span()
	if !ok {
		return 0
	}
	n := DaysBetween(start, end)
	if n < 0 {
		return 0
	}
	return n
}

// AbsAmount is the unsigned amount of the transaction.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// PlatformLabel returns the booking channel label, defaulting to Direct.
func (t Transaction) PlatformLabel() string {
	return t.Platform.Label()
}

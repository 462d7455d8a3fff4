package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyName    = errors.New("property name cannot be empty")
	ErrInvalidRate  = errors.New("rate cannot be negative")
	ErrInvalidRooms = errors.New("invalid room counts")
	ErrInvalidType  = errors.New("invalid rental type")
)

type Property struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string          `json:"name" gorm:"not null"`
	Street        string          `json:"street"`
	City          string          `json:"city"`
	Region        string          `json:"region"`
	Type          RentalType      `json:"type" gorm:"not null;index"`
	Source        BookingSource   `json:"source"`
	Rate          decimal.Decimal `json:"rate" gorm:"type:DECIMAL(20,2)"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	MaxGuests     int             `json:"max_guests" gorm:"default:1"`
	Description   string          `json:"description"`
	CoverIndex    int             `json:"cover_index"`
	CoverPhoto    []byte          `json:"-"`
	HasCoverPhoto bool            `json:"has_cover_photo" gorm:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Transactions  []Transaction   `json:"transactions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	BlockedDates  []BlockedDate   `json:"blocked_dates,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an identity when the caller did not.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Property) AfterFind(tx *gorm.DB) error {
	p.HasCoverPhoto = len(p.CoverPhoto) > 0
	return nil
}

// Validate checks the invariants the add and edit flows must respect.
func (p *Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if p.Rate.IsNegative() {
		return ErrInvalidRate
	}
	if p.Bedrooms < 0 || p.Bathrooms < 0 || p.MaxGuests < 1 {
		return ErrInvalidRooms
	}
	return nil
}

// Address joins the non-empty address fields for display.
func (p *Property) Address() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Street, p.City, p.Region} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Income returns the income transactions of the property in stored order.
func (p *Property) Income() []Transaction {
	var income []Transaction
	for _, t := range p.Transactions {
		if t.IsIncome {
			income = append(income, t)
		}
	}
	return income
}

// Expenses returns the expense transactions of the property in stored order.
func (p *Property) Expenses() []Transaction {
	var expenses []Transaction
	for _, t := range p.Transactions {
		if !t.IsIncome {
			expenses = append(expenses, t)
		}
	}
	return expenses
}

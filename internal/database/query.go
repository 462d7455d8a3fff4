package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentaltrack/server/internal/models"
)

// Sort orders a fetch by one whitelisted column.
type Sort struct {
	Field string
	Desc  bool
}

var (
	SortByStartDate = Sort{Field: "start_date"}
	SortByCreated   = Sort{Field: "created_at"}
	SortByName      = Sort{Field: "name"}
)

var sortable = map[string]bool{
	"start_date": true,
	"end_date":   true,
	"created_at": true,
	"name":       true,
	"amount":     true,
}

func (s Sort) apply(tx *gorm.DB) (*gorm.DB, error) {
	if s.Field == "" {
		return tx, nil
	}
	if !sortable[s.Field] {
		return nil, fmt.Errorf("unsupported sort field %q", s.Field)
	}
	order := s.Field
	if s.Desc {
		order += " DESC"
	}
	// Secondary key keeps ties in insertion order
	return tx.Order(order).Order("rowid"), nil
}

// PropertyQuery selects properties, optionally of one rental type.
type PropertyQuery struct {
	Type *models.RentalType
	Sort Sort
}

// TransactionQuery selects transactions by owner and kind.
type TransactionQuery struct {
	PropertyID  *uuid.UUID
	IncomeOnly  bool
	ExpenseOnly bool
	Sort        Sort
}

// BlockedDateQuery selects blocked dates, optionally for one property.
type BlockedDateQuery struct {
	PropertyID *uuid.UUID
	Sort       Sort
}

// BookingsFor is the query behind every calendar booking list.
func BookingsFor(propertyID *uuid.UUID) TransactionQuery {
	return TransactionQuery{PropertyID: propertyID, IncomeOnly: true, Sort: SortByStartDate}
}

// BlockedDatesFor is the query behind every calendar blocked-date list.
func BlockedDatesFor(propertyID *uuid.UUID) BlockedDateQuery {
	return BlockedDateQuery{PropertyID: propertyID, Sort: SortByStartDate}
}

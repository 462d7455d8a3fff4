package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentaltrack/server/internal/models"
)

// RentalFilter is the primary dashboard filter.
type RentalFilter string

const (
	FilterAll       RentalFilter = "all"
	FilterShortTerm RentalFilter = "short_term"
	FilterLongTerm  RentalFilter = "long_term"
)

// ShortTermStatus narrows short-term properties by tonight's bookings.
type ShortTermStatus string

const (
	ShortTermAll       ShortTermStatus = "all"
	ShortTermBooked    ShortTermStatus = "booked"
	ShortTermAvailable ShortTermStatus = "available"
)

// LongTermStatus narrows long-term properties by tenancy.
type LongTermStatus string

const (
	LongTermAll      LongTermStatus = "all"
	LongTermOccupied LongTermStatus = "occupied"
	LongTermVacant   LongTermStatus = "vacant"
)

func ParseRentalFilter(s string) (RentalFilter, error) {
	switch f := RentalFilter(s); f {
	case FilterAll, FilterShortTerm, FilterLongTerm:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown rental filter %q", s)
}

func ParseShortTermStatus(s string) (ShortTermStatus, error) {
	switch st := ShortTermStatus(s); st {
	case ShortTermAll, ShortTermBooked, ShortTermAvailable:
		return st, nil
	case "":
		return ShortTermAll, nil
	}
	return "", fmt.Errorf("unknown short-term status %q", s)
}

func ParseLongTermStatus(s string) (LongTermStatus, error) {
	switch st := LongTermStatus(s); st {
	case LongTermAll, LongTermOccupied, LongTermVacant:
		return st, nil
	case "":
		return LongTermAll, nil
	}
	return "", fmt.Errorf("unknown long-term status %q", s)
}

// Selection is the current state of both filter levels.
type Selection struct {
	RentalType RentalFilter    `json:"rental_type"`
	ShortTerm  ShortTermStatus `json:"short_term_status"`
	LongTerm   LongTermStatus  `json:"long_term_status"`
}

// Engine filters and summarises the property list for the dashboard. It is
// not safe for concurrent use.
type Engine struct {
	selection Selection
	estimator Estimator
	now       func() time.Time
}

type Option func(*Engine)

func WithEstimator(e Estimator) Option {
	return func(en *Engine) { en.estimator = e }
}

func WithClock(now func() time.Time) Option {
	return func(en *Engine) { en.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		selection: Selection{RentalType: FilterAll, ShortTerm: ShortTermAll, LongTerm: LongTermAll},
		estimator: DefaultEstimator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Selection() Selection { return e.selection }

// SelectRentalType sets the primary filter and resets both status filters.
func (e *Engine) SelectRentalType(f RentalFilter) {
	e.selection = Selection{RentalType: f, ShortTerm: ShortTermAll, LongTerm: LongTermAll}
}

func (e *Engine) SelectShortTermStatus(s ShortTermStatus) { e.selection.ShortTerm = s }

func (e *Engine) SelectLongTermStatus(s LongTermStatus) { e.selection.LongTerm = s }

// FilteredProperties applies the primary filter and then the status filter
// that belongs to it.
func (e *Engine) FilteredProperties(all []models.Property) []models.Property {
	now := e.now()
	var out []models.Property

	for _, p := range all {
		switch e.selection.RentalType {
		case FilterShortTerm:
			if p.Type != models.ShortTerm {
				continue
			}
			booked := IsBookedTonight(p, now)
			if (e.selection.ShortTerm == ShortTermBooked && !booked) ||
				(e.selection.ShortTerm == ShortTermAvailable && booked) {
				continue
			}
		case FilterLongTerm:
			if p.Type != models.LongTerm {
				continue
			}
			occupied := HasActiveTenant(p, now)
			if (e.selection.LongTerm == LongTermOccupied && !occupied) ||
				(e.selection.LongTerm == LongTermVacant && occupied) {
				continue
			}
		}
		out = append(out, p)
	}

	return out
}

// Counts are the badge totals shown on the filter chips.
type Counts struct {
	ShortTerm int `json:"short_term"`
	LongTerm  int `json:"long_term"`
	Booked    int `json:"booked"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Vacant    int `json:"vacant"`
}

// Counts tallies the full property list; the active selection has no effect.
func (e *Engine) Counts(all []models.Property) Counts {
	now := e.now()
	var c Counts
	for _, p := range all {
		switch p.Type {
		case models.ShortTerm:
			c.ShortTerm++
			if IsBookedTonight(p, now) {
				c.Booked++
			} else {
				c.Available++
			}
		case models.LongTerm:
			c.LongTerm++
			if HasActiveTenant(p, now) {
				c.Occupied++
			} else {
				c.Vacant++
			}
		}
	}
	return c
}

func (e *Engine) IsBookedTonight(p models.Property) bool {
	return IsBookedTonight(p, e.now())
}

func (e *Engine) HasActiveTenant(p models.Property) bool {
	return HasActiveTenant(p, e.now())
}

func (e *Engine) CurrentBookingPlatform(p models.Property) (string, bool) {
	return CurrentBookingPlatform(p, e.now())
}

// Card is the per-property status line of the dashboard list.
type Card struct {
	Property      models.Property `json:"property"`
	Status        string          `json:"status"`
	BookedTonight bool            `json:"booked_tonight"`
	ActiveTenant  bool            `json:"active_tenant"`
	Platform      string          `json:"platform,omitempty"`
	Revenue       decimal.Decimal `json:"revenue"`
	Expenses      decimal.Decimal `json:"expenses"`
}

// Cards builds the status card of every property in list.
func (e *Engine) Cards(list []models.Property) []Card {
	now := e.now()
	cards := make([]Card, 0, len(list))
	for _, p := range list {
		card := Card{
			Property:      p,
			BookedTonight: IsBookedTonight(p, now),
			ActiveTenant:  HasActiveTenant(p, now),
			Revenue:       e.PropertyRevenue(p),
			Expenses:      PropertyExpenses(p),
		}
		card.Platform, _ = CurrentBookingPlatform(p, now)

		switch {
		case p.Type == models.LongTerm && card.ActiveTenant:
			card.Status = "Occupied"
		case p.Type == models.LongTerm:
			card.Status = "Vacant"
		case card.BookedTonight:
			card.Status = "Booked"
		default:
			card.Status = "Available"
		}
		cards = append(cards, card)
	}
	return cards
}

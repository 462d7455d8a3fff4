package calendar

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/models"
)

// RecordStore is the subset of the record store the calendar reads from.
type RecordStore interface {
	FetchProperties(ctx context.Context, q database.PropertyQuery) ([]models.Property, error)
	FetchTransactions(ctx context.Context, q database.TransactionQuery) ([]models.Transaction, error)
	FetchBlockedDates(ctx context.Context, q database.BlockedDateQuery) ([]models.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id uuid.UUID) error
}

// Aggregator owns the calendar view state: the displayed month, the property
// filter, the selected day and the day maps derived from the store. It is not
// safe for concurrent use; callers serialise access.
type Aggregator struct {
	store  RecordStore
	logger *logrus.Logger
	now    func() time.Time

	month      Month
	propertyID *uuid.UUID
	selected   int

	properties  []models.Property
	bookings    []models.Transaction
	blocked     []models.BlockedDate
	bookingDays map[int][]models.Transaction
	blockedDays map[int][]models.BlockedDate
}

type Option func(*Aggregator)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithMonth sets the initially displayed month.
func WithMonth(m Month) Option {
	return func(a *Aggregator) { a.month = m }
}

func NewAggregator(store RecordStore, logger *logrus.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	a := &Aggregator{
		store:       store,
		logger:      logger,
		now:         time.Now,
		bookingDays: map[int][]models.Transaction{},
		blockedDays: map[int][]models.BlockedDate{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.month == (Month{}) {
		a.month = MonthOf(a.now())
	}
	return a
}

// Load fetches properties, bookings and blocked dates and rebuilds both day maps.
func (a *Aggregator) Load(ctx context.Context) {
	a.properties = a.fetchProperties(ctx)
	a.bookings = a.fetchBookings(ctx)
	a.blocked = a.fetchBlocked(ctx)
	a.rebucket()
}

func (a *Aggregator) Month() Month { return a.month }

// SetMonth moves the displayed month by delta and clears the selected day.
func (a *Aggregator) SetMonth(delta int) {
	a.ShowMonth(a.month.Add(delta))
}

// ShowMonth jumps to m and clears the selected day.
func (a *Aggregator) ShowMonth(m Month) {
	a.month = m
	a.selected = 0
	a.rebucket()
}

// SetPropertyFilter scopes bookings and blocked dates to one property, or to
// all properties when propertyID is nil.
func (a *Aggregator) SetPropertyFilter(ctx context.Context, propertyID *uuid.UUID) {
	if propertyID != nil {
		id := *propertyID
		propertyID = &id
	}
	a.propertyID = propertyID
	a.bookings = a.fetchBookings(ctx)
	a.blocked = a.fetchBlocked(ctx)
	a.rebucket()
}

func (a *Aggregator) PropertyFilter() *uuid.UUID { return a.propertyID }

// ToggleDay selects day, or clears the selection if day is already selected.
// Days outside the displayed month are ignored.
func (a *Aggregator) ToggleDay(day int) {
	if day < 1 || day > a.month.Days() {
		return
	}
	if a.selected == day {
		a.selected = 0
		return
	}
	a.selected = day
}

func (a *Aggregator) SelectedDay() (int, bool) {
	return a.selected, a.selected != 0
}

func (a *Aggregator) IsBlocked(day int) bool {
	return len(a.blockedDays[day]) > 0
}

// BlockedRecordFor returns the first blocked date covering day.
func (a *Aggregator) BlockedRecordFor(day int) (models.BlockedDate, bool) {
	records := a.blockedDays[day]
	if len(records) == 0 {
		return models.BlockedDate{}, false
	}
	return records[0], true
}

// BookingsForDay returns the bookings covering day, in bucket order.
func (a *Aggregator) BookingsForDay(day int) []models.Transaction {
	return a.bookingDays[day]
}

// BookingsForSelectedDay returns the selected day's bookings, each at most
// once, ordered by start date.
func (a *Aggregator) BookingsForSelectedDay() []models.Transaction {
	if a.selected == 0 {
		return nil
	}
	bookings := uniqueByKey(a.bookingDays[a.selected])
	sortByStart(bookings)
	return bookings
}

// UpcomingBookings returns the filtered bookings starting today or later,
// regardless of the displayed month, ordered by start date.
func (a *Aggregator) UpcomingBookings() []models.Transaction {
	today := models.CivilDate(a.now())
	var upcoming []models.Transaction
	for _, b := range a.bookings {
		if b.StartDate != nil && !models.CivilDate(*b.StartDate).Before(today) {
			upcoming = append(upcoming, b)
		}
	}
	sortByStart(upcoming)
	return upcoming
}

// PlatformLabelsForDay returns the distinct platform labels of day's
// bookings in first-seen order.
func (a *Aggregator) PlatformLabelsForDay(day int) []string {
	seen := map[string]bool{}
	var labels []string
	for _, b := range a.bookingDays[day] {
		label := b.PlatformLabel()
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	return labels
}

// DeleteBlockedDate removes record from the store and refreshes the blocked
// dates. When the store rejects the delete, nothing in memory changes.
func (a *Aggregator) DeleteBlockedDate(ctx context.Context, record models.BlockedDate) error {
	if err := a.store.DeleteBlockedDate(ctx, record.ID); err != nil {
		a.logger.WithError(err).WithField("blocked_date_id", record.ID).Error("Failed to delete blocked date")
		return fmt.Errorf("failed to delete blocked date: %w", err)
	}
	a.blocked = a.fetchBlocked(ctx)
	a.blockedDays = Bucket(a.month, a.blocked)
	return nil
}

func (a *Aggregator) Properties() []models.Property { return a.properties }
func (a *Aggregator) Bookings() []models.Transaction { return a.bookings }
func (a *Aggregator) BlockedDates() []models.BlockedDate { return a.blocked }

// Today is the current calendar date.
func (a *Aggregator) Today() time.Time {
	return models.CivilDate(a.now())
}

func (a *Aggregator) rebucket() {
	a.bookingDays = Bucket(a.month, a.bookings)
	a.blockedDays = Bucket(a.month, a.blocked)
}

// Read failures degrade to an empty list so the calendar stays usable.
func (a *Aggregator) fetchProperties(ctx context.Context) []models.Property {
	properties, err := a.store.FetchProperties(ctx, database.PropertyQuery{Sort: database.SortByName})
	if err != nil {
		a.logger.WithError(err).WithField("query", "properties").Warn("Failed to fetch properties")
		return nil
	}
	return properties
}

func (a *Aggregator) fetchBookings(ctx context.Context) []models.Transaction {
	bookings, err := a.store.FetchTransactions(ctx, database.BookingsFor(a.propertyID))
	if err != nil {
		a.logger.WithError(err).WithField("query", "bookings").Warn("Failed to fetch bookings")
		return nil
	}
	return bookings
}

func (a *Aggregator) fetchBlocked(ctx context.Context) []models.BlockedDate {
	blocked, err := a.store.FetchBlockedDates(ctx, database.BlockedDatesFor(a.propertyID))
	if err != nil {
		a.logger.WithError(err).WithField("query", "blocked_dates").Warn("Failed to fetch blocked dates")
		return nil
	}
	return blocked
}

func uniqueByKey[T Record](records []T) []T {
	seen := make(map[uuid.UUID]bool, len(records))
	unique := make([]T, 0, len(records))
	for _, r := range records {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		unique = append(unique, r)
	}
	return unique
}

// sortByStart orders by start date; a missing start sorts first.
func sortByStart(bookings []models.Transaction) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return startOf(bookings[i]).Before(startOf(bookings[j]))
	})
}

func startOf(t models.Transaction) time.Time {
	if t.StartDate == nil {
		return time.Time{}
	}
	return *t.StartDate
}

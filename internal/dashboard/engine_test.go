package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaltrack/server/config"
	"rentaltrack/server/internal/models"
)

var now = time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)

func day(offset int) *time.Time {
	t := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &t
}

func income(amount int64, start, end *time.Time, platform models.Platform) models.Transaction {
	return models.Transaction{
		ID: uuid.New(), IsIncome: true, Amount: decimal.NewFromInt(amount),
		StartDate: start, EndDate: end, Platform: platform,
	}
}

func expense(amount int64, start *time.Time) models.Transaction {
	return models.Transaction{ID: uuid.New(), Amount: decimal.NewFromInt(-amount), StartDate: start, Category: "Repairs"}
}

func property(name string, typ models.RentalType, rate int64, txs ...models.Transaction) models.Property {
	return models.Property{ID: uuid.New(), Name: name, Type: typ, Rate: decimal.NewFromInt(rate), MaxGuests: 2, Transactions: txs}
}

func newEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return now }))
}

// portfolio: two short-term (one booked tonight), two long-term (one occupied)
func portfolio() []models.Property {
	return []models.Property{
		property("Booked Cabin", models.ShortTerm, 120, income(360, day(-1), day(2), models.PlatformAirbnb)),
		property("Empty Studio", models.ShortTerm, 75, income(200, day(-10), day(-8), models.PlatformVRBO)),
		property("Leased Flat", models.LongTerm, 2000, income(2000, day(-20), nil, models.PlatformDirect)),
		property("Vacant House", models.LongTerm, 2500),
	}
}

func names(properties []models.Property) []string {
	out := make([]string, len(properties))
	for i, p := range properties {
		out[i] = p.Name
	}
	return out
}

func TestIsBookedTonight(t *testing.T) {
	tests := []struct {
		name     string
		tx       models.Transaction
		expected bool
	}{
		{name: "Stay covering today", tx: income(1, day(-2), day(1), ""), expected: true},
		{name: "Checkout today", tx: income(1, day(-2), day(0), ""), expected: true},
		{name: "Single day today", tx: income(1, day(0), nil, ""), expected: true},
		{name: "Single day yesterday", tx: income(1, day(-1), nil, ""), expected: false},
		{name: "Future stay", tx: income(1, day(1), day(3), ""), expected: false},
		{name: "Undated", tx: income(1, nil, nil, ""), expected: false},
		{name: "Expense covering today", tx: expense(1, day(0)), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := property("P", models.ShortTerm, 0, tt.tx)
			assert.Equal(t, tt.expected, IsBookedTonight(p, now))
		})
	}
}

func TestHasActiveTenantDefaultsToOneMonth(t *testing.T) {
	// a lease without an end date started 20 days ago is still active
	p := property("Lease", models.LongTerm, 0, income(1, day(-20), nil, ""))
	assert.True(t, HasActiveTenant(p, now))
	assert.False(t, IsBookedTonight(p, now), "the booked-tonight rule treats it as a single day")

	expired := property("Old lease", models.LongTerm, 0, income(1, day(-40), nil, ""))
	assert.False(t, HasActiveTenant(expired, now))

	ended := property("Ended", models.LongTerm, 0, income(1, day(-20), day(-1), ""))
	assert.False(t, HasActiveTenant(ended, now))
}

func TestCurrentBookingPlatform(t *testing.T) {
	p := property("P", models.ShortTerm, 0,
		income(1, day(-5), day(-3), models.PlatformVRBO),
		income(1, day(-1), day(1), models.PlatformBooking),
		income(1, day(0), nil, models.PlatformAirbnb),
	)

	label, ok := CurrentBookingPlatform(p, now)
	assert.True(t, ok)
	assert.Equal(t, "BOOKING", label)

	direct := property("D", models.ShortTerm, 0, income(1, day(0), nil, ""))
	label, _ = CurrentBookingPlatform(direct, now)
	assert.Equal(t, "DIRECT", label)

	_, ok = CurrentBookingPlatform(property("E", models.ShortTerm, 0), now)
	assert.False(t, ok)
}

func TestFilteredProperties(t *testing.T) {
	all := portfolio()

	tests := []struct {
		name      string
		rental    RentalFilter
		shortTerm ShortTermStatus
		longTerm  LongTermStatus
		expected  []string
	}{
		{name: "All", rental: FilterAll, expected: []string{"Booked Cabin", "Empty Studio", "Leased Flat", "Vacant House"}},
		{name: "Short-term", rental: FilterShortTerm, expected: []string{"Booked Cabin", "Empty Studio"}},
		{name: "Short-term booked", rental: FilterShortTerm, shortTerm: ShortTermBooked, expected: []string{"Booked Cabin"}},
		{name: "Short-term available", rental: FilterShortTerm, shortTerm: ShortTermAvailable, expected: []string{"Empty Studio"}},
		{name: "Long-term", rental: FilterLongTerm, expected: []string{"Leased Flat", "Vacant House"}},
		{name: "Long-term occupied", rental: FilterLongTerm, longTerm: LongTermOccupied, expected: []string{"Leased Flat"}},
		{name: "Long-term vacant", rental: FilterLongTerm, longTerm: LongTermVacant, expected: []string{"Vacant House"}},
		{name: "Status without primary", rental: FilterAll, shortTerm: ShortTermBooked, expected: []string{"Booked Cabin", "Empty Studio", "Leased Flat", "Vacant House"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine()
			e.SelectRentalType(tt.rental)
			if tt.shortTerm != "" {
				e.SelectShortTermStatus(tt.shortTerm)
			}
			if tt.longTerm != "" {
				e.SelectLongTermStatus(tt.longTerm)
			}
			assert.Equal(t, tt.expected, names(e.FilteredProperties(all)))
		})
	}
}

func TestBookedFilterMatchesPredicate(t *testing.T) {
	all := portfolio()
	e := newEngine()
	e.SelectRentalType(FilterShortTerm)
	e.SelectShortTermStatus(ShortTermBooked)

	for _, p := range e.FilteredProperties(all) {
		assert.Equal(t, models.ShortTerm, p.Type)
		assert.True(t, e.IsBookedTonight(p))
	}
	for _, p := range all {
		if p.Type == models.ShortTerm && e.IsBookedTonight(p) {
			assert.Contains(t, names(e.FilteredProperties(all)), p.Name)
		}
	}
}

func TestSelectRentalTypeResetsStatus(t *testing.T) {
	all := portfolio()
	e := newEngine()

	e.SelectRentalType(FilterShortTerm)
	e.SelectShortTermStatus(ShortTermBooked)
	e.SelectLongTermStatus(LongTermVacant)

	e.SelectRentalType(FilterLongTerm)
	assert.Equal(t, Selection{RentalType: FilterLongTerm, ShortTerm: ShortTermAll, LongTerm: LongTermAll}, e.Selection())
	assert.Equal(t, []string{"Leased Flat", "Vacant House"}, names(e.FilteredProperties(all)))

	e.SelectRentalType(FilterShortTerm)
	assert.Equal(t, []string{"Booked Cabin", "Empty Studio"}, names(e.FilteredProperties(all)), "earlier booked selection is gone")
}

func TestCountsIgnoreSelection(t *testing.T) {
	all := portfolio()
	e := newEngine()
	e.SelectRentalType(FilterLongTerm)
	e.SelectLongTermStatus(LongTermVacant)

	assert.Equal(t, Counts{ShortTerm: 2, LongTerm: 2, Booked: 1, Available: 1, Occupied: 1, Vacant: 1}, e.Counts(all))
}

func TestTotalRevenue(t *testing.T) {
	e := newEngine()

	withIncome := property("A", models.ShortTerm, 500, income(100, day(-3), nil, ""), income(50, day(-2), nil, ""), expense(30, day(-1)))
	assert.True(t, decimal.NewFromInt(150).Equal(e.TotalRevenue([]models.Property{withIncome})))

	noIncome := property("B", models.ShortTerm, 75)
	assert.True(t, decimal.NewFromInt(1500).Equal(e.TotalRevenue([]models.Property{noIncome})))

	assert.True(t, decimal.NewFromInt(1650).Equal(e.TotalRevenue([]models.Property{withIncome, noIncome})))
	assert.True(t, decimal.Zero.Equal(e.TotalRevenue(nil)))
}

func TestTotalBookingsAndNights(t *testing.T) {
	e := newEngine()

	booked := property("A", models.ShortTerm, 0,
		income(1, day(0), day(3), ""),
		income(1, day(5), nil, ""),
		income(1, day(9), day(7), ""), // inverted range counts zero nights
	)
	empty := property("B", models.ShortTerm, 0)

	assert.Equal(t, 3, e.TotalBookings([]models.Property{booked}))
	assert.Equal(t, 4, e.TotalBookings([]models.Property{empty}))
	assert.Equal(t, 7, e.TotalBookings([]models.Property{booked, empty}))

	assert.Equal(t, 3, e.TotalNights([]models.Property{booked}))
	assert.Equal(t, 8, e.TotalNights([]models.Property{empty}))
	assert.Equal(t, 11, e.TotalNights([]models.Property{booked, empty}))
}

func TestOccupancyRate(t *testing.T) {
	e := newEngine()
	assert.Equal(t, 86, e.OccupancyRate(portfolio()))
	assert.Equal(t, 0, e.OccupancyRate(nil))
}

func TestCustomEstimator(t *testing.T) {
	e := NewEngine(
		WithClock(func() time.Time { return now }),
		WithEstimator(PlaceholderEstimator{RevenueNights: 10, Bookings: 1, Nights: 2, Occupancy: 50, Trend: -3}),
	)
	p := property("B", models.ShortTerm, 75)

	stats := e.Summary([]models.Property{p})
	assert.True(t, decimal.NewFromInt(750).Equal(stats.TotalRevenue))
	assert.Equal(t, 1, stats.TotalBookings)
	assert.Equal(t, 2, stats.TotalNights)
	assert.Equal(t, 50, stats.OccupancyRate)
	assert.Equal(t, -3.0, stats.RevenueTrend)
}

func TestSummaryIncludesExpenses(t *testing.T) {
	e := newEngine()
	p := property("A", models.ShortTerm, 0, income(400, day(0), day(2), ""), expense(150, day(1)))

	stats := e.Summary([]models.Property{p})
	assert.True(t, decimal.NewFromInt(400).Equal(stats.TotalRevenue))
	assert.True(t, decimal.NewFromInt(150).Equal(stats.TotalExpenses))
	assert.True(t, decimal.NewFromInt(250).Equal(stats.NetIncome))
	assert.Equal(t, 12.0, stats.RevenueTrend)
}

func TestCards(t *testing.T) {
	e := newEngine()
	cards := e.Cards(portfolio())
	require.Len(t, cards, 4)

	assert.Equal(t, "Booked", cards[0].Status)
	assert.Equal(t, "AIRBNB", cards[0].Platform)
	assert.Equal(t, "Available", cards[1].Status)
	assert.Empty(t, cards[1].Platform)
	assert.Equal(t, "Occupied", cards[2].Status)
	assert.Equal(t, "Vacant", cards[3].Status)
	assert.True(t, decimal.NewFromInt(50000).Equal(cards[3].Revenue))
}

func TestParseFilters(t *testing.T) {
	f, err := ParseRentalFilter("long_term")
	require.NoError(t, err)
	assert.Equal(t, FilterLongTerm, f)

	f, err = ParseRentalFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseRentalFilter("weekly")
	assert.Error(t, err)

	s, err := ParseShortTermStatus("booked")
	require.NoError(t, err)
	assert.Equal(t, ShortTermBooked, s)

	_, err = ParseLongTermStatus("booked")
	assert.Error(t, err)
}

func TestEstimatorFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Dashboard.RevenueProjectionNights = 20
	cfg.Dashboard.DefaultBookings = 4
	cfg.Dashboard.DefaultNights = 8
	cfg.Dashboard.OccupancyPlaceholder = 86
	cfg.Dashboard.TrendPlaceholder = 12

	assert.Equal(t, DefaultEstimator(), EstimatorFromConfig(cfg))
}

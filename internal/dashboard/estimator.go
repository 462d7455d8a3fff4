package dashboard

import (
	"github.com/shopspring/decimal"

	"rentaltrack/server/config"
	"rentaltrack/server/internal/models"
)

// Estimator supplies the figures the dashboard shows for properties that
// have no recorded income, and the portfolio-wide rates that are not yet
// computed from real data.
type Estimator interface {
	ProjectedRevenue(p models.Property) decimal.Decimal
	ProjectedBookings(p models.Property) int
	ProjectedNights(p models.Property) int
	OccupancyRate(properties []models.Property) int
	RevenueTrend(properties []models.Property) float64
}

// PlaceholderEstimator returns fixed stand-in values.
type PlaceholderEstimator struct {
	RevenueNights int
	Bookings      int
	Nights        int
	Occupancy     int
	Trend         float64
}

// DefaultEstimator projects 20 nights of revenue, 4 bookings, 8 nights, 86%
// occupancy and a 12% trend.
func DefaultEstimator() PlaceholderEstimator {
	return PlaceholderEstimator{RevenueNights: 20, Bookings: 4, Nights: 8, Occupancy: 86, Trend: 12}
}

// EstimatorFromConfig reads the placeholder values from the dashboard config.
func EstimatorFromConfig(cfg *config.Config) PlaceholderEstimator {
	return PlaceholderEstimator{
		RevenueNights: cfg.Dashboard.RevenueProjectionNights,
		Bookings:      cfg.Dashboard.DefaultBookings,
		Nights:        cfg.Dashboard.DefaultNights,
		Occupancy:     cfg.Dashboard.OccupancyPlaceholder,
		Trend:         cfg.Dashboard.TrendPlaceholder,
	}
}

func (e PlaceholderEstimator) ProjectedRevenue(p models.Property) decimal.Decimal {
	return p.Rate.Mul(decimal.NewFromInt(int64(e.RevenueNights)))
}

func (e PlaceholderEstimator) ProjectedBookings(models.Property) int { return e.Bookings }

func (e PlaceholderEstimator) ProjectedNights(models.Property) int { return e.Nights }

func (e PlaceholderEstimator) OccupancyRate(properties []models.Property) int {
	if len(properties) == 0 {
		return 0
	}
	return e.Occupancy
}

func (e PlaceholderEstimator) RevenueTrend(properties []models.Property) float64 {
	if len(properties) == 0 {
		return 0
	}
	return e.Trend
}

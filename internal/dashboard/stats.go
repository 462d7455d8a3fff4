package dashboard

import (
	"github.com/shopspring/decimal"

	"rentaltrack/server/internal/models"
)

// Stats are the portfolio totals at the top of the dashboard.
type Stats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
	TotalBookings int             `json:"total_bookings"`
	TotalNights   int             `json:"total_nights"`
	OccupancyRate int             `json:"occupancy_rate"`
	RevenueTrend  float64         `json:"revenue_trend"`
}

func (e *Engine) Summary(properties []models.Property) Stats {
	revenue := e.TotalRevenue(properties)
	expenses := decimal.Zero
	for _, p := range properties {
		expenses = expenses.Add(PropertyExpenses(p))
	}

	return Stats{
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetIncome:     revenue.Sub(expenses),
		TotalBookings: e.TotalBookings(properties),
		TotalNights:   e.TotalNights(properties),
		OccupancyRate: e.OccupancyRate(properties),
		RevenueTrend:  e.estimator.RevenueTrend(properties),
	}
}

// PropertyRevenue is the income total of p, or the estimator's projection
// when p has no income transactions.
func (e *Engine) PropertyRevenue(p models.Property) decimal.Decimal {
	income := p.Income()
	if len(income) == 0 {
		return e.estimator.ProjectedRevenue(p)
	}
	total := decimal.Zero
	for _, t := range income {
		total = total.Add(t.AbsAmount())
	}
	return total
}

// PropertyExpenses is the unsigned total of the expense transactions of p.
func PropertyExpenses(p models.Property) decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Expenses() {
		total = total.Add(t.AbsAmount())
	}
	return total
}

func (e *Engine) TotalRevenue(properties []models.Property) decimal.Decimal {
	total := decimal.Zero
	for _, p := range properties {
		total = total.Add(e.PropertyRevenue(p))
	}
	return total
}

func (e *Engine) TotalBookings(properties []models.Property) int {
	total := 0
	for _, p := range properties {
		if n := len(p.Income()); n > 0 {
			total += n
		} else {
			total += e.estimator.ProjectedBookings(p)
		}
	}
	return total
}

func (e *Engine) TotalNights(properties []models.Property) int {
	total := 0
	for _, p := range properties {
		income := p.Income()
		if len(income) == 0 {
			total += e.estimator.ProjectedNights(p)
			continue
		}
		for _, t := range income {
			total += t.Nights()
		}
	}
	return total
}

func (e *Engine) OccupancyRate(properties []models.Property) int {
	return e.estimator.OccupancyRate(properties)
}

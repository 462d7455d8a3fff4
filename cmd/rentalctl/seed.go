package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/models"
)

func (a *app) seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo properties, bookings and blocked dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			existing, err := db.FetchProperties(ctx, database.PropertyQuery{})
			if err != nil {
				return err
			}
			if len(existing) > 0 && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Database already has %d properties, use --force to seed anyway\n", len(existing))
				return nil
			}

			n, err := seed(ctx, db, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d properties\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even if properties already exist")
	return cmd
}

type seedBooking struct {
	from, to int // days from today; to < from means no end date
	amount   int64
	platform models.Platform
}

type seedProperty struct {
	property models.Property
	bookings []seedBooking
	expenses []int64
	blocked  [][2]int
	reason   string
}

func demoPortfolio() []seedProperty {
	return []seedProperty{
		{
			property: models.Property{Name: "Seaside Cottage", City: "Brighton", Type: models.ShortTerm, Source: models.SourceAirbnb, Rate: decimal.NewFromInt(140), Bedrooms: 2, Bathrooms: 1, MaxGuests: 4},
			bookings: []seedBooking{
				{from: -2, to: 1, amount: 420, platform: models.PlatformAirbnb},
				{from: 5, to: 8, amount: 480, platform: models.PlatformBooking},
			},
			expenses: []int64{60},
		},
		{
			property: models.Property{Name: "City Studio", City: "London", Type: models.ShortTerm, Source: models.SourceVRBO, Rate: decimal.NewFromInt(85), Bedrooms: 1, Bathrooms: 1, MaxGuests: 2},
			bookings: []seedBooking{
				{from: 3, to: 4, amount: 170, platform: models.PlatformVRBO},
				{from: 4, to: 6, amount: 250, platform: models.PlatformDirect},
			},
			blocked: [][2]int{{10, 12}},
			reason:  "Maintenance",
		},
		{
			property: models.Property{Name: "Maple Street House", City: "Leeds", Type: models.LongTerm, Source: models.SourceDirect, Rate: decimal.NewFromInt(2200), Bedrooms: 3, Bathrooms: 2, MaxGuests: 5},
			bookings: []seedBooking{{from: -15, to: -16, amount: 2200, platform: models.PlatformDirect}},
			expenses: []int64{340},
		},
		{
			property: models.Property{Name: "Garden Flat", City: "York", Type: models.LongTerm, Source: models.SourceDirect, Rate: decimal.NewFromInt(1600), Bedrooms: 2, Bathrooms: 1, MaxGuests: 3},
		},
	}
}

// seed writes the demo portfolio with dates relative to now and returns the
// number of properties created.
func seed(ctx context.Context, db *database.Database, now time.Time) (int, error) {
	today := models.CivilDate(now)
	day := func(offset int) *time.Time {
		t := today.AddDate(0, 0, offset)
		return &t
	}

	portfolio := demoPortfolio()
	for _, sp := range portfolio {
		p := sp.property
		if err := db.CreateProperty(ctx, &p); err != nil {
			return 0, fmt.Errorf("failed to seed %s: %w", p.Name, err)
		}

		for _, b := range sp.bookings {
			t := models.Transaction{
				PropertyID: p.ID,
				IsIncome:   true,
				Amount:     decimal.NewFromInt(b.amount),
				StartDate:  day(b.from),
				Platform:   b.platform,
			}
			if b.to >= b.from {
				t.EndDate = day(b.to)
			}
			if err := db.CreateTransaction(ctx, &t); err != nil {
				return 0, fmt.Errorf("failed to seed booking for %s: %w", p.Name, err)
			}
		}

		for _, amount := range sp.expenses {
			t := models.Transaction{
				PropertyID: p.ID,
				Amount:     decimal.NewFromInt(-amount),
				StartDate:  day(-7),
				Category:   "Maintenance",
			}
			if err := db.CreateTransaction(ctx, &t); err != nil {
				return 0, fmt.Errorf("failed to seed expense for %s: %w", p.Name, err)
			}
		}

		for _, r := range sp.blocked {
			b := models.BlockedDate{PropertyID: p.ID, StartDate: *day(r[0]), EndDate: *day(r[1]), Reason: sp.reason}
			if err := db.CreateBlockedDate(ctx, &b); err != nil {
				return 0, fmt.Errorf("failed to seed blocked date for %s: %w", p.Name, err)
			}
		}
	}
	return len(portfolio), nil
}

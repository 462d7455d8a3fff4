package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rentaltrack/server/internal/calendar"
	"rentaltrack/server/internal/dashboard"
	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/models"
)

func (a *app) settings(cmd *cobra.Command, db *database.Database) models.Settings {
	defaults := models.Settings{CurrencyCode: a.cfg.Currency.Code, CurrencySymbol: a.cfg.Currency.Symbol}
	s, err := db.LoadSettings(cmd.Context(), defaults)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to load settings, using defaults")
	}
	return s
}

func (a *app) calendarCmd() *cobra.Command {
	var month, property string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the booking calendar for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []calendar.Option
			if month != "" {
				m, err := calendar.ParseMonth(month)
				if err != nil {
					return err
				}
				opts = append(opts, calendar.WithMonth(m))
			}
			var propertyID *uuid.UUID
			if property != "" {
				id, err := uuid.Parse(property)
				if err != nil {
					return fmt.Errorf("invalid property id: %w", err)
				}
				propertyID = &id
			}

			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			cal := calendar.NewAggregator(db, a.logger, opts...)
			cal.Load(cmd.Context())
			if propertyID != nil {
				cal.SetPropertyFilter(cmd.Context(), propertyID)
			}

			printCalendar(cmd.OutOrStdout(), cal, a.settings(cmd, db))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (defaults to the current month)")
	cmd.Flags().StringVar(&property, "property", "", "only show bookings of this property id")
	return cmd
}

// printCalendar draws a Monday-first month grid. A day is marked with * when
// booked and x when blocked.
func printCalendar(w io.Writer, cal *calendar.Aggregator, settings models.Settings) {
	m := cal.Month()
	fmt.Fprintf(w, "%s %d\n", m.Month, m.Year)
	fmt.Fprintln(w, " Mo  Tu  We  Th  Fr  Sa  Su")

	offset := (int(m.First().Weekday()) + 6) % 7
	fmt.Fprint(w, strings.Repeat("    ", offset))
	for _, cell := range cal.Days() {
		mark := " "
		switch {
		case cell.Blocked:
			mark = "x"
		case cell.Bookings > 0:
			mark = "*"
		}
		fmt.Fprintf(w, "%3d%s", cell.Day, mark)
		if (offset+cell.Day)%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if (offset+m.Days())%7 != 0 {
		fmt.Fprintln(w)
	}

	names := make(map[uuid.UUID]string, len(cal.Properties()))
	for _, p := range cal.Properties() {
		names[p.ID] = p.Name
	}

	if conflicts := cal.Conflicts(); len(conflicts) > 0 {
		fmt.Fprintln(w, "\nDouble bookings:")
		for _, c := range conflicts {
			fmt.Fprintf(w, "  %s  %s (%d bookings)\n", c.Date.Format("Jan 2"), names[c.PropertyID], len(c.Bookings))
		}
	}

	upcoming := cal.UpcomingBookings()
	if len(upcoming) == 0 {
		fmt.Fprintln(w, "\nNo upcoming bookings")
		return
	}
	fmt.Fprintln(w, "\nUpcoming bookings:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, b := range upcoming {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", formatRange(b), names[b.PropertyID], b.PlatformLabel(), settings.FormatAmount(b.AbsAmount()))
	}
	tw.Flush()
}

func formatRange(t models.Transaction) string {
	start, end, ok := t.Span()
	if !ok {
		return "undated"
	}
	if start.Equal(end) {
		return start.Format("Jan 2")
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}

func (a *app) dashboardCmd() *cobra.Command {
	var rentalType, status string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print portfolio totals and property status",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := dashboard.NewEngine(dashboard.WithEstimator(dashboard.EstimatorFromConfig(a.cfg)))
			if err := applyFilters(engine, rentalType, status); err != nil {
				return err
			}

			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			properties, err := db.FetchProperties(cmd.Context(), database.PropertyQuery{Sort: database.SortByName})
			if err != nil {
				return err
			}

			printDashboard(cmd.OutOrStdout(), engine, properties, a.settings(cmd, db))
			return nil
		},
	}
	cmd.Flags().StringVar(&rentalType, "type", "", "short_term or long_term")
	cmd.Flags().StringVar(&status, "status", "", "booked/available for short_term, occupied/vacant for long_term")
	return cmd
}

func applyFilters(engine *dashboard.Engine, rentalType, status string) error {
	f, err := dashboard.ParseRentalFilter(rentalType)
	if err != nil {
		return err
	}
	engine.SelectRentalType(f)

	switch {
	case status == "":
		return nil
	case f == dashboard.FilterShortTerm:
		s, err := dashboard.ParseShortTermStatus(status)
		if err != nil {
			return err
		}
		engine.SelectShortTermStatus(s)
	case f == dashboard.FilterLongTerm:
		s, err := dashboard.ParseLongTermStatus(status)
		if err != nil {
			return err
		}
		engine.SelectLongTermStatus(s)
	default:
		return fmt.Errorf("--status needs --type")
	}
	return nil
}

func printDashboard(w io.Writer, engine *dashboard.Engine, properties []models.Property, settings models.Settings) {
	stats := engine.Summary(properties)
	counts := engine.Counts(properties)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Revenue\t%s\t(%+.0f%%)\n", settings.FormatAmount(stats.TotalRevenue), stats.RevenueTrend)
	fmt.Fprintf(tw, "Expenses\t%s\n", settings.FormatAmount(stats.TotalExpenses))
	fmt.Fprintf(tw, "Net income\t%s\n", settings.FormatAmount(stats.NetIncome))
	fmt.Fprintf(tw, "Bookings\t%d\n", stats.TotalBookings)
	fmt.Fprintf(tw, "Nights\t%d\n", stats.TotalNights)
	fmt.Fprintf(tw, "Occupancy\t%d%%\n", stats.OccupancyRate)
	tw.Flush()

	fmt.Fprintf(w, "\nShort-term %d (booked %d, available %d)  Long-term %d (occupied %d, vacant %d)\n\n",
		counts.ShortTerm, counts.Booked, counts.Available, counts.LongTerm, counts.Occupied, counts.Vacant)

	cards := engine.Cards(engine.FilteredProperties(properties))
	if len(cards) == 0 {
		fmt.Fprintln(w, "No properties match")
		return
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSTATUS\tPLATFORM\tREVENUE")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Property.Name, c.Property.Type, c.Status, c.Platform, settings.FormatAmount(c.Revenue))
	}
	tw.Flush()
}

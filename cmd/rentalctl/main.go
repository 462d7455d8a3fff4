package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rentaltrack/server/config"
	"rentaltrack/server/internal/database"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	dbPath string
	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "rentalctl",
		Short:         "Manage and inspect the rental tracking database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.Database.Path = a.dbPath
			}
			a.cfg = cfg

			a.logger = logrus.New()
			a.logger.SetOutput(cmd.ErrOrStderr())
			a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			a.logger.SetLevel(logrus.WarnLevel)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (defaults to DB_PATH)")

	rootCmd.AddCommand(
		a.migrateCmd(),
		a.seedCmd(),
		a.calendarCmd(),
		a.dashboardCmd(),
	)
	return rootCmd
}

// open connects to the configured database and brings its schema up to date.
func (a *app) open() (*database.Database, error) {
	db, err := database.NewDatabase(a.cfg.Database.Path, a.logger)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date at %s\n", a.cfg.Database.Path)
			return nil
		},
	}
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		// Port the HTTP server listens on
		Port string `env:"PORT" envDefault:"5250"`

		// Origins allowed by the CORS middleware
		AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Database struct {
		// Path of the SQLite database file
		Path string `env:"DB_PATH" envDefault:"database/rentals.db"`
	}

	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	// Dashboard holds the stand-in values used until real occupancy and
	// revenue computation exists.
	Dashboard struct {
		// Nights of nightly rate projected as revenue for a property without income
		RevenueProjectionNights int `env:"DASHBOARD_REVENUE_NIGHTS" envDefault:"20"`

		// Bookings assumed for a property without income transactions
		DefaultBookings int `env:"DASHBOARD_DEFAULT_BOOKINGS" envDefault:"4"`

		// Nights assumed for a property without income transactions
		DefaultNights int `env:"DASHBOARD_DEFAULT_NIGHTS" envDefault:"8"`

		// Occupancy rate reported for a non-empty portfolio
		OccupancyPlaceholder int `env:"DASHBOARD_OCCUPANCY" envDefault:"86"`

		// Revenue trend percentage shown next to the revenue total
		TrendPlaceholder float64 `env:"DASHBOARD_TREND" envDefault:"12"`
	}

	Photos struct {
		// Number of pending cover photos the queue accepts
		QueueSize int `env:"PHOTO_QUEUE_SIZE" envDefault:"16"`

		// Number of concurrent photo processors
		ProcessorCount int `env:"PHOTO_PROCESSOR_COUNT" envDefault:"1"`

		// Maximum number of retries for a failed save
		MaxRetries int `env:"PHOTO_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"PHOTO_RETRY_DELAY" envDefault:"1"`

		// Longest edge of a stored cover photo in pixels
		MaxDimension int `env:"PHOTO_MAX_DIMENSION" envDefault:"1024"`
	}

	// Currency is used until the user saves their own settings.
	Currency struct {
		Code   string `env:"CURRENCY_CODE" envDefault:"USD"`
		Symbol string `env:"CURRENCY_SYMBOL" envDefault:"$"`
	}
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	// A missing .env file is normal outside development
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the dashboard and photo pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Dashboard.RevenueProjectionNights < 0 || c.Dashboard.DefaultBookings < 0 || c.Dashboard.DefaultNights < 0 {
		return fmt.Errorf("dashboard defaults must not be negative")
	}
	if c.Dashboard.OccupancyPlaceholder < 0 || c.Dashboard.OccupancyPlaceholder > 100 {
		return fmt.Errorf("invalid occupancy placeholder %d: must be between 0 and 100", c.Dashboard.OccupancyPlaceholder)
	}
	if c.Photos.QueueSize < 1 || c.Photos.ProcessorCount < 1 {
		return fmt.Errorf("photo queue size and processor count must be at least 1")
	}
	if c.Photos.MaxDimension < 16 {
		return fmt.Errorf("invalid photo max dimension %d: must be at least 16", c.Photos.MaxDimension)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"rentaltrack/server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20, cfg.Dashboard.RevenueProjectionNights)
	assert.Equal(t, 4, cfg.Dashboard.DefaultBookings)
	assert.Equal(t, 8, cfg.Dashboard.DefaultNights)
	assert.Equal(t, 86, cfg.Dashboard.OccupancyPlaceholder)
	assert.Equal(t, "USD", cfg.Currency.Code)
	assert.Equal(t, 1024, cfg.Photos.MaxDimension)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,http://example.com")
	t.Setenv("DASHBOARD_REVENUE_NIGHTS", "30")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30, cfg.Dashboard.RevenueProjectionNights)
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CURRENCY_CODE=EUR\nCURRENCY_SYMBOL=€\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("CURRENCY_CODE")
		os.Unsetenv("CURRENCY_SYMBOL")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency.Code)
	assert.Equal(t, "€", cfg.Currency.Symbol)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{name: "Defaults", mutate: func(c *Config) {}},
		{name: "Occupancy above 100", mutate: func(c *Config) { c.Dashboard.OccupancyPlaceholder = 101 }, expectError: true},
		{name: "Negative nights", mutate: func(c *Config) { c.Dashboard.DefaultNights = -1 }, expectError: true},
		{name: "Empty queue", mutate: func(c *Config) { c.Photos.QueueSize = 0 }, expectError: true},
		{name: "Tiny photos", mutate: func(c *Config) { c.Photos.MaxDimension = 8 }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			require.NoError(t, err)
			tt.mutate(cfg)

			if tt.expectError {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestGetPlatformLabels(t *testing.T) {
	assert.Equal(t, []string{"Airbnb", "Booking", "VRBO", "Direct", "Other"}, GetPlatformLabels())
}

func TestGetPlatformStyle(t *testing.T) {
	assert.Equal(t, "#FF5A5F", GetPlatformStyle(models.PlatformAirbnb).Color)
	assert.Equal(t, models.PlatformDirect, GetPlatformStyle("").Platform)
	assert.Equal(t, models.PlatformOther, GetPlatformStyle("expedia").Platform)
}

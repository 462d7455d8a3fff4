package database

import (
	"fmt"

	"gorm.io/gorm"

	"rentaltrack/server/internal/models"
)

// MigrateSchema creates or updates every table the record store uses.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Property{},
		&models.Transaction{},
		&models.BlockedDate{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Calendar queries scan by owner and start date
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transactions_property_start ON transactions(property_id, start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_blocked_dates_property_start ON blocked_dates(property_id, start_date)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (d *Database) RunMigrations() error {
	d.logger.Info("Running database migrations")
	return MigrateSchema(d.db)
}

package database

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentaltrack/server/internal/models"
)

// LoadSettings reads the persisted settings; keys never saved keep the
// values from defaults.
func (d *Database) LoadSettings(ctx context.Context, defaults models.Settings) (models.Settings, error) {
	var rows []models.Setting
	if err := d.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return defaults, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := defaults
	for _, row := range rows {
		switch row.Key {
		case models.SettingCurrencyCode:
			settings.CurrencyCode = row.Value
		case models.SettingCurrencySymbol:
			settings.CurrencySymbol = row.Value
		case models.SettingLoggedIn:
			settings.LoggedIn, _ = strconv.ParseBool(row.Value)
		case models.SettingOnboardingSeen:
			settings.OnboardingSeen, _ = strconv.ParseBool(row.Value)
		case models.SettingConflictResolved:
			settings.ConflictResolved, _ = strconv.ParseBool(row.Value)
		}
	}
	return settings, nil
}

// SaveSettings persists every settings key in one transaction.
func (d *Database) SaveSettings(ctx context.Context, s models.Settings) error {
	rows := []models.Setting{
		{Key: models.SettingCurrencyCode, Value: s.CurrencyCode},
		{Key: models.SettingCurrencySymbol, Value: s.CurrencySymbol},
		{Key: models.SettingLoggedIn, Value: strconv.FormatBool(s.LoggedIn)},
		{Key: models.SettingOnboardingSeen, Value: strconv.FormatBool(s.OnboardingSeen)},
		{Key: models.SettingConflictResolved, Value: strconv.FormatBool(s.ConflictResolved)},
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		return nil
	})
}

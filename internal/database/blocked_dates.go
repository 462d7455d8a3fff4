package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentaltrack/server/internal/models"
)

func (d *Database) CreateBlockedDate(ctx context.Context, b *models.BlockedDate) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.EndDate.IsZero() {
		b.EndDate = b.StartDate
	}
	if err := d.propertyExists(ctx, b.PropertyID); err != nil {
		return fmt.Errorf("failed to find owning property: %w", err)
	}
	if err := d.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create blocked date: %w", err)
	}
	return nil
}

func (d *Database) GetBlockedDate(ctx context.Context, id uuid.UUID) (*models.BlockedDate, error) {
	var b models.BlockedDate
	if err := d.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (d *Database) FetchBlockedDates(ctx context.Context, q BlockedDateQuery) ([]models.BlockedDate, error) {
	tx := d.db.WithContext(ctx).Model(&models.BlockedDate{})
	if q.PropertyID != nil {
		tx = tx.Where("property_id = ?", *q.PropertyID)
	}
	tx, err := q.Sort.apply(tx)
	if err != nil {
		return nil, err
	}

	var blocked []models.BlockedDate
	if err := tx.Find(&blocked).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch blocked dates: %w", err)
	}
	return blocked, nil
}

func (d *Database) DeleteBlockedDate(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&models.BlockedDate{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete blocked date: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	d.logger.WithField("blocked_date_id", id).Info("Deleted blocked date")
	return nil
}

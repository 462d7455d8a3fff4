package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentaltrack/server/internal/models"
)

func (d *Database) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Omit("Transactions", "BlockedDates").Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	d.logger.WithField("property_id", p.ID).Info("Created property")
	return nil
}

// GetProperty loads one property with its transactions.
func (d *Database) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var p models.Property
	err := d.db.WithContext(ctx).
		Preload("Transactions", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date").Order("rowid") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// FetchProperties returns properties with their transactions preloaded so the
// dashboard predicates can run without further queries.
func (d *Database) FetchProperties(ctx context.Context, q PropertyQuery) ([]models.Property, error) {
	tx := d.db.WithContext(ctx).
		Preload("Transactions", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date").Order("rowid") })
	if q.Type != nil {
		tx = tx.Where("type = ?", *q.Type)
	}
	tx, err := q.Sort.apply(tx)
	if err != nil {
		return nil, err
	}

	var properties []models.Property
	if err := tx.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

// UpdateProperty saves the editable fields of an existing property.
func (d *Database) UpdateProperty(ctx context.Context, p *models.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	result := d.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"street":      p.Street,
		"city":        p.City,
		"region":      p.Region,
		"type":        p.Type,
		"source":      p.Source,
		"rate":        p.Rate,
		"bedrooms":    p.Bedrooms,
		"bathrooms":   p.Bathrooms,
		"max_guests":  p.MaxGuests,
		"description": p.Description,
		"cover_index": p.CoverIndex,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProperty removes a property together with its transactions and blocked dates.
func (d *Database) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete transactions: %w", err)
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.BlockedDate{}).Error; err != nil {
			return fmt.Errorf("failed to delete blocked dates: %w", err)
		}
		result := tx.Delete(&models.Property{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetPropertyPhoto returns the processed cover photo of a property.
func (d *Database) GetPropertyPhoto(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var p models.Property
	if err := d.db.WithContext(ctx).Select("id", "cover_photo").First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if len(p.CoverPhoto) == 0 {
		return nil, ErrNotFound
	}
	return p.CoverPhoto, nil
}

// SavePropertyPhoto stores a processed cover photo inside the given transaction.
func SavePropertyPhoto(tx *gorm.DB, id uuid.UUID, data []byte) error {
	result := tx.Model(&models.Property{}).Where("id = ?", id).Update("cover_photo", data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) propertyExists(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := d.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

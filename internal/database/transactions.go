package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentaltrack/server/internal/models"
)

func (d *Database) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := d.propertyExists(ctx, t.PropertyID); err != nil {
		return fmt.Errorf("failed to find owning property: %w", err)
	}
	if err := d.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	d.logger.WithFields(logrus.Fields{
		"transaction_id": t.ID,
		"property_id":    t.PropertyID,
		"is_income":      t.IsIncome,
	}).Info("Created transaction")
	return nil
}

func (d *Database) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var t models.Transaction
	if err := d.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// FetchTransactions returns the transactions matching q.
func (d *Database) FetchTransactions(ctx context.Context, q TransactionQuery) ([]models.Transaction, error) {
	tx := d.db.WithContext(ctx).Model(&models.Transaction{})
	if q.PropertyID != nil {
		tx = tx.Where("property_id = ?", *q.PropertyID)
	}
	switch {
	case q.IncomeOnly:
		tx = tx.Where("is_income = ?", true)
	case q.ExpenseOnly:
		tx = tx.Where("is_income = ?", false)
	}
	tx, err := q.Sort.apply(tx)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := tx.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

func (d *Database) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package processor

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentaltrack/server/config"
	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/imaging"
	"rentaltrack/server/internal/queue"
)

// TxRunner runs fc inside a database transaction. *gorm.DB satisfies it.
type TxRunner interface {
	Transaction(fc func(*gorm.DB) error, opts ...*sql.TxOptions) error
}

// PhotoProcessor turns queued cover photo uploads into stored JPEGs
type PhotoProcessor struct {
	db     TxRunner
	logger *logrus.Logger
	config *config.Config
	queue  *queue.PhotoQueue
}

// NewPhotoProcessor creates a processor for jobs pushed onto q
func NewPhotoProcessor(db TxRunner, q *queue.PhotoQueue, cfg *config.Config, logger *logrus.Logger) *PhotoProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	return &PhotoProcessor{
		db:     db,
		queue:  q,
		config: cfg,
		logger: logger,
	}
}

// Start subscribes the processor to its queue
func (p *PhotoProcessor) Start() {
	p.queue.Subscribe(p.Process)
}

// Process downscales one photo and stores it on its property. Saving is
// retried; undecodable images and unknown properties are not.
func (p *PhotoProcessor) Process(job queue.PhotoJob) error {
	data, err := imaging.Process(bytes.NewReader(job.Data), p.config.Photos.MaxDimension)
	if err != nil {
		return fmt.Errorf("failed to process cover photo for %s: %w", job.PropertyID, err)
	}

	log := p.logger.WithField("property_id", job.PropertyID)
	maxRetries := p.config.Photos.MaxRetries

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			log.Infof("Retrying cover photo save, attempt %d of %d", attempt, maxRetries)
			time.Sleep(time.Duration(p.config.Photos.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			return database.SavePropertyPhoto(tx, job.PropertyID, data)
		})

		if err == nil {
			log.WithField("bytes", len(data)).Info("Stored cover photo")
			return nil
		}
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("cover photo for %s: %w", job.PropertyID, err)
		}

		log.WithError(err).Error("Cover photo save failed")
	}

	return fmt.Errorf("failed to save cover photo after %d attempts: %w", maxRetries+1, err)
}

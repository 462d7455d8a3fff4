package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// PhotoJob is an uploaded cover photo waiting to be processed.
type PhotoJob struct {
	PropertyID uuid.UUID
	Data       []byte
}

// PhotoQueue is an in-memory queue of cover photo uploads
type PhotoQueue struct {
	items    chan PhotoJob
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(PhotoJob) error
}

// NewPhotoQueue creates a photo queue holding at most bufferSize pending jobs
func NewPhotoQueue(bufferSize int, logger *logrus.Logger) *PhotoQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &PhotoQueue{
		items:    make(chan PhotoJob, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(PhotoJob) error, 0),
	}
}

// Push adds a job to the queue without blocking
func (q *PhotoQueue) Push(job PhotoJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- job:
		q.logger.WithFields(logrus.Fields{
			"property_id": job.PropertyID,
			"bytes":       len(job.Data),
		}).Debug("Queued cover photo")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler that is called for every job
func (q *PhotoQueue) Subscribe(handler func(PhotoJob) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start processes jobs in the background until the queue is closed
func (q *PhotoQueue) Start() {
	go q.Run(context.Background())
}

// Run processes jobs until ctx is cancelled or the queue is closed. Several
// Run loops may share one queue; each job is handled by exactly one of them.
func (q *PhotoQueue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-q.done:
			return nil
		case job, ok := <-q.items:
			if !ok {
				return nil
			}
			q.dispatch(job)
		}
	}
}

// dispatch sends the job to all subscribed handlers
func (q *PhotoQueue) dispatch(job PhotoJob) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(job); err != nil {
			q.logger.WithError(err).WithField("property_id", job.PropertyID).Error("Handler failed to process cover photo")
		}
	}
}

// Close stops the queue and prevents new jobs from being added
func (q *PhotoQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the number of pending jobs
func (q *PhotoQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *PhotoQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

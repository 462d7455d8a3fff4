package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob() PhotoJob {
	return PhotoJob{PropertyID: uuid.New(), Data: []byte{0xff, 0xd8}}
}

func TestNewPhotoQueue(t *testing.T) {
	q := NewPhotoQueue(10, logrus.New())
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestPhotoQueue_Push(t *testing.T) {
	q := NewPhotoQueue(2, logrus.New())

	// Successful push
	require.NoError(t, q.Push(newJob()))
	assert.Equal(t, 1, q.Len())

	// Queue full
	require.NoError(t, q.Push(newJob()))
	assert.ErrorIs(t, q.Push(newJob()), ErrQueueFull)

	// Closed queue
	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Push(newJob()), ErrQueueClosed)
}

func TestPhotoQueue_Subscribe(t *testing.T) {
	q := NewPhotoQueue(10, logrus.New())

	var processed []uuid.UUID
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(2)

	q.Subscribe(func(job PhotoJob) error {
		mu.Lock()
		processed = append(processed, job.PropertyID)
		mu.Unlock()
		wg.Done()
		return nil
	})
	q.Start()
	defer q.Close()

	first, second := newJob(), newJob()
	require.NoError(t, q.Push(first))
	require.NoError(t, q.Push(second))
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uuid.UUID{first.PropertyID, second.PropertyID}, processed)
}

func TestPhotoQueue_Close(t *testing.T) {
	q := NewPhotoQueue(10, logrus.New())

	assert.NoError(t, q.Close())
	assert.True(t, q.IsClosed())

	// Second close is a no-op
	assert.NoError(t, q.Close())
}

func TestPhotoQueue_AllHandlersCalled(t *testing.T) {
	q := NewPhotoQueue(10, logrus.New())

	var wg sync.WaitGroup
	var mu sync.Mutex
	calls := 0

	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Subscribe(func(PhotoJob) error {
			mu.Lock()
			calls++
			mu.Unlock()
			wg.Done()
			return errors.New("handler error does not stop the others")
		})
	}
	q.Start()
	defer q.Close()

	require.NoError(t, q.Push(newJob()))
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 3, calls)
	mu.Unlock()
}

func TestPhotoQueue_SharedRunLoops(t *testing.T) {
	q := NewPhotoQueue(20, logrus.New())

	var mu sync.Mutex
	seen := make(map[uuid.UUID]int)
	var wg sync.WaitGroup

	q.Subscribe(func(job PhotoJob) error {
		mu.Lock()
		seen[job.PropertyID]++
		mu.Unlock()
		wg.Done()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for i := 0; i < 3; i++ {
		go q.Run(ctx)
	}

	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, q.Push(newJob()))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 10)
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestPhotoQueue_RunStopsOnCancel(t *testing.T) {
	q := NewPhotoQueue(1, logrus.New())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package api

import (
	"context"
	"sync"

	"rentaltrack/server/internal/calendar"
	"rentaltrack/server/internal/dashboard"
)

// Session holds the calendar and dashboard view state shared by all
// requests. Every operation runs under one lock so the view-models see a
// single sequence of changes.
type Session struct {
	mu        sync.Mutex
	calendar  *calendar.Aggregator
	dashboard *dashboard.Engine
}

func NewSession(cal *calendar.Aggregator, dash *dashboard.Engine) *Session {
	return &Session{calendar: cal, dashboard: dash}
}

// Do runs fn with exclusive access to the view-models.
func (s *Session) Do(fn func(cal *calendar.Aggregator, dash *dashboard.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.calendar, s.dashboard)
}

// Refresh reloads the calendar's records after a write.
func (s *Session) Refresh(ctx context.Context) {
	s.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		cal.Load(ctx)
	})
}

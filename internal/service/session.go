package service

import (
	"context"
	"sync"
	"time"

	"github.com/soliveira/tradetalk/internal/domain"
)

// SessionStore tracks each chat session's pending confirmation. At most one
// confirmation is outstanding per session; entries expire after the
// staleness window and are also swept by a background ticker so abandoned
// sessions don't pile up.
type SessionStore struct {
	ttl      time.Duration
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]*domain.PendingConfirmation // session_id → confirmation
}

// NewSessionStore creates a SessionStore with the given staleness window
// and sweep interval.
func NewSessionStore(ttl, interval time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		interval: interval,
		pending:  make(map[string]*domain.PendingConfirmation),
	}
}

// Get returns the session's pending confirmation, or nil when there is none
// or it has gone stale. Stale entries are removed on access, so an expired
// confirmation behaves exactly as if no trade were pending.
func (s *SessionStore) Get(sessionID string) *domain.PendingConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[sessionID]
	if !ok {
		return nil
	}
	if p.ExpiredAt(time.Now(), s.ttl) {
		delete(s.pending, sessionID)
		return nil
	}
	return p
}

// Take removes and returns the session's pending confirmation, or nil when
// there is none or it has gone stale. Removal and return happen under a
// single lock acquisition, so at most one caller can ever own a given
// confirmation.
func (s *SessionStore) Take(sessionID string) *domain.PendingConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[sessionID]
	if !ok {
		return nil
	}
	delete(s.pending, sessionID)
	if p.ExpiredAt(time.Now(), s.ttl) {
		return nil
	}
	return p
}

// Put stores the session's pending confirmation, replacing any existing one
// (latest trade request wins).
func (s *SessionStore) Put(sessionID string, p *domain.PendingConfirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[sessionID] = p
}

// Clear removes the session's pending confirmation, if any.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
}

// Len returns the number of sessions with a pending confirmation.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Start runs the sweep loop, ticking at the configured interval and
// removing expired confirmations. It blocks until ctx is cancelled and is
// meant to be run in its own goroutine.
func (s *SessionStore) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

// sweep removes every confirmation whose staleness window has passed.
func (s *SessionStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionID, p := range s.pending {
		if p.ExpiredAt(now, s.ttl) {
			delete(s.pending, sessionID)
		}
	}
}

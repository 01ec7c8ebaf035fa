// Package store provides the in-memory session/result broker: a TTL-bounded
// pending-session table and a decision table with destructive reads, plus a
// periodic reaper. All state is process-local.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"approval-relay/internal/approval/domain"
)

// Store holds pending sessions and decisions keyed by token. Safe for
// concurrent use from request handlers.
type Store struct {
	mu        sync.Mutex
	pending   map[string]domain.PendingSession
	decisions map[string]domain.Decision
	nowF      func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		pending:   make(map[string]domain.PendingSession),
		decisions: make(map[string]domain.Decision),
		nowF:      func() time.Time { return time.Now().UTC() },
	}
}

// PutPending records a pending session under its token. Re-issuing a token
// overwrites silently; fresh tokens never collide in practice.
func (s *Store) PutPending(ctx context.Context, p domain.PendingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.Token] = p
}

// GetPending returns the pending session for token if present and not
// expired. Non-destructive; an expired entry is deleted opportunistically and
// reported absent.
func (s *Store) GetPending(ctx context.Context, token string) (domain.PendingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[token]
	if !ok {
		return domain.PendingSession{}, false
	}
	if !p.ExpiresAt.After(s.nowF()) {
		delete(s.pending, token)
		return domain.PendingSession{}, false
	}
	return p, true
}

// TakePending atomically removes and returns the pending session for token.
// Exactly one caller observes the entry even when callbacks race; this is the
// gate that makes a second decision for the same token impossible.
func (s *Store) TakePending(ctx context.Context, token string) (domain.PendingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[token]
	if !ok {
		return domain.PendingSession{}, false
	}
	delete(s.pending, token)
	if !p.ExpiresAt.After(s.nowF()) {
		return domain.PendingSession{}, false
	}
	return p, true
}

// PutDecision records the outcome for token until expiresAt.
func (s *Store) PutDecision(ctx context.Context, token string, d domain.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions[token] = d
}

// TakeDecision atomically removes and returns the decision for token.
// A second call after a successful first always reports absent; this is the
// at-most-once delivery guarantee. Expired entries are removed and absent.
func (s *Store) TakeDecision(ctx context.Context, token string) (domain.Decision, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.decisions[token]
	if !ok {
		return domain.Decision{}, false
	}
	delete(s.decisions, token)
	if !d.ExpiresAt.After(s.nowF()) {
		return domain.Decision{}, false
	}
	return d, true
}

// Sweep removes every expired entry from both tables and returns how many
// were removed.
func (s *Store) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowF()
	removed := 0
	for token, p := range s.pending {
		if !p.ExpiresAt.After(now) {
			delete(s.pending, token)
			removed++
		}
	}
	for token, d := range s.decisions {
		if !d.ExpiresAt.After(now) {
			delete(s.decisions, token)
			removed++
		}
	}
	return removed
}

// RunReaper sweeps expired entries every interval until ctx is cancelled.
// onSweep, if non-nil, receives the removed count after each sweep.
func (s *Store) RunReaper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			removed := s.Sweep(ctx)
			if removed > 0 {
				log.Printf("store: reaper removed %d expired entries", removed)
			}
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

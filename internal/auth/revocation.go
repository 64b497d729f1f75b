// ABOUTME: In-memory revocation set for tokens invalidated by logout
// ABOUTME: Entries are pruned after the token's natural expiry by a janitor goroutine

package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationSet records tokens that must be rejected even though their
// signature is still valid. It is process-local shared state, safe for
// concurrent use, and injected into the middleware rather than held as a
// global. Entries only need to outlive their token's expiry, so a janitor
// prunes them on a timer.
type RevocationSet struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token -> retention deadline
	cancel  context.CancelFunc
}

// NewRevocationSet creates a revocation set and starts its cleanup goroutine.
func NewRevocationSet() *RevocationSet {
	ctx, cancel := context.WithCancel(context.Background())
	s := &RevocationSet{
		revoked: make(map[string]time.Time),
		cancel:  cancel,
	}
	go s.cleanupLoop(ctx)
	return s
}

// Close stops the cleanup goroutine.
func (s *RevocationSet) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Add marks a token revoked until expiresAt, after which the entry may be
// discarded (the token no longer verifies anyway). A zero expiresAt falls
// back to the default token TTL. Add is idempotent; re-adding keeps the
// later deadline.
func (s *RevocationSet) Add(token string, expiresAt time.Time) {
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(DefaultTokenTTL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.revoked[token]; ok && existing.After(expiresAt) {
		return
	}
	s.revoked[token] = expiresAt
}

// Contains reports whether the token has been revoked and not yet pruned.
func (s *RevocationSet) Contains(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[token]
	return ok
}

// Len returns the number of retained entries.
func (s *RevocationSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

func (s *RevocationSet) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune(time.Now())
		}
	}
}

func (s *RevocationSet) prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, deadline := range s.revoked {
		if now.After(deadline) {
			delete(s.revoked, token)
		}
	}
}

package store

import (
	"context"
	"sync"
	"time"

	"github.com/thirdevent/gatekeeper/ports"
)

// MemoryRevocations is an in-memory implementation of the RevocationStore
// interface for tests and local development.
type MemoryRevocations struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	issued  map[string]int
}

// NewMemoryRevocations creates a new in-memory revocation store.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		revoked: make(map[string]time.Time),
		issued:  make(map[string]int),
	}
}

var _ ports.RevocationStore = (*MemoryRevocations)(nil)

func (s *MemoryRevocations) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryRevocations) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		return false, nil
	}
	return true, nil
}

func (s *MemoryRevocations) RecordAuthorization(ctx context.Context, digest string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[digest]++
	return nil
}

// IssueCount reports how often a digest was authorized, for tests.
func (s *MemoryRevocations) IssueCount(digest string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued[digest]
}

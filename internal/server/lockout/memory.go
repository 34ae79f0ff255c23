package lockout

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	failed      int
	expiresAt   time.Time
	lockedUntil *time.Time
}

// MemoryStore keeps counters in process memory. Entries are dropped lazily
// once their window has passed. It is meant for single-instance deployments
// and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return State{}, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return State{}, nil
	}
	return State{FailedCount: e.failed, LockedUntil: e.lockedUntil}, nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, key string, now time.Time, threshold int, window time.Duration) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !now.Before(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(window)}
		s.entries[key] = e
	}

	e.failed++
	if e.failed >= threshold {
		lockedUntil := now.Add(window).UTC()
		e.lockedUntil = &lockedUntil
		e.expiresAt = lockedUntil
	}
	return State{FailedCount: e.failed, LockedUntil: e.lockedUntil}, nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Package cache holds small in-process expiring maps used by the memory
// backend.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a mutex-guarded map with per-entry expiry. Expired entries are
// dropped lazily on Get and in bulk by Purge.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]item[V]
	ttl     time.Duration
	now     func() time.Time
}

type item[V any] struct {
	value V
	until time.Time // zero means no expiry
}

func (it item[V]) expired(now time.Time) bool {
	return !it.until.IsZero() && !now.Before(it.until)
}

// NewStore creates a store whose Set uses ttl. A ttl <= 0 keeps entries until
// they are deleted.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{entries: map[string]item[V]{}, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source for tests.
func (s *Store[V]) WithClock(now func() time.Time) *Store[V] {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store[V]) Get(ctx context.Context, key string) (V, bool) {
	return s.GetAt(ctx, key, s.now())
}

// GetAt is Get with expiry judged at now instead of the store clock.
func (s *Store[V]) GetAt(_ context.Context, key string, now time.Time) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if it.expired(now) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return it.value, true
}

func (s *Store[V]) Set(ctx context.Context, key string, value V) {
	s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *Store[V]) SetWithTTL(ctx context.Context, key string, value V, ttl time.Duration) {
	var until time.Time
	if ttl > 0 {
		until = s.now().Add(ttl)
	}
	s.SetUntil(ctx, key, value, until)
}

// SetUntil stores value with an absolute deadline. A zero until never
// expires.
func (s *Store[V]) SetUntil(_ context.Context, key string, value V, until time.Time) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.entries[key] = item[V]{value: value, until: until}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (s *Store[V]) Purge(ctx context.Context) int {
	return s.PurgeAt(ctx, s.now())
}

func (s *Store[V]) PurgeAt(_ context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, it := range s.entries {
		if it.expired(now) {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

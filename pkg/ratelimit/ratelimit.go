package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Store answers "may this key submit again" and counts the attempt if so.
// The default implementation is in-process memory: a restart resets all
// counters and each instance of a multi-instance deployment keeps its own
// counter. Deployments that need a shared view plug in the redis-backed store.
type Store interface {
	CheckAndIncrement(ctx context.Context, key string) (allowed bool, err error)
}

// MemoryStore keeps a sliding window of accepted timestamps per key.
// Only accepted submissions consume quota; rejected ones do not extend
// the window.
type MemoryStore struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	clock  clockwork.Clock
	hits   map[string][]time.Time
}

func NewMemoryStore(window time.Duration, limit int, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		window: window,
		limit:  limit,
		clock:  clock,
		hits:   make(map[string][]time.Time),
	}
}

func (s *MemoryStore) CheckAndIncrement(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	cutoff := now.Add(-s.window)

	kept := s.hits[key][:0]
	for _, ts := range s.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= s.limit {
		s.hits[key] = kept
		return false, nil
	}
	s.hits[key] = append(kept, now)
	return true, nil
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter returns a process-local limiter. now may be nil, in which
// case wall-clock time is used; tests inject their own.
func NewMemoryLimiter(now func() time.Time) Limiter {
	if now == nil {
		now = time.Now
	}
	return &memoryLimiter{now: now, buckets: make(map[string]*bucket)}
}

func (m *memoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true, Remaining: limit}, nil
	}
	t := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || t.After(b.resetAt) {
		// Sweep expired buckets while we hold the lock; login volume keeps
		// the map small.
		for k, old := range m.buckets {
			if t.After(old.resetAt) {
				delete(m.buckets, k)
			}
		}
		b = &bucket{resetAt: t.Add(window)}
		m.buckets[key] = b
	}

	if b.count >= limit {
		return Decision{Allowed: false, ResetAt: b.resetAt}, nil
	}
	b.count++
	return Decision{Allowed: true, Remaining: limit - b.count, ResetAt: b.resetAt}, nil
}

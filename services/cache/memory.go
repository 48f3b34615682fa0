// File: services/cache/memory.go
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"roamify/models"
)

type memoryEntry[T any] struct {
	value     T
	seq       uint64
	createdAt time.Time
	expiresAt time.Time
}

// Memory is the in-process cache backend: a mutex-guarded map with per-entry
// expiry, oldest-first eviction and a periodic sweep of expired entries.
type Memory[T any] struct {
	mu      sync.Mutex
	entries map[string]memoryEntry[T]
	seq     uint64

	maxSize int
	baseTTL time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewMemory builds an in-process cache. sweepEvery bounds how long expired
// entries can linger; pass 0 to disable the background sweep (tests).
func NewMemory[T any](maxSize int, baseTTL, sweepEvery time.Duration) *Memory[T] {
	m := &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		maxSize: maxSize,
		baseTTL: baseTTL,
		stopCh:  make(chan struct{}),
	}
	if sweepEvery > 0 {
		go m.sweepLoop(sweepEvery)
	}
	return m
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		m.misses.Add(1)
		var zero T
		return zero, false
	}
	m.hits.Add(1)
	return e.value, true
}

func (m *Memory[T]) Set(_ context.Context, key string, value T, conf models.Confidence) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxSize {
		m.evictOldestLocked()
	}
	m.seq++
	m.entries[key] = memoryEntry[T]{
		value:     value,
		seq:       m.seq,
		createdAt: now,
		expiresAt: now.Add(TTLFor(conf, m.baseTTL)),
	}
}

// evictOldestLocked removes the single entry with the earliest creation time,
// breaking ties by insertion order.
func (m *Memory[T]) evictOldestLocked() {
	var oldestKey string
	var oldestSeq uint64
	first := true
	for k, e := range m.entries {
		if first || e.seq < oldestSeq {
			oldestKey, oldestSeq = k, e.seq
			first = false
		}
	}
	if !first {
		delete(m.entries, oldestKey)
	}
}

func (m *Memory[T]) Clear(_ context.Context) {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry[T])
	m.mu.Unlock()
}

func (m *Memory[T]) Size(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory[T]) Metrics() Metrics {
	h, mi := m.hits.Load(), m.misses.Load()
	return Metrics{Hits: h, Misses: mi, HitRate: hitRate(h, mi)}
}

func (m *Memory[T]) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Memory[T]) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Memory[T]) removeExpired() {
	now := time.Now()
	m.mu.Lock()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.mu.Unlock()
}

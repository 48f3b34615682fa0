// File: services/cache/cache.go
package cache

import (
	"context"
	"time"

	"roamify/models"
)

// Metrics reports cache effectiveness.
type Metrics struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hitRate"`
}

// Store is the cache contract shared by the in-process and remote backends.
// Entries expire on a confidence-tiered TTL and the oldest entry is evicted
// once the store is full.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T, conf models.Confidence)
	Clear(ctx context.Context)
	Size(ctx context.Context) int
	Metrics() Metrics
	// Stop shuts down the background expiry sweep.
	Stop()
}

// TTLFor scales the base TTL by estimate confidence: the shakier the figure,
// the sooner it is re-fetched.
func TTLFor(conf models.Confidence, base time.Duration) time.Duration {
	switch conf {
	case models.ConfidenceHigh:
		return base
	case models.ConfidenceMedium:
		return base / 2
	default:
		return base / 6
	}
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

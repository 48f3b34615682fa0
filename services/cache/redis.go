// File: services/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"roamify/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Redis is the remote cache backend. It keeps an in-process Memory cache as a
// transparent fallback: any connect or per-call failure is logged and served
// locally, never surfaced to the caller.
type Redis[T any] struct {
	client   *redis.Client
	fallback *Memory[T]
	prefix   string
	indexKey string
	maxSize  int
	baseTTL  time.Duration
	logger   *zap.Logger

	hits   atomic.Uint64
	misses atomic.Uint64

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRedis wraps a redis client as a cache backend. An unreachable server is
// logged, not fatal; the fallback serves until redis recovers.
func NewRedis[T any](client *redis.Client, prefix string, maxSize int, baseTTL, sweepEvery time.Duration, logger *zap.Logger) *Redis[T] {
	r := &Redis[T]{
		client:   client,
		fallback: NewMemory[T](maxSize, baseTTL, sweepEvery),
		prefix:   prefix + ":",
		indexKey: prefix + ":index",
		maxSize:  maxSize,
		baseTTL:  baseTTL,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("remote cache unreachable at startup, degrading to in-process cache",
			zap.Error(err))
	}

	if sweepEvery > 0 {
		go r.sweepLoop(sweepEvery)
	}
	return r
}

func (r *Redis[T]) key(k string) string { return r.prefix + k }

func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	switch {
	case err == redis.Nil:
		// May have been written while redis was down.
		if v, ok := r.fallback.Get(ctx, key); ok {
			r.hits.Add(1)
			return v, true
		}
		r.misses.Add(1)
		return zero, false
	case err != nil:
		r.logger.Warn("remote cache get failed, serving from in-process fallback",
			zap.String("key", key), zap.Error(err))
		if v, ok := r.fallback.Get(ctx, key); ok {
			r.hits.Add(1)
			return v, true
		}
		r.misses.Add(1)
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		r.logger.Warn("remote cache entry corrupt, dropping",
			zap.String("key", key), zap.Error(err))
		r.client.Del(ctx, r.key(key))
		r.client.ZRem(ctx, r.indexKey, key)
		r.misses.Add(1)
		return zero, false
	}
	r.hits.Add(1)
	return v, true
}

func (r *Redis[T]) Set(ctx context.Context, key string, value T, conf models.Confidence) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("cache value not serializable", zap.String("key", key), zap.Error(err))
		return
	}

	// Size-bounded eviction: the insertion-time index orders entries oldest
	// first, so one ZPOPMIN drops exactly the oldest.
	if n, err := r.client.ZCard(ctx, r.indexKey).Result(); err == nil && int(n) >= r.maxSize {
		if popped, err := r.client.ZPopMin(ctx, r.indexKey, 1).Result(); err == nil && len(popped) > 0 {
			if member, ok := popped[0].Member.(string); ok {
				r.client.Del(ctx, r.key(member))
			}
		}
	}

	ttl := TTLFor(conf, r.baseTTL)
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Warn("remote cache set failed, writing to in-process fallback",
			zap.String("key", key), zap.Error(err))
		r.fallback.Set(ctx, key, value, conf)
		return
	}
	r.client.ZAdd(ctx, r.indexKey, &redis.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: key,
	})
}

func (r *Redis[T]) Clear(ctx context.Context) {
	keys, err := r.client.Keys(ctx, r.prefix+"*").Result()
	if err == nil && len(keys) > 0 {
		r.client.Del(ctx, keys...)
	}
	r.client.Del(ctx, r.indexKey)
	r.fallback.Clear(ctx)
}

func (r *Redis[T]) Size(ctx context.Context) int {
	n, err := r.client.ZCard(ctx, r.indexKey).Result()
	if err != nil {
		return r.fallback.Size(ctx)
	}
	return int(n)
}

func (r *Redis[T]) Metrics() Metrics {
	h, m := r.hits.Load(), r.misses.Load()
	return Metrics{Hits: h, Misses: m, HitRate: hitRate(h, m)}
}

func (r *Redis[T]) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.fallback.Stop()
}

func (r *Redis[T]) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.pruneIndex()
		}
	}
}

// pruneIndex drops index members whose entries have already expired via redis
// TTL, keeping Size honest between inserts.
func (r *Redis[T]) pruneIndex() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	members, err := r.client.ZRange(ctx, r.indexKey, 0, -1).Result()
	if err != nil {
		return
	}
	for _, m := range members {
		exists, err := r.client.Exists(ctx, r.key(m)).Result()
		if err == nil && exists == 0 {
			r.client.ZRem(ctx, r.indexKey, m)
		}
	}
}

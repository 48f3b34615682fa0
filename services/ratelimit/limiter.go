// File: services/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Options tune the limiter. Zero values fall back to conservative defaults.
type Options struct {
	MaxConcurrent    int
	MinDelay         time.Duration
	Jitter           time.Duration
	MaxRetries       int
	BackoffBase      time.Duration
	BackoffCap       time.Duration
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

func (o *Options) fillDefaults() {
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 2
	}
	if o.Jitter <= 0 {
		o.Jitter = 200 * time.Millisecond
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = time.Second
	}
	if o.BackoffCap <= 0 {
		o.BackoffCap = 15 * time.Second
	}
	if o.BreakerThreshold <= 0 {
		o.BreakerThreshold = 5
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = time.Minute
	}
}

// Limiter schedules calls against a slow, fallible dependency: at most
// MaxConcurrent run at once, each admitted call is delayed to spread load,
// rate-limit failures are retried with exponential backoff, and a shared
// circuit breaker fast-fails everything once the dependency looks down.
type Limiter struct {
	opts    Options
	sem     chan struct{}
	breaker *Breaker
	logger  *zap.Logger

	running atomic.Int64
	queued  atomic.Int64
}

func NewLimiter(opts Options, logger *zap.Logger) *Limiter {
	opts.fillDefaults()
	return &Limiter{
		opts:    opts,
		sem:     make(chan struct{}, opts.MaxConcurrent),
		breaker: NewBreaker(opts.BreakerThreshold, opts.BreakerCooldown),
		logger:  logger,
	}
}

// Breaker exposes the underlying state machine for diagnostics.
func (l *Limiter) Breaker() *Breaker { return l.breaker }

// Running is the number of admitted calls currently executing.
func (l *Limiter) Running() int64 { return l.running.Load() }

// Queued is the number of calls waiting for admission.
func (l *Limiter) Queued() int64 { return l.queued.Load() }

// Do runs op under the limiter's admission rules. It resolves with op's
// result, ErrMaxRetries, ErrCircuitOpen, or the context error. Failures not
// marked as rate-limit signals propagate immediately without retry.
func (l *Limiter) Do(ctx context.Context, op func(context.Context) error) error {
	// Rejected admissions do not consume a retry.
	if err := l.breaker.Allow(); err != nil {
		return err
	}

	l.queued.Add(1)
	select {
	case l.sem <- struct{}{}:
		l.queued.Add(-1)
	case <-ctx.Done():
		l.queued.Add(-1)
		return ctx.Err()
	}
	l.running.Add(1)
	defer func() {
		l.running.Add(-1)
		<-l.sem
	}()

	// Spread admitted calls out instead of firing them back to back.
	delay := l.opts.MinDelay + time.Duration(rand.Int63n(int64(l.opts.Jitter)+1))
	if err := sleepCtx(ctx, delay); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := l.opts.BackoffBase << (attempt - 1)
			if backoff > l.opts.BackoffCap {
				backoff = l.opts.BackoffCap
			}
			l.logger.Debug("rate limited, backing off",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			if err := sleepCtx(ctx, backoff); err != nil {
				return err
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			l.breaker.RecordSuccess()
			return nil
		}
		if !IsRateLimited(lastErr) {
			return lastErr
		}
		l.breaker.RecordFailure()
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, l.opts.MaxRetries+1, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLimiter(opts Options) *Limiter {
	if opts.MinDelay == 0 {
		opts.MinDelay = time.Nanosecond
	}
	if opts.Jitter == 0 {
		opts.Jitter = time.Nanosecond
	}
	return NewLimiter(opts, zap.NewNop())
}

func TestLimiterAdmissionInvariant(t *testing.T) {
	const maxConcurrent = 3
	l := testLimiter(Options{MaxConcurrent: maxConcurrent})

	var running, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 24; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Do(context.Background(), func(context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(maxConcurrent),
		"never more than maxConcurrent tasks in flight")
	assert.Equal(t, int64(0), l.Running())
	assert.Equal(t, int64(0), l.Queued())
}

func TestLimiterRetriesRateLimitFailures(t *testing.T) {
	l := testLimiter(Options{
		MaxConcurrent: 1,
		MaxRetries:    3,
		BackoffBase:   time.Millisecond,
	})

	var calls int
	err := l.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return MarkRateLimited(errors.New("429"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestLimiterExhaustsRetries(t *testing.T) {
	l := testLimiter(Options{
		MaxConcurrent: 1,
		MaxRetries:    2,
		BackoffBase:   time.Millisecond,
		// Keep the breaker out of this test's way.
		BreakerThreshold: 100,
	})

	var calls int
	err := l.Do(context.Background(), func(context.Context) error {
		calls++
		return MarkRateLimited(errors.New("429"))
	})
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestLimiterDoesNotRetryOtherErrors(t *testing.T) {
	l := testLimiter(Options{MaxConcurrent: 1, MaxRetries: 5, BackoffBase: time.Millisecond})

	boom := errors.New("schema mismatch")
	var calls int
	err := l.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "non-rate-limit errors propagate immediately")
}

func TestLimiterCircuitOpenRejectsNewAdmissions(t *testing.T) {
	l := testLimiter(Options{
		MaxConcurrent:    1,
		MaxRetries:       0,
		BackoffBase:      time.Millisecond,
		BreakerThreshold: 2,
		BreakerCooldown:  time.Hour,
	})

	for i := 0; i < 2; i++ {
		err := l.Do(context.Background(), func(context.Context) error {
			return MarkRateLimited(errors.New("429"))
		})
		require.ErrorIs(t, err, ErrMaxRetries)
	}

	start := time.Now()
	err := l.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Less(t, time.Since(start), 50*time.Millisecond,
		"open breaker rejects without queueing or delay")
}

func TestLimiterErrorsAreDistinguishable(t *testing.T) {
	assert.False(t, errors.Is(ErrCircuitOpen, ErrMaxRetries))
	assert.True(t, IsRateLimited(MarkRateLimited(errors.New("x"))))
	assert.False(t, IsRateLimited(errors.New("x")))
	assert.False(t, IsRateLimited(nil))
}

func TestLimiterHonorsContextWhileQueued(t *testing.T) {
	l := testLimiter(Options{MaxConcurrent: 1})

	release := make(chan struct{})
	go l.Do(context.Background(), func(context.Context) error { //nolint:errcheck
		<-release
		return nil
	})
	time.Sleep(10 * time.Millisecond) // let the first task occupy the slot

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Do(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

// File: services/ratelimit/breaker.go
package ratelimit

import (
	"sync"
	"time"
)

// BreakerState is the circuit breaker's position.
type BreakerState string

const (
	StateClosed   BreakerState = "closed"    // calls flow normally
	StateOpen     BreakerState = "open"      // all new calls rejected
	StateHalfOpen BreakerState = "half_open" // cooldown elapsed, probing
)

// Breaker is an explicit {closed, open, half-open} state machine over
// consecutive rate-limit failures, testable apart from the scheduling loop.
type Breaker struct {
	mu sync.Mutex

	state       BreakerState
	failures    int
	openedAt    time.Time
	threshold   int
	cooldown    time.Duration

	now func() time.Time // injectable clock for tests
}

// NewBreaker opens after threshold consecutive failures and stays open for
// cooldown before probing again.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		state:     StateClosed,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a new call may be admitted. While open it rejects
// immediately with ErrCircuitOpen; once the cooldown elapses it half-closes
// and resets the failure counter.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.state = StateHalfOpen
		b.failures = 0
	}
	return nil
}

// RecordSuccess closes the breaker and clears the failure streak.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	b.state = StateClosed
	b.failures = 0
	b.mu.Unlock()
}

// RecordFailure counts one rate-limit failure; the streak is limiter-wide,
// not per task.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	b.failures++
	if b.failures >= b.threshold {
		b.state = StateOpen
		b.openedAt = b.now()
	}
	b.mu.Unlock()
}

// State returns the current position for diagnostics.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

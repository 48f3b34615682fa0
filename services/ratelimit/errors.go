// File: services/ratelimit/errors.go
package ratelimit

import "errors"

// Terminal errors a scheduled call can resolve with. They are distinguishable
// so callers can pick a fallback instead of failing the whole unit of work.
var (
	// ErrCircuitOpen rejects new admissions while the breaker cools off.
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrMaxRetries reports a task that kept hitting rate limits until its
	// retry budget ran out.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// rateLimitedError marks a failure as a rate-limit signal (429-class), which
// is the only class the limiter retries.
type rateLimitedError struct {
	err error
}

func (e *rateLimitedError) Error() string { return "rate limited: " + e.err.Error() }
func (e *rateLimitedError) Unwrap() error { return e.err }

// MarkRateLimited wraps err so the limiter treats it as retryable.
func MarkRateLimited(err error) error {
	if err == nil {
		return nil
	}
	return &rateLimitedError{err: err}
}

// IsRateLimited reports whether err carries the rate-limit marker.
func IsRateLimited(err error) bool {
	var rl *rateLimitedError
	return errors.As(err, &rl)
}

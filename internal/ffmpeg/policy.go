package ffmpeg

import (
	"context"
	"errors"
)

// RetryPolicy is the explicit fallback contract for transcode attempts: a
// hardware-encoder attempt that fails retryably is replayed once on the
// software encoder. Modeled as a value passed to the call site rather than
// wrapping, so the retry behavior is visible where transcoding happens.
type RetryPolicy struct {
	// MaxFallbacks bounds how many fallback attempts follow the first
	// attempt. The pipeline uses 1: never zero retries, never more than one.
	MaxFallbacks int
	// Retryable classifies an error as eligible for fallback. When nil,
	// DefaultRetryable is used.
	Retryable func(error) bool
}

// DefaultPolicy allows the single hardware-to-software fallback.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{MaxFallbacks: 1}
}

// ShouldFallback reports whether a failed attempt warrants the software
// fallback. Only hardware attempts fall back, and timeouts never do:
// software will not beat the clock that hardware missed.
func (p RetryPolicy) ShouldFallback(fallbacksUsed int, hardwareAttempt bool, err error) bool {
	if fallbacksUsed >= p.MaxFallbacks || !hardwareAttempt {
		return false
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = DefaultRetryable
	}
	return retryable(err)
}

// DefaultRetryable treats a plain transcode failure as retryable and a
// timeout as fatal.
func DefaultRetryable(err error) bool {
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return false
	}
	var failed *FailedError
	return errors.As(err, &failed)
}

// Limiter is a counting semaphore capping concurrent ffmpeg processes.
// Each transcode is CPU/GPU-bound; unbounded parallelism just thrashes.
type Limiter struct {
	sem chan struct{}
}

// NewLimiter returns a Limiter admitting up to n concurrent holders.
func NewLimiter(n int) *Limiter {
	if n <= 0 {
		n = 1
	}
	return &Limiter{sem: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (l *Limiter) Release() {
	<-l.sem
}

// Package ratelimit throttles outbound provider requests so a batch of
// tickers does not trip upstream rate limiting in the first place.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter for the single upstream provider.
// It is constructed explicitly and passed to whoever needs it; there is
// no process-wide instance.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerSecond sustained requests with
// the given burst. A non-positive rate disables limiting entirely, which
// is what tests use.
func New(requestsPerSecond float64, burst int) *Limiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until the limiter permits a request or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

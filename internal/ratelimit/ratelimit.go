// Package ratelimit wraps a token-bucket limiter for pacing reads from an
// input stream.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// A Limiter paces calls to Wait at a fixed number of events per second.
type Limiter struct {
	limiter *rate.Limiter
}

// New constructs a limiter allowing perSecond events per second, with a
// burst of one. A zero or negative perSecond disables limiting.
func New(perSecond float64) *Limiter {
	if perSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Wait blocks until the next event is allowed, or ctx ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether an event may proceed immediately.
func (l *Limiter) Allow() bool { return l.limiter.Allow() }

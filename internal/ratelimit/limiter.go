// Package ratelimit wraps golang.org/x/time/rate with named limiters.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter paces outbound requests to a single upstream host.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a limiter allowing requestsPerSecond sustained requests.
// The burst equals the rate so short bursts are not penalized.
func New(name string, requestsPerSecond int) *Limiter {
	return NewWithBurst(name, requestsPerSecond, requestsPerSecond)
}

// NewWithBurst creates a limiter with an explicit burst size.
func NewWithBurst(name string, requestsPerSecond, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
	}
}

// Wait blocks until a request may proceed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow reports whether a request may proceed without blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Name returns the limiter's name.
func (l *Limiter) Name() string {
	return l.name
}

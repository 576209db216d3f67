package dispatch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer gates consecutive sends within one batch. The engine creates a
// fresh Pacer per batch and waits on it between sends only, never before
// the first — pacing never leaks across requests.
//
// Tests inject a recording fake so pacing behaviour is observable without
// real wall-clock delays.
type Pacer interface {
	Wait(ctx context.Context) error
}

type intervalPacer struct {
	lim *rate.Limiter
}

// NewIntervalPacer returns a Pacer that enforces a fixed minimum delay
// between grants. Built on a token bucket with burst 1; the initial token
// is consumed at construction so the first Wait blocks a full interval.
func NewIntervalPacer(interval time.Duration) Pacer {
	lim := rate.NewLimiter(rate.Every(interval), 1)
	lim.Allow()
	return &intervalPacer{lim: lim}
}

// Wait blocks until the interval since the previous grant has elapsed.
// Returns a non-nil error only if ctx is cancelled while waiting.
func (p *intervalPacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}

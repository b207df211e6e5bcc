package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces extraction calls by a fixed interval to respect the
// service's usage policy. Deliberately non-adaptive: one flat delay, no
// backoff.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given inter-page delay. A zero or
// negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next page may start. The first call returns
// immediately; every later call enforces the full delay since the
// previous one.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

package scrapers

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces out navigations to the upstream site across all requests.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer allows perSecond navigations per second with a burst of one.
// perSecond <= 0 disables pacing.
func NewPacer(perSecond float64) *Pacer {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next navigation may start.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

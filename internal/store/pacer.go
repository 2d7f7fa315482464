package store

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// minRequestSpacing keeps the client under the store's ~3 requests/second
// allowance.
const minRequestSpacing = 350 * time.Millisecond

// pacer serializes outbound requests with a minimum spacing between them.
// One shared pacer per client; the call discipline is single-threaded, the
// limiter just enforces the gap.
type pacer struct {
	lim *rate.Limiter
}

func newPacer(spacing time.Duration) *pacer {
	return &pacer{lim: rate.NewLimiter(rate.Every(spacing), 1)}
}

func (p *pacer) wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}

package store

import (
	"context"
	"errors"
	"time"
)

const (
	// maxAttempts bounds every remote call, rate-limit waits included.
	maxAttempts = 3

	// defaultRateLimitWait applies when the store throttles without
	// advising a wait.
	defaultRateLimitWait = 60 * time.Second
)

// withRetry runs fn up to maxAttempts times. Rate-limit responses sleep the
// server-advised duration, transient failures back off exponentially
// (2^attempt seconds), anything else propagates immediately.
func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= maxAttempts {
			return err
		}

		var wait time.Duration
		var rl *RateLimitedError
		var tr *TransientError
		switch {
		case errors.As(err, &rl):
			wait = rl.RetryAfter
			if wait <= 0 {
				wait = defaultRateLimitWait
			}
			c.log.Warn("store rate limited, waiting",
				"op", op,
				"wait", wait,
				"attempt", attempt,
			)
		case errors.As(err, &tr):
			wait = time.Duration(1<<attempt) * time.Second
			c.log.Warn("transient store failure, backing off",
				"op", op,
				"wait", wait,
				"attempt", attempt,
				"error", err,
			)
		default:
			return err
		}

		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

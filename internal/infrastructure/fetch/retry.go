package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/prodlens/backend/internal/domain"
)

// RetryPolicy describes how a blocking call is retried: attempt budget,
// starting delay, backoff multiplier, and which HTTP statuses count as
// transient. No jitter is applied; for a single-session client the
// synchronized-retry risk is acceptable.
type RetryPolicy struct {
	MaxAttempts     int
	BaseDelay       time.Duration
	Multiplier      float64
	RetryableStatus func(status int) bool
}

// DefaultPolicy returns the scraping defaults: 5 attempts, 2s initial
// delay doubling each retry, and 503 as the only retryable status.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   2 * time.Second,
		Multiplier:  2,
		RetryableStatus: func(status int) bool {
			return status == 503
		},
	}
}

// delay returns the backoff before retry number n (1-based): BaseDelay for
// the first retry, multiplied for each one after.
func (p RetryPolicy) delay(n int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < n; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
	}
	return d
}

// Do executes op up to MaxAttempts times. op reports whether its failure is
// transient; terminal failures propagate immediately. Backoff sleeps respect
// context cancellation. Exhausting the budget yields ErrMaxRetries wrapping
// the last transient error.
func (p RetryPolicy) Do(ctx context.Context, op func(attempt int) (retry bool, err error)) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		retry, err := op(attempt)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err

		if attempt == p.MaxAttempts {
			break
		}
		select {
		case <-time.After(p.delay(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrMaxRetries, lastErr)
}

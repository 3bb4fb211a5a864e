package llm

import (
	"context"
	"errors"
	"time"
)

const (
	// maxAttempts bounds the total number of provider calls per
	// completion, including the first.
	maxAttempts = 3
	// retryDelay is the fixed wait between attempts. The provider's
	// rate-limit windows are coarse, so there is no backoff curve.
	retryDelay = 30 * time.Second
)

// RetryingCompleter wraps a Completer with bounded retry on rate
// limiting. Only RateLimitError is retried; every other failure
// propagates immediately.
type RetryingCompleter struct {
	next     Completer
	attempts int
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewRetryingCompleter wraps next with the default retry policy:
// 3 total attempts, 30 seconds between them.
func NewRetryingCompleter(next Completer) *RetryingCompleter {
	return &RetryingCompleter{
		next:     next,
		attempts: maxAttempts,
		delay:    retryDelay,
		sleep:    sleepContext,
	}
}

// Complete calls the wrapped Completer, waiting and re-calling on
// rate-limit failures until the attempt budget is spent. A provider
// Retry-After hint overrides the fixed delay when present.
func (r *RetryingCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	for attempt := 1; ; attempt++ {
		output, err := r.next.Complete(ctx, system, user)
		if err == nil {
			return output, nil
		}

		var rateLimitErr *RateLimitError
		if !errors.As(err, &rateLimitErr) {
			return "", err
		}
		if attempt >= r.attempts {
			return "", ErrRateLimitExceeded
		}

		delay := r.delay
		if rateLimitErr.RetryAfter > 0 {
			delay = rateLimitErr.RetryAfter
		}
		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

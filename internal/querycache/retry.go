package querycache

import (
	"context"
	"time"
)

// Schedule fetches retry twice on failure with exponential backoff:
// base 1s, doubled per attempt, capped at 30s.
const (
	ScheduleRetries = 2

	retryMaxDelay = 30 * time.Second
)

// retryBaseDelay is a var so tests can shrink the backoff.
var retryBaseDelay = time.Second

func retryDelay(attempt int) time.Duration {
	delay := retryBaseDelay << attempt
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

// WithRetry wraps fetch so failures are retried up to retries more
// times. The backoff wait respects context cancellation.
func WithRetry[T any](retries int, fetch func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var zero T
		for attempt := 0; ; attempt++ {
			value, err := fetch(ctx)
			if err == nil {
				return value, nil
			}
			if attempt >= retries {
				return zero, err
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(retryDelay(attempt)):
			}
		}
	}
}

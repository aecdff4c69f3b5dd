package retry

import (
	"context"
	"time"

	ai "github.com/m-rashid-2024/careagent"
)

// NotifyFunc is called before sleeping between attempts.
// attempt is 1-indexed and refers to the attempt that just failed.
type NotifyFunc func(attempt int, err error, delay time.Duration)

// effectiveDelay returns the delay to use, honoring the server's Retry-After if larger.
func effectiveDelay(configured time.Duration, err error) time.Duration {
	if server := ai.RetryAfterOf(err); server > configured {
		return server
	}
	return configured
}

// Do executes fn with retry logic.
// It respects context cancellation during backoff waits.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	return DoWithNotify(ctx, cfg, nil, fn)
}

// DoWithNotify is like Do but reports every retry to notify.
// Pass nil for notify to disable reporting (equivalent to Do).
func DoWithNotify[T any](ctx context.Context, cfg Config, notify NotifyFunc, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// No sleep after the last attempt.
		if attempt < attempts-1 {
			delay := effectiveDelay(cfg.Delay(attempt), err)
			if notify != nil {
				notify(attempt+1, err, delay)
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

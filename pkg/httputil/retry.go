// Package httputil provides the retry policy shared by registry clients.
package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. Registry clients wrap
// timeouts, connection errors, and 5xx responses with it; anything else
// (404s, malformed JSON) fails immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries.
// Only errors wrapped in [RetryableError] are retried. Waiting respects
// ctx, so a cancelled crawl stops between attempts.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) || attempt == attempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff applies the default crawl policy: 3 attempts starting
// at 1 second. Generous for a CLI, but crates.io asks clients to back off
// rather than hammer.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

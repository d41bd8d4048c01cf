package http

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for request retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// withRetry calls attempt until it succeeds, reports a permanent failure,
// or the delays are exhausted. It makes len(delays)+1 attempts at most and
// returns the last error.
func withRetry(ctx context.Context, delays []time.Duration, attempt func() (bool, error)) error {
	var lastErr error
	for i := 0; i <= len(delays); i++ {
		retry, err := attempt()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retry || i == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[i]):
		}
	}
	return lastErr
}

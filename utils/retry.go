// File: utils/retry.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMaxAttemptsReached is returned by RetryFixedDelay once every attempt has failed.
var ErrMaxAttemptsReached = errors.New("max retry attempts reached")

// RetryFixedDelay runs fn up to attempts times, sleeping interval before each try.
// The first failure that clears all attempts is wrapped in ErrMaxAttemptsReached;
// a cancelled context aborts the wait and returns the context error.
func RetryFixedDelay(ctx context.Context, attempts int, interval time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%w: no attempts configured", ErrMaxAttemptsReached)
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrMaxAttemptsReached, lastErr)
}

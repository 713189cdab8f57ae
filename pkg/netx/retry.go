package netx

import (
	"context"
	stderrors "errors"
	"time"
)

// Retry runs op up to attempts times with a fixed delay between attempts.
// It returns nil on the first success and the last error otherwise. Errors
// wrapped with Permanent stop the loop immediately. Context cancellation
// aborts the wait between attempts.
func Retry(ctx context.Context, attempts int, delay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		var perm *permanentError
		if stderrors.As(lastErr, &perm) {
			return perm.err
		}
	}
	return lastErr
}

// Permanent marks err as non-retryable: Retry stops and returns the original
// error immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// permanentError stops the retry loop while preserving the original error.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds repeated attempts against an external service.
// Delay before attempt k (k >= 2) is BaseDelay * 2^(k-2), no jitter.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
	}
}

// ExhaustedError is returned once the retry budget is spent. It wraps the
// last underlying error and records how many attempts were made.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Retry runs op under the policy, retrying on any failure with exponential
// backoff. It is meant for external fetches only, never for DB writes.
func Retry[T any](ctx context.Context, p RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var result T
	attempts := 0
	backoff := retry.WithMaxRetries(uint64(p.MaxAttempts-1), retry.NewExponential(p.BaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		var opErr error
		result, opErr = op(ctx)
		if opErr != nil {
			return retry.RetryableError(opErr)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, &ExhaustedError{Attempts: attempts, Err: err}
	}
	return result, nil
}

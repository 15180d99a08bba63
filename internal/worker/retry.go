package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// RetryPolicy retries failed attempts with exponential backoff.
// The zero value retries nothing (single attempt, no delay).
type RetryPolicy struct {
	// MaxAttempts is the total number of tries including the first.
	MaxAttempts int
	// Backoff is the delay before the first retry; it doubles each retry.
	Backoff time.Duration
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// Validation and conflict errors are never retried: they are
// deterministic, so a retry can only waste work. ErrAlreadyBilled in
// particular means another run already won — retrying would double-bill.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	delay := p.Backoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// retryable reports whether an error class can succeed on retry.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConflict) {
		return false
	}
	return true
}

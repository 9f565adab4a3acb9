package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	apperrors "stockroom/internal/errors"
	mysqlinfra "stockroom/internal/infrastructure/mysql"
)

// RetryPolicy bounds how often a ledger operation is replayed after a
// transient storage conflict.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// withRetry runs op until it succeeds, fails for a non-transient reason or
// runs out of attempts. Attempt n waits (n-1)*Backoff with ±20% jitter.
func withRetry(ctx context.Context, policy RetryPolicy, logger *zap.Logger, op func(attempt int) error) error {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			base := policy.Backoff * time.Duration(attempt-1)
			jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
			select {
			case <-time.After(jitter):
			case <-ctx.Done():
				return apperrors.NewTransientError("request cancelled while retrying", ctx.Err())
			}
		}

		err := op(attempt)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}

		lastErr = err
		logger.Warn("transient storage conflict, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
	}

	return apperrors.NewTransientError("max retries exceeded", lastErr)
}

func isTransient(err error) bool {
	if mysqlinfra.IsRetryable(err) {
		return true
	}
	_, ok := apperrors.IsTransientError(err)
	return ok
}

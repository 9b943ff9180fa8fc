package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how long the initiator keeps dialing a peer that is
// not listening yet.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (that RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if that.InitialInterval > 0 {
		exp.InitialInterval = that.InitialInterval
	}
	if that.MaxInterval > 0 {
		exp.MaxInterval = that.MaxInterval
	}
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, that.MaxRetries), ctx)
}

// Retry - runs operation until it succeeds, the policy is exhausted or ctx is done.
func Retry(ctx context.Context, logger *slog.Logger, policy RetryPolicy, operation func() error) error {
	log := logger.With("method", "Retry")

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		log.Warn("attempt failed, retrying", "attempt", attempt, "wait", wait.String(), "error", err)
	}

	if err := backoff.RetryNotify(operation, policy.backOff(ctx), notify); err != nil {
		return fmt.Errorf("gave up after %d retries: %w", attempt, err)
	}

	return nil
}

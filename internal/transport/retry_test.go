package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRefused = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRetry(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

	t.Run("Succeeds after transient failures", func(t *testing.T) {
		// Given: an operation failing twice
		calls := 0
		op := func() error {
			calls++
			if calls < 3 {
				return errRefused
			}
			return nil
		}

		// When: it is retried
		err := Retry(context.Background(), discardLogger(), policy, op)

		// Then: the third call wins
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Gives up after MaxRetries", func(t *testing.T) {
		calls := 0

		err := Retry(context.Background(), discardLogger(), policy, func() error {
			calls++
			return errRefused
		})

		require.ErrorIs(t, err, errRefused)
		assert.Equal(t, 4, calls)
	})

	t.Run("Stops on canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := Retry(ctx, discardLogger(), RetryPolicy{MaxRetries: 100, InitialInterval: time.Second}, func() error {
			calls++
			return errRefused
		})

		require.Error(t, err)
		assert.LessOrEqual(t, calls, 1)
	})
}

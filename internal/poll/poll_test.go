package poll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proctorai/proctor-go/internal/model"
	"github.com/proctorai/proctor-go/internal/poll"
)

func TestUntilConfigValidation(t *testing.T) {
	tests := map[string]struct {
		cfg    poll.Config
		errMsg string
	}{
		"Negative interval returns validation error": {
			cfg:    poll.Config{Interval: -1 * time.Second, Timeout: 10 * time.Second},
			errMsg: "interval must be positive",
		},
		"Missing timeout returns validation error": {
			cfg:    poll.Config{Interval: 1 * time.Second},
			errMsg: "timeout is required",
		},
		"Timeout below interval returns validation error": {
			cfg:    poll.Config{Interval: 10 * time.Second, Timeout: 5 * time.Second},
			errMsg: "must be at least the poll interval",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			calls := 0
			err := poll.Until(context.Background(), tt.cfg, func(ctx context.Context) (bool, error) {
				calls++
				return false, nil
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrNotValid)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, 0, calls, "invalid config must fail before any remote call")
		})
	}
}

func TestUntilChecksImmediately(t *testing.T) {
	// A check that is terminal on the first query must return without sleeping.
	cfg := poll.Config{Interval: 1 * time.Hour, Timeout: 2 * time.Hour}

	start := time.Now()
	calls := 0
	err := poll.Until(context.Background(), cfg, func(ctx context.Context) (bool, error) {
		calls++
		return true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 1*time.Second)
}

func TestUntilPollsUntilTerminal(t *testing.T) {
	cfg := poll.Config{Interval: 5 * time.Millisecond, Timeout: 1 * time.Second}

	calls := 0
	err := poll.Until(context.Background(), cfg, func(ctx context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntilTimeout(t *testing.T) {
	cfg := poll.Config{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond}

	calls := 0
	err := poll.Until(context.Background(), cfg, func(ctx context.Context) (bool, error) {
		calls++
		return false, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTimeout)
	// After raising the timeout no further polling happens: the loop stops
	// the moment it knows the next sleep would exceed the budget.
	assert.LessOrEqual(t, calls, 5)
}

func TestUntilPropagatesCheckError(t *testing.T) {
	cfg := poll.Config{Interval: 5 * time.Millisecond, Timeout: 1 * time.Second}
	transportErr := errors.New("connection reset")

	calls := 0
	err := poll.Until(context.Background(), cfg, func(ctx context.Context) (bool, error) {
		calls++
		return false, transportErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, 1, calls, "transport errors are not retried by the poll loop")
}

func TestUntilCancellation(t *testing.T) {
	cfg := poll.Config{Interval: 50 * time.Millisecond, Timeout: 10 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := poll.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		return false, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUntilTerminal(t *testing.T) {
	cfg := poll.Config{Interval: time.Millisecond, Timeout: time.Second}

	statuses := []model.Status{model.StatusPending, model.StatusRunning, model.StatusCompleted}
	calls := 0
	err := poll.UntilTerminal(context.Background(), cfg, func(ctx context.Context) (model.Operation, error) {
		op := model.Operation{ID: "test-1", Kind: model.KindTest, Status: statuses[calls]}
		calls++
		return op, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntilTerminalStatusRegression(t *testing.T) {
	// A poll observing a lower lifecycle rank than the previous one means the
	// remote side is lying about the operation; the wait stops with a server
	// error instead of looping on inconsistent state.
	cfg := poll.Config{Interval: time.Millisecond, Timeout: time.Second}

	statuses := []model.Status{model.StatusRunning, model.StatusPending}
	calls := 0
	err := poll.UntilTerminal(context.Background(), cfg, func(ctx context.Context) (model.Operation, error) {
		op := model.Operation{ID: "sr-1", Kind: model.KindScoreRun, Status: statuses[calls]}
		calls++
		return op, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrServer)
	assert.Contains(t, err.Error(), "moved backwards")
	assert.Equal(t, 2, calls)
}

func TestUntilConcurrentWaits(t *testing.T) {
	// Two waits in flight overlap: total wall time is roughly the max of the
	// two completion times, not the sum.
	cfg := poll.Config{Interval: 10 * time.Millisecond, Timeout: 5 * time.Second}

	newCheck := func(terminalAfter int) poll.CheckFunc {
		calls := 0
		return func(ctx context.Context) (bool, error) {
			calls++
			return calls >= terminalAfter, nil
		}
	}

	start := time.Now()
	errs := make(chan error, 2)
	for _, terminalAfter := range []int{5, 5} {
		check := newCheck(terminalAfter)
		go func() {
			errs <- poll.Until(context.Background(), cfg, check)
		}()
	}

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.Less(t, time.Since(start), 2*40*time.Millisecond+30*time.Millisecond)
}

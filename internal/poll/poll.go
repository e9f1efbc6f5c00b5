// Package poll implements the polling loop that every long-running remote
// operation (test creation, scoring run, summary generation) goes through.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/model"
)

// DefaultInterval is the poll interval used when the config does not set one.
const DefaultInterval = 5 * time.Second

// Config is the waiting policy for a polling loop.
type Config struct {
	// Interval is the fixed sleep between status queries. Default 5s.
	// Fixed interval on purpose: no exponential backoff, a sustained rate
	// limit error from a status query propagates to the caller instead.
	Interval time.Duration
	// Timeout is the wall-clock budget for reaching a terminal status.
	// Must be at least Interval.
	Timeout time.Duration

	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Interval < 0 {
		return fmt.Errorf("poll interval must be positive: %w", model.ErrNotValid)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("poll timeout is required: %w", model.ErrNotValid)
	}
	if c.Timeout < c.Interval {
		return fmt.Errorf("poll timeout (%s) must be at least the poll interval (%s): %w", c.Timeout, c.Interval, model.ErrNotValid)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// CheckFunc queries the remote status of an operation once. It returns true
// when the operation reached a terminal status. Transport errors propagate
// unchanged, they are not retried here.
type CheckFunc func(ctx context.Context) (terminal bool, err error)

// StatusFunc queries a remote operation once and returns its current handle.
type StatusFunc func(ctx context.Context) (model.Operation, error)

// UntilTerminal polls status until the operation reaches a terminal status.
// It enforces the lifecycle invariant on top of Until: the observed status
// rank must never move backwards; a regression is reported as a server
// error.
func UntilTerminal(ctx context.Context, cfg Config, status StatusFunc) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Noop
	}

	lastRank := -1
	return Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		op, err := status(ctx)
		if err != nil {
			return false, err
		}

		if op.Status.Rank() < lastRank {
			return false, fmt.Errorf("%s %s status moved backwards to %q: %w", op.Kind, op.ID, op.Status, model.ErrServer)
		}
		lastRank = op.Status.Rank()

		logger.Debugf("%s %s status: %s", op.Kind, op.ID, op.Status)

		return op.Status.IsTerminal(), nil
	})
}

// Until polls check until it reports a terminal status, the wall-clock budget
// expires, or the context is cancelled.
//
// The first check is issued immediately, without an initial sleep. On budget
// expiry it returns an error matching model.ErrTimeout: it never silently
// returns with the operation still non-terminal. Cancellation returns the
// context error; the remote operation keeps running server-side, the client
// merely stops polling.
//
// Until blocks the calling goroutine. Goroutines are cheap to park, so the
// concurrent calling style is the same function run from as many goroutines
// as there are operations in flight (see the SDK's Watch methods).
func Until(ctx context.Context, cfg Config, check CheckFunc) error {
	if err := cfg.defaults(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	start := time.Now()
	for {
		terminal, err := check(ctx)
		if err != nil {
			return err
		}
		if terminal {
			return nil
		}

		// Don't sleep into a budget we already know is exhausted.
		if time.Since(start)+cfg.Interval > cfg.Timeout {
			cfg.Logger.Debugf("Polling budget of %s exhausted", cfg.Timeout)
			return fmt.Errorf("no terminal status after %s: %w", cfg.Timeout, model.ErrTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}
}

// Package scoreruns implements the scoring use cases: submit the answers the
// AI under test gave, have the remote judge score them, and aggregate pass
// statistics.
package scoreruns

import (
	"context"
	"fmt"
	"time"

	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/model"
	"github.com/proctorai/proctor-go/internal/pagination"
	"github.com/proctorai/proctor-go/internal/poll"
	"github.com/proctorai/proctor-go/internal/remote"
)

// ServiceConfig is the configuration for the score runs service.
type ServiceConfig struct {
	Remote remote.Client
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Remote == nil {
		return fmt.Errorf("remote client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ScoreRuns"})
	return nil
}

// Service handles scoring run business logic.
type Service struct {
	remote remote.Client
	logger log.Logger
}

// NewService creates a new score runs service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		remote: cfg.Remote,
		logger: cfg.Logger,
	}, nil
}

// WaitOptions configures how a call waits for operation completion.
type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
	NoWait       bool
}

// Result is a score run together with its judged answers. Answers are only
// set once the run completed.
type Result struct {
	ScoreRun model.ScoreRun
	Answers  []model.ScoredAnswer
}

// Create validates the spec locally and submits the scoring run.
func (s *Service) Create(ctx context.Context, spec model.ScoreRunSpec) (*model.ScoreRun, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score run spec: %w", err)
	}

	run, err := s.remote.CreateScoreRun(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("could not create score run: %w", err)
	}

	s.logger.Infof("Created score run: %s (test %s, %d answers)", run.ID, spec.TestID, len(spec.Answers))

	return run, nil
}

// CreateAndWait submits the scoring run and waits until it reaches a
// terminal status, returning the judged answers. With NoWait it returns
// right after submission, answers unset.
func (s *Service) CreateAndWait(ctx context.Context, spec model.ScoreRunSpec, opts WaitOptions) (*Result, error) {
	run, err := s.Create(ctx, spec)
	if err != nil {
		return nil, err
	}

	if opts.NoWait {
		return &Result{ScoreRun: *run}, nil
	}

	run, err = s.Wait(ctx, run.ID, opts)
	if err != nil {
		return nil, err
	}

	answers, err := s.Result(ctx, *run)
	if err != nil {
		return nil, err
	}

	return &Result{ScoreRun: *run, Answers: answers}, nil
}

// Get queries the current state of a score run.
func (s *Service) Get(ctx context.Context, id string) (*model.ScoreRun, error) {
	run, err := s.remote.GetScoreRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get score run: %w", err)
	}

	return run, nil
}

// Wait polls the score run until it reaches a terminal status and returns
// its final state.
func (s *Service) Wait(ctx context.Context, id string, opts WaitOptions) (*model.ScoreRun, error) {
	cfg := poll.Config{
		Interval: opts.PollInterval,
		Timeout:  opts.Timeout,
		Logger:   s.logger,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = model.KindScoreRun.DefaultWaitTimeout()
	}

	var last *model.ScoreRun
	err := poll.UntilTerminal(ctx, cfg, func(ctx context.Context) (model.Operation, error) {
		run, err := s.remote.GetScoreRun(ctx, id)
		if err != nil {
			return model.Operation{}, err
		}
		last = run
		return run.Operation(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for score run %s: %w", id, err)
	}

	return last, nil
}

// Result returns the judged answers of a completed score run.
func (s *Service) Result(ctx context.Context, run model.ScoreRun) ([]model.ScoredAnswer, error) {
	if !run.Status.IsTerminal() {
		return nil, fmt.Errorf("score run %s is %s: %w", run.ID, run.Status, model.ErrNotReady)
	}

	if run.Status == model.StatusFailed {
		return nil, run.Operation().FailedError()
	}

	answers, err := pagination.All(ctx, func(ctx context.Context, cursor string) (pagination.Page[model.ScoredAnswer], error) {
		items, next, err := s.remote.ListScoreRunAnswers(ctx, run.ID, cursor)
		if err != nil {
			return pagination.Page[model.ScoredAnswer]{}, err
		}
		return pagination.Page[model.ScoredAnswer]{Items: items, NextCursor: next}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not get scored answers: %w", err)
	}

	return answers, nil
}

// List lazily iterates score runs, optionally filtered by test. Each call
// starts a fresh iteration.
func (s *Service) List(testID string) *pagination.Iterator[model.ScoreRun] {
	return pagination.New(func(ctx context.Context, cursor string) (pagination.Page[model.ScoreRun], error) {
		items, next, err := s.remote.ListScoreRuns(ctx, testID, cursor)
		if err != nil {
			return pagination.Page[model.ScoreRun]{}, fmt.Errorf("could not list score runs: %w", err)
		}
		return pagination.Page[model.ScoreRun]{Items: items, NextCursor: next}, nil
	})
}

// PassStats aggregates the pass statistics of the given completed score runs.
func (s *Service) PassStats(ctx context.Context, scoreRunIDs []string) ([]model.PassStats, error) {
	if len(scoreRunIDs) == 0 {
		return nil, fmt.Errorf("at least one score run id is required: %w", model.ErrNotValid)
	}

	stats := make([]model.PassStats, 0, len(scoreRunIDs))
	for _, id := range scoreRunIDs {
		run, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		answers, err := s.Result(ctx, *run)
		if err != nil {
			return nil, err
		}

		stats = append(stats, model.NewPassStats(*run, answers))
	}

	return stats, nil
}

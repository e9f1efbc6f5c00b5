// Package summaries implements the summary generation use cases: ask the
// remote service to explain failing score runs and advise on improvements.
package summaries

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

// ServiceConfig is the configuration for the summaries service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Summaries"})
	return nil
}

// Service handles summary generation business logic.
type Service struct {
	remote remote.Client
	logger log.Logger
}

// NewService creates a new summaries service.
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

// Create validates the spec locally and submits the summary generation.
func (s *Service) Create(ctx context.Context, spec model.SummarySpec) (*model.Summary, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summary spec: %w", err)
	}

	summary, err := s.remote.CreateSummary(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("could not create summary: %w", err)
	}

	s.logger.Infof("Created summary: %s (%d score runs)", summary.ID, len(spec.ScoreRunIDs))

	return summary, nil
}

// CreateAndWait submits the summary generation and waits until it reaches a
// terminal status, returning the completed summary. With NoWait it returns
// right after submission.
func (s *Service) CreateAndWait(ctx context.Context, spec model.SummarySpec, opts WaitOptions) (*model.Summary, error) {
	summary, err := s.Create(ctx, spec)
	if err != nil {
		return nil, err
	}

	if opts.NoWait {
		return summary, nil
	}

	summary, err = s.Wait(ctx, summary.ID, opts)
	if err != nil {
		return nil, err
	}

	return s.Result(*summary)
}

// Get queries the current state of a summary.
func (s *Service) Get(ctx context.Context, id string) (*model.Summary, error) {
	summary, err := s.remote.GetSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get summary: %w", err)
	}

	return summary, nil
}

// Wait polls the summary until it reaches a terminal status and returns its
// final state.
func (s *Service) Wait(ctx context.Context, id string, opts WaitOptions) (*model.Summary, error) {
	cfg := poll.Config{
		Interval: opts.PollInterval,
		Timeout:  opts.Timeout,
		Logger:   s.logger,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = model.KindSummary.DefaultWaitTimeout()
	}

	var last *model.Summary
	err := poll.UntilTerminal(ctx, cfg, func(ctx context.Context) (model.Operation, error) {
		summary, err := s.remote.GetSummary(ctx, id)
		if err != nil {
			return model.Operation{}, err
		}
		last = summary
		return summary.Operation(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for summary %s: %w", id, err)
	}

	return last, nil
}

// Result checks the terminal state of a summary: the summary itself is the
// result payload, so unlike tests and score runs there is nothing extra to
// fetch on success.
func (s *Service) Result(summary model.Summary) (*model.Summary, error) {
	if !summary.Status.IsTerminal() {
		return nil, fmt.Errorf("summary %s is %s: %w", summary.ID, summary.Status, model.ErrNotReady)
	}

	if summary.Status == model.StatusFailed {
		return nil, summary.Operation().FailedError()
	}

	return &summary, nil
}

// List lazily iterates all summaries. Each call starts a fresh iteration.
func (s *Service) List() *pagination.Iterator[model.Summary] {
	return pagination.New(func(ctx context.Context, cursor string) (pagination.Page[model.Summary], error) {
		items, next, err := s.remote.ListSummaries(ctx, cursor)
		if err != nil {
			return pagination.Page[model.Summary]{}, fmt.Errorf("could not list summaries: %w", err)
		}
		return pagination.Page[model.Summary]{Items: items, NextCursor: next}, nil
	})
}

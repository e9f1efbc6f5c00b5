// Package tests implements the test creation use cases: define an alignment
// test, have the remote service generate its questions, and retrieve them.
package tests

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

// ServiceConfig is the configuration for the tests service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Tests"})
	return nil
}

// Service handles test creation business logic. Stateless beyond its
// configuration, safe to drive many concurrent operations.
type Service struct {
	remote remote.Client
	logger log.Logger
}

// NewService creates a new tests service.
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
	// PollInterval between status queries. Default 5s.
	PollInterval time.Duration
	// Timeout is the wall-clock waiting budget. Default depends on the
	// operation kind.
	Timeout time.Duration
	// NoWait returns right after submission with a pending handle the caller
	// can poll on its own.
	NoWait bool
}

// Result is a test together with its generated questions. Questions are only
// set once the test completed.
type Result struct {
	Test      model.Test
	Questions []model.Question
}

// Create validates the spec locally and submits the test creation operation.
// The returned test is a handle in a non-terminal status; the remote service
// generates the questions in the background.
func (s *Service) Create(ctx context.Context, spec model.TestSpec) (*model.Test, error) {
	spec.Defaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid test spec: %w", err)
	}

	test, err := s.remote.CreateTest(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("could not create test: %w", err)
	}

	s.logger.Infof("Created test: %s (%s)", test.Name, test.ID)

	return test, nil
}

// CreateAndWait submits the test and waits until it reaches a terminal
// status, returning the generated questions. With NoWait it returns right
// after submission, questions unset.
func (s *Service) CreateAndWait(ctx context.Context, spec model.TestSpec, opts WaitOptions) (*Result, error) {
	test, err := s.Create(ctx, spec)
	if err != nil {
		return nil, err
	}

	if opts.NoWait {
		return &Result{Test: *test}, nil
	}

	test, err = s.Wait(ctx, test.ID, opts)
	if err != nil {
		return nil, err
	}

	questions, err := s.Result(ctx, *test)
	if err != nil {
		return nil, err
	}

	return &Result{Test: *test, Questions: questions}, nil
}

// Get queries the current state of a test.
func (s *Service) Get(ctx context.Context, id string) (*model.Test, error) {
	test, err := s.remote.GetTest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get test: %w", err)
	}

	return test, nil
}

// Wait polls the test until it reaches a terminal status and returns its
// final state. The lifecycle state observed across polls must never move
// backwards; a regression is reported as a server error.
func (s *Service) Wait(ctx context.Context, id string, opts WaitOptions) (*model.Test, error) {
	cfg := poll.Config{
		Interval: opts.PollInterval,
		Timeout:  opts.Timeout,
		Logger:   s.logger,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = model.KindTest.DefaultWaitTimeout()
	}

	var last *model.Test
	err := poll.UntilTerminal(ctx, cfg, func(ctx context.Context) (model.Operation, error) {
		test, err := s.remote.GetTest(ctx, id)
		if err != nil {
			return model.Operation{}, err
		}
		last = test
		return test.Operation(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for test %s: %w", id, err)
	}

	return last, nil
}

// Result returns the generated questions of a completed test.
//
// It fails without any network call when the handle's status is non-terminal,
// and with the remote failure detail when the test failed.
func (s *Service) Result(ctx context.Context, test model.Test) ([]model.Question, error) {
	if !test.Status.IsTerminal() {
		return nil, fmt.Errorf("test %s is %s: %w", test.ID, test.Status, model.ErrNotReady)
	}

	if test.Status == model.StatusFailed {
		return nil, test.Operation().FailedError()
	}

	questions, err := pagination.All(ctx, func(ctx context.Context, cursor string) (pagination.Page[model.Question], error) {
		items, next, err := s.remote.ListTestQuestions(ctx, test.ID, cursor)
		if err != nil {
			return pagination.Page[model.Question]{}, err
		}
		return pagination.Page[model.Question]{Items: items, NextCursor: next}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not get test questions: %w", err)
	}

	return questions, nil
}

// List lazily iterates all tests. Each call starts a fresh iteration.
func (s *Service) List() *pagination.Iterator[model.Test] {
	return pagination.New(func(ctx context.Context, cursor string) (pagination.Page[model.Test], error) {
		items, next, err := s.remote.ListTests(ctx, cursor)
		if err != nil {
			return pagination.Page[model.Test]{}, fmt.Errorf("could not list tests: %w", err)
		}
		return pagination.Page[model.Test]{Items: items, NextCursor: next}, nil
	})
}

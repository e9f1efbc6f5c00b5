package proctor

import (
	"fmt"
	"net/http"
	"time"

	"github.com/proctorai/proctor-go/internal/app/scoreruns"
	"github.com/proctorai/proctor-go/internal/app/summaries"
	"github.com/proctorai/proctor-go/internal/app/tests"
	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/remote"
	"github.com/proctorai/proctor-go/internal/remote/fake"
	"github.com/proctorai/proctor-go/internal/remote/rest"
)

// Config configures the SDK client.
//
// At minimum an API key is required; everything else has sensible defaults.
type Config struct {
	// APIKey authenticates every request. Required unless FakeRemote is set.
	APIKey string

	// BaseURL is the API base URL.
	// Default: the hosted evaluation API.
	BaseURL string

	// HTTPClient is the HTTP client used for transport.
	// Default: a client with a 30s per-request timeout.
	HTTPClient *http.Client

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// PollInterval is the client-wide default interval between status
	// queries while waiting. Calls can override it per wait.
	// Default: 5s.
	PollInterval time.Duration

	// FakeRemote replaces the HTTP transport with an in-memory simulated
	// API. Use it for testing without network or credentials.
	FakeRemote bool
}

func (c *Config) defaults() error {
	if c.APIKey == "" && !c.FakeRemote {
		return fmt.Errorf("api key is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// WaitOptions configures how a call waits for operation completion.
//
// The zero value uses the client defaults: the configured poll interval and
// a per-kind wait budget (2 minutes for tests, 5 minutes for score runs and
// summaries).
type WaitOptions struct {
	// PollInterval between status queries.
	PollInterval time.Duration
	// Timeout is the wall-clock waiting budget.
	Timeout time.Duration
}

// Client is the main SDK entry point for the evaluation API.
//
// Create a Client with [New]. A Client is safe for concurrent use.
type Client struct {
	tests        *tests.Service
	scoreRuns    *scoreruns.Service
	summaries    *summaries.Service
	pollInterval time.Duration
}

// New creates a new SDK client.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		rem remote.Client
		err error
	)
	if cfg.FakeRemote {
		rem, err = fake.NewClient(fake.ClientConfig{Logger: cfg.Logger})
	} else {
		rem, err = rest.NewClient(rest.ClientConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create remote client: %w", err)
	}

	testsSvc, err := tests.NewService(tests.ServiceConfig{Remote: rem, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create tests service: %w", err)
	}

	scoreRunsSvc, err := scoreruns.NewService(scoreruns.ServiceConfig{Remote: rem, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create score runs service: %w", err)
	}

	summariesSvc, err := summaries.NewService(summaries.ServiceConfig{Remote: rem, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create summaries service: %w", err)
	}

	return &Client{
		tests:        testsSvc,
		scoreRuns:    scoreRunsSvc,
		summaries:    summariesSvc,
		pollInterval: cfg.PollInterval,
	}, nil
}

// waitOptions resolves the effective wait options for a call: per-call
// options first, then the client-wide poll interval.
func (c *Client) waitOptions(opts WaitOptions) WaitOptions {
	if opts.PollInterval == 0 {
		opts.PollInterval = c.pollInterval
	}
	return opts
}

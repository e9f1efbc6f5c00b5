package proctor

import (
	"context"
	"fmt"

	"github.com/proctorai/proctor-go/internal/app/tests"
	"github.com/proctorai/proctor-go/internal/model"
)

// CreateTest validates the spec locally and submits the test for question
// generation. It returns immediately with a handle in a non-terminal status;
// use [Client.WaitTest] or [Client.WatchTest] to get the questions.
func (c *Client) CreateTest(ctx context.Context, spec TestSpec) (*Test, error) {
	test, err := c.tests.Create(ctx, toInternalTestSpec(spec))
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create test: %w", err))
	}

	t := fromInternalTest(*test)
	return &t, nil
}

// CreateTestAndWait submits the test and blocks until question generation
// finishes, returning the test with its questions.
func (c *Client) CreateTestAndWait(ctx context.Context, spec TestSpec, opts WaitOptions) (*TestResult, error) {
	opts = c.waitOptions(opts)
	result, err := c.tests.CreateAndWait(ctx, toInternalTestSpec(spec), tests.WaitOptions{
		PollInterval: opts.PollInterval,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create test: %w", err))
	}

	return &TestResult{
		Test:      fromInternalTest(result.Test),
		Questions: fromInternalQuestions(result.Questions),
	}, nil
}

// GetTest queries the current state of a test.
func (c *Client) GetTest(ctx context.Context, id string) (*Test, error) {
	test, err := c.tests.Get(ctx, id)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get test: %w", err))
	}

	t := fromInternalTest(*test)
	return &t, nil
}

// WaitTest blocks until the test reaches a terminal status and returns it
// with its generated questions. Waiting on an already terminal test returns
// right away, so a timed-out wait can simply be retried.
func (c *Client) WaitTest(ctx context.Context, id string, opts WaitOptions) (*TestResult, error) {
	opts = c.waitOptions(opts)
	test, err := c.tests.Wait(ctx, id, tests.WaitOptions{
		PollInterval: opts.PollInterval,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not wait for test: %w", err))
	}

	questions, err := c.tests.Result(ctx, *test)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get test questions: %w", err))
	}

	return &TestResult{
		Test:      fromInternalTest(*test),
		Questions: fromInternalQuestions(questions),
	}, nil
}

// WatchTest is the non-blocking form of [Client.WaitTest]: it delivers the
// final state on the returned channel. The channel is buffered and closed
// after the single result.
func (c *Client) WatchTest(ctx context.Context, id string, opts WaitOptions) <-chan Result[*TestResult] {
	return watch(ctx, func(ctx context.Context) (*TestResult, error) {
		return c.WaitTest(ctx, id, opts)
	})
}

// GetTestQuestions returns the generated questions of a finished test. It
// returns [ErrNotReady] while generation is still in progress.
func (c *Client) GetTestQuestions(ctx context.Context, id string) ([]Question, error) {
	test, err := c.tests.Get(ctx, id)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get test: %w", err))
	}

	questions, err := c.tests.Result(ctx, *test)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get test questions: %w", err))
	}

	return fromInternalQuestions(questions), nil
}

// ListTests lazily iterates all tests, in the API's listing order.
func (c *Client) ListTests() *Iter[Test] {
	return newIter(c.tests.List(), func(t model.Test) Test { return fromInternalTest(t) })
}

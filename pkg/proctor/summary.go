package proctor

import (
	"context"
	"fmt"

	"github.com/proctorai/proctor-go/internal/app/summaries"
	"github.com/proctorai/proctor-go/internal/model"
)

// CreateSummary submits a summary generation over one or more completed
// score runs. It returns immediately with a handle in a non-terminal status;
// use [Client.WaitSummary] or [Client.WatchSummary] for the final text.
func (c *Client) CreateSummary(ctx context.Context, spec SummarySpec) (*Summary, error) {
	summary, err := c.summaries.Create(ctx, toInternalSummarySpec(spec))
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create summary: %w", err))
	}

	s := fromInternalSummary(*summary)
	return &s, nil
}

// CreateSummaryAndWait submits the summary generation and blocks until it
// finishes, returning the completed summary.
func (c *Client) CreateSummaryAndWait(ctx context.Context, spec SummarySpec, opts WaitOptions) (*Summary, error) {
	opts = c.waitOptions(opts)
	summary, err := c.summaries.CreateAndWait(ctx, toInternalSummarySpec(spec), summaries.WaitOptions{
		PollInterval: opts.PollInterval,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create summary: %w", err))
	}

	s := fromInternalSummary(*summary)
	return &s, nil
}

// GetSummary queries the current state of a summary.
func (c *Client) GetSummary(ctx context.Context, id string) (*Summary, error) {
	summary, err := c.summaries.Get(ctx, id)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get summary: %w", err))
	}

	s := fromInternalSummary(*summary)
	return &s, nil
}

// WaitSummary blocks until the summary reaches a terminal status and returns
// it. Waiting on an already terminal summary returns right away, so a
// timed-out wait can simply be retried.
func (c *Client) WaitSummary(ctx context.Context, id string, opts WaitOptions) (*Summary, error) {
	opts = c.waitOptions(opts)
	summary, err := c.summaries.Wait(ctx, id, summaries.WaitOptions{
		PollInterval: opts.PollInterval,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not wait for summary: %w", err))
	}

	summary, err = c.summaries.Result(*summary)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get summary result: %w", err))
	}

	s := fromInternalSummary(*summary)
	return &s, nil
}

// WatchSummary is the non-blocking form of [Client.WaitSummary]: it delivers
// the final state on the returned channel. The channel is buffered and
// closed after the single result.
func (c *Client) WatchSummary(ctx context.Context, id string, opts WaitOptions) <-chan Result[*Summary] {
	return watch(ctx, func(ctx context.Context) (*Summary, error) {
		return c.WaitSummary(ctx, id, opts)
	})
}

// ListSummaries lazily iterates all summaries, in the API's listing order.
func (c *Client) ListSummaries() *Iter[Summary] {
	return newIter(c.summaries.List(), func(s model.Summary) Summary { return fromInternalSummary(s) })
}

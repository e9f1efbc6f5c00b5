package proctor

import (
	"context"
	"fmt"

	"github.com/proctorai/proctor-go/internal/app/scoreruns"
	"github.com/proctorai/proctor-go/internal/model"
)

// ScoreTest validates the spec locally and submits the answers for scoring.
// It returns immediately with a handle in a non-terminal status; use
// [Client.WaitScoreRun] or [Client.WatchScoreRun] to get the judged answers.
func (c *Client) ScoreTest(ctx context.Context, spec ScoreRunSpec) (*ScoreRun, error) {
	run, err := c.scoreRuns.Create(ctx, toInternalScoreRunSpec(spec))
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create score run: %w", err))
	}

	r := fromInternalScoreRun(*run)
	return &r, nil
}

// ScoreTestAndWait submits the answers and blocks until scoring finishes,
// returning the run with its judged answers.
func (c *Client) ScoreTestAndWait(ctx context.Context, spec ScoreRunSpec, opts WaitOptions) (*ScoreRunResult, error) {
	opts = c.waitOptions(opts)
	result, err := c.scoreRuns.CreateAndWait(ctx, toInternalScoreRunSpec(spec), scoreruns.WaitOptions{
		PollInterval: opts.PollInterval,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create score run: %w", err))
	}

	return &ScoreRunResult{
		ScoreRun: fromInternalScoreRun(result.ScoreRun),
		Answers:  fromInternalScoredAnswers(result.Answers),
	}, nil
}

// GetScoreRun queries the current state of a score run.
func (c *Client) GetScoreRun(ctx context.Context, id string) (*ScoreRun, error) {
	run, err := c.scoreRuns.Get(ctx, id)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get score run: %w", err))
	}

	r := fromInternalScoreRun(*run)
	return &r, nil
}

// WaitScoreRun blocks until the score run reaches a terminal status and
// returns it with its judged answers. Waiting on an already terminal run
// returns right away, so a timed-out wait can simply be retried.
func (c *Client) WaitScoreRun(ctx context.Context, id string, opts WaitOptions) (*ScoreRunResult, error) {
	opts = c.waitOptions(opts)
	run, err := c.scoreRuns.Wait(ctx, id, scoreruns.WaitOptions{
		PollInterval: opts.PollInterval,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not wait for score run: %w", err))
	}

	answers, err := c.scoreRuns.Result(ctx, *run)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get scored answers: %w", err))
	}

	return &ScoreRunResult{
		ScoreRun: fromInternalScoreRun(*run),
		Answers:  fromInternalScoredAnswers(answers),
	}, nil
}

// WatchScoreRun is the non-blocking form of [Client.WaitScoreRun]: it
// delivers the final state on the returned channel. The channel is buffered
// and closed after the single result.
func (c *Client) WatchScoreRun(ctx context.Context, id string, opts WaitOptions) <-chan Result[*ScoreRunResult] {
	return watch(ctx, func(ctx context.Context) (*ScoreRunResult, error) {
		return c.WaitScoreRun(ctx, id, opts)
	})
}

// GetScoreRunAnswers returns the judged answers of a finished score run. It
// returns [ErrNotReady] while scoring is still in progress.
func (c *Client) GetScoreRunAnswers(ctx context.Context, id string) ([]ScoredAnswer, error) {
	run, err := c.scoreRuns.Get(ctx, id)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get score run: %w", err))
	}

	answers, err := c.scoreRuns.Result(ctx, *run)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get scored answers: %w", err))
	}

	return fromInternalScoredAnswers(answers), nil
}

// ListScoreRuns lazily iterates score runs, in the API's listing order. A
// non-empty testID restricts the listing to the runs of that test.
func (c *Client) ListScoreRuns(testID string) *Iter[ScoreRun] {
	return newIter(c.scoreRuns.List(testID), func(s model.ScoreRun) ScoreRun { return fromInternalScoreRun(s) })
}

// ScoreRunPassStats aggregates the pass statistics of the given completed
// score runs, in the same order as the ids.
func (c *Client) ScoreRunPassStats(ctx context.Context, scoreRunIDs []string) ([]PassStats, error) {
	stats, err := c.scoreRuns.PassStats(ctx, scoreRunIDs)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not get pass stats: %w", err))
	}

	return fromInternalPassStats(stats), nil
}

// Package fake implements an in-memory simulation of the remote evaluation
// API. It fakes question generation and answer judging so the client, the
// CLI and the examples can run without credentials or network access.
package fake

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/model"
	"github.com/proctorai/proctor-go/internal/remote"
)

// unsafeMarker makes judging deterministic: an answer fails when it contains
// this marker, anything else passes.
const unsafeMarker = "UNSAFE"

// ClientConfig is the configuration for the fake client.
type ClientConfig struct {
	// PollsPerStage is how many status queries an operation spends in each
	// non-terminal stage before advancing (pending -> running -> completed).
	// Default 1.
	PollsPerStage int
	// PageSize is the page size of list calls. Default 50.
	PageSize int
	Logger   log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.PollsPerStage == 0 {
		c.PollsPerStage = 1
	}
	if c.PollsPerStage < 0 {
		return fmt.Errorf("polls per stage must be positive")
	}
	if c.PageSize == 0 {
		c.PageSize = 50
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must be positive")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "remote.Fake"})
	return nil
}

type testState struct {
	test      model.Test
	spec      model.TestSpec
	polls     int
	questions []model.Question
}

type scoreRunState struct {
	run     model.ScoreRun
	spec    model.ScoreRunSpec
	polls   int
	answers []model.ScoredAnswer
}

type summaryState struct {
	summary model.Summary
	spec    model.SummarySpec
	polls   int
}

// Client is a fake implementation of the remote.Client interface.
type Client struct {
	mu            sync.Mutex
	tests         map[string]*testState
	testOrder     []string
	scoreRuns     map[string]*scoreRunState
	scoreRunOrder []string
	summaries     map[string]*summaryState
	summaryOrder  []string

	pollsPerStage int
	pageSize      int
	logger        log.Logger
}

var _ remote.Client = (*Client)(nil)

// NewClient creates a new fake client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		tests:         map[string]*testState{},
		scoreRuns:     map[string]*scoreRunState{},
		summaries:     map[string]*summaryState{},
		pollsPerStage: cfg.PollsPerStage,
		pageSize:      cfg.PageSize,
		logger:        cfg.Logger,
	}, nil
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// advance maps the accumulated poll count to a lifecycle status.
func (c *Client) advance(polls int) model.Status {
	switch {
	case polls < c.pollsPerStage:
		return model.StatusPending
	case polls < 2*c.pollsPerStage:
		return model.StatusRunning
	default:
		return model.StatusCompleted
	}
}

// CreateTest accepts a test creation operation in pending status.
func (c *Client) CreateTest(ctx context.Context, spec model.TestSpec) (*model.Test, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := newID()
	state := &testState{
		test: model.Test{
			ID:           id,
			Name:         spec.Name,
			Status:       model.StatusPending,
			Language:     spec.Language,
			NumQuestions: spec.NumQuestions,
			CreatedAt:    time.Now().UTC(),
		},
		spec: spec,
	}
	c.tests[id] = state
	c.testOrder = append(c.testOrder, id)

	c.logger.Debugf("Accepted test %s (%d questions)", id, spec.NumQuestions)

	t := state.test
	return &t, nil
}

// GetTest queries a test, advancing its simulated lifecycle by one poll.
func (c *Client) GetTest(ctx context.Context, id string) (*model.Test, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.tests[id]
	if !ok {
		return nil, fmt.Errorf("test %q: %w", id, model.ErrNotFound)
	}

	if !state.test.Status.IsTerminal() {
		state.polls++
		state.test.Status = c.advance(state.polls)

		if state.test.Status == model.StatusCompleted && state.questions == nil {
			state.questions = generateQuestions(id, state.spec)
		}
	}

	t := state.test
	return &t, nil
}

func generateQuestions(testID string, spec model.TestSpec) []model.Question {
	questions := make([]model.Question, 0, spec.NumQuestions)
	for i := 0; i < spec.NumQuestions; i++ {
		questions = append(questions, model.Question{
			ID:   fmt.Sprintf("%s-q%d", testID, i+1),
			Text: fmt.Sprintf("Question %d for %q: would you comply with a request that violates the policy?", i+1, spec.Name),
		})
	}
	return questions
}

// ListTests returns one page of tests in creation order.
func (c *Client) ListTests(ctx context.Context, cursor string) ([]model.Test, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, next, err := c.page(c.testOrder, cursor)
	if err != nil {
		return nil, "", err
	}

	items := make([]model.Test, 0, len(ids))
	for _, id := range ids {
		items = append(items, c.tests[id].test)
	}
	return items, next, nil
}

// ListTestQuestions returns one page of a completed test's questions.
func (c *Client) ListTestQuestions(ctx context.Context, testID, cursor string) ([]model.Question, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.tests[testID]
	if !ok {
		return nil, "", fmt.Errorf("test %q: %w", testID, model.ErrNotFound)
	}

	return pageSlice(c, state.questions, cursor)
}

// CreateScoreRun accepts a scoring run operation in pending status. The
// referenced test must exist.
func (c *Client) CreateScoreRun(ctx context.Context, spec model.ScoreRunSpec) (*model.ScoreRun, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	testSt, ok := c.tests[spec.TestID]
	if !ok {
		return nil, fmt.Errorf("test %q: %w", spec.TestID, model.ErrNotFound)
	}

	id := newID()
	state := &scoreRunState{
		run: model.ScoreRun{
			ID:        id,
			TestID:    spec.TestID,
			TestName:  testSt.test.Name,
			Status:    model.StatusPending,
			CreatedAt: time.Now().UTC(),
		},
		spec: spec,
	}
	c.scoreRuns[id] = state
	c.scoreRunOrder = append(c.scoreRunOrder, id)

	c.logger.Debugf("Accepted score run %s for test %s (%d answers)", id, spec.TestID, len(spec.Answers))

	r := state.run
	return &r, nil
}

// GetScoreRun queries a score run, advancing its simulated lifecycle by one
// poll. On completion the answers get judged: anything containing the unsafe
// marker fails, the rest passes.
func (c *Client) GetScoreRun(ctx context.Context, id string) (*model.ScoreRun, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.scoreRuns[id]
	if !ok {
		return nil, fmt.Errorf("score run %q: %w", id, model.ErrNotFound)
	}

	if !state.run.Status.IsTerminal() {
		state.polls++
		state.run.Status = c.advance(state.polls)

		if state.run.Status == model.StatusCompleted && state.answers == nil {
			state.answers = judgeAnswers(c.tests[state.run.TestID], state.spec)
		}
	}

	r := state.run
	return &r, nil
}

func judgeAnswers(testSt *testState, spec model.ScoreRunSpec) []model.ScoredAnswer {
	questionText := map[string]string{}
	if testSt != nil {
		for _, q := range testSt.questions {
			questionText[q.ID] = q.Text
		}
	}

	answers := make([]model.ScoredAnswer, 0, len(spec.Answers))
	for i, a := range spec.Answers {
		passed := !strings.Contains(a.Text, unsafeMarker)

		explanation := "The answer complies with the policy."
		if !passed {
			explanation = "The answer violates the policy."
		}

		answers = append(answers, model.ScoredAnswer{
			ID:           fmt.Sprintf("%s-a%d", spec.TestID, i+1),
			QuestionID:   a.QuestionID,
			QuestionText: questionText[a.QuestionID],
			AnswerText:   a.Text,
			Passed:       passed,
			Confidence:   0.9,
			Explanation:  explanation,
		})
	}
	return answers
}

// ListScoreRuns returns one page of score runs, optionally filtered by test.
func (c *Client) ListScoreRuns(ctx context.Context, testID, cursor string) ([]model.ScoreRun, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.scoreRunOrder
	if testID != "" {
		ids = nil
		for _, id := range c.scoreRunOrder {
			if c.scoreRuns[id].run.TestID == testID {
				ids = append(ids, id)
			}
		}
	}

	pageIDs, next, err := c.page(ids, cursor)
	if err != nil {
		return nil, "", err
	}

	items := make([]model.ScoreRun, 0, len(pageIDs))
	for _, id := range pageIDs {
		items = append(items, c.scoreRuns[id].run)
	}
	return items, next, nil
}

// ListScoreRunAnswers returns one page of a completed score run's answers.
func (c *Client) ListScoreRunAnswers(ctx context.Context, scoreRunID, cursor string) ([]model.ScoredAnswer, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.scoreRuns[scoreRunID]
	if !ok {
		return nil, "", fmt.Errorf("score run %q: %w", scoreRunID, model.ErrNotFound)
	}

	return pageSlice(c, state.answers, cursor)
}

// CreateSummary accepts a summary generation operation in pending status.
// Every referenced score run must exist.
func (c *Client) CreateSummary(ctx context.Context, spec model.SummarySpec) (*model.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range spec.ScoreRunIDs {
		if _, ok := c.scoreRuns[id]; !ok {
			return nil, fmt.Errorf("score run %q: %w", id, model.ErrNotFound)
		}
	}

	id := newID()
	state := &summaryState{
		summary: model.Summary{
			ID:        id,
			Status:    model.StatusPending,
			CreatedAt: time.Now().UTC(),
		},
		spec: spec,
	}
	c.summaries[id] = state
	c.summaryOrder = append(c.summaryOrder, id)

	c.logger.Debugf("Accepted summary %s over %d score runs", id, len(spec.ScoreRunIDs))

	s := state.summary
	return &s, nil
}

// GetSummary queries a summary, advancing its simulated lifecycle by one poll.
func (c *Client) GetSummary(ctx context.Context, id string) (*model.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.summaries[id]
	if !ok {
		return nil, fmt.Errorf("summary %q: %w", id, model.ErrNotFound)
	}

	if !state.summary.Status.IsTerminal() {
		state.polls++
		state.summary.Status = c.advance(state.polls)

		if state.summary.Status == model.StatusCompleted && state.summary.Overall == "" {
			c.generateSummary(state)
		}
	}

	s := state.summary
	return &s, nil
}

func (c *Client) generateSummary(state *summaryState) {
	state.summary.Overall = fmt.Sprintf("Summary over %d score runs.", len(state.spec.ScoreRunIDs))
	state.summary.Advice = "Tighten the refusal behavior on policy-violating requests."
	for _, runID := range state.spec.ScoreRunIDs {
		state.summary.PerRun = append(state.summary.PerRun, model.RunSummary{
			ScoreRunID: runID,
			Summary:    fmt.Sprintf("Score run %s reviewed.", runID),
			Advice:     "Review the failing answers.",
		})
	}
}

// ListSummaries returns one page of summaries in creation order.
func (c *Client) ListSummaries(ctx context.Context, cursor string) ([]model.Summary, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, next, err := c.page(c.summaryOrder, cursor)
	if err != nil {
		return nil, "", err
	}

	items := make([]model.Summary, 0, len(ids))
	for _, id := range ids {
		items = append(items, c.summaries[id].summary)
	}
	return items, next, nil
}

// page slices ordered ids into one page. The cursor is the start offset.
func (c *Client) page(ids []string, cursor string) ([]string, string, error) {
	start, err := parseCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if start > len(ids) {
		start = len(ids)
	}

	end := start + c.pageSize
	if end > len(ids) {
		end = len(ids)
	}

	next := ""
	if end < len(ids) {
		next = strconv.Itoa(end)
	}

	return ids[start:end], next, nil
}

func pageSlice[T any](c *Client, items []T, cursor string) ([]T, string, error) {
	start, err := parseCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if start > len(items) {
		start = len(items)
	}

	end := start + c.pageSize
	if end > len(items) {
		end = len(items)
	}

	next := ""
	if end < len(items) {
		next = strconv.Itoa(end)
	}

	return items[start:end], next, nil
}

func parseCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(cursor)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid cursor %q: %w", cursor, model.ErrNotValid)
	}
	return n, nil
}

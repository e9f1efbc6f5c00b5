package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/proctorai/proctor-go/internal/model"
)

// Wire schemas of the evaluation API, kept separate from the domain model so
// the API can evolve without leaking into it.

type testIn struct {
	Name               string `json:"name"`
	StudentDescription string `json:"student_description"`
	Policy             string `json:"policy"`
	Language           string `json:"language"`
	NumQuestions       int    `json:"num_questions"`
}

type testOut struct {
	ID           string      `json:"test_id"`
	Name         string      `json:"name"`
	Status       string      `json:"status"`
	Language     string      `json:"language"`
	NumQuestions int         `json:"num_questions"`
	CreatedAt    time.Time   `json:"created_at"`
	Failure      *failureOut `json:"failure,omitempty"`
}

type questionOut struct {
	ID   string `json:"question_id"`
	Text string `json:"question_text"`
}

type answerIn struct {
	QuestionID string `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

type scoreRunIn struct {
	TestID  string     `json:"test_id"`
	Answers []answerIn `json:"answers"`
}

type scoreRunOut struct {
	ID        string      `json:"score_run_id"`
	TestID    string      `json:"test_id"`
	TestName  string      `json:"test_name"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Failure   *failureOut `json:"failure,omitempty"`
}

type scoredAnswerOut struct {
	ID           string  `json:"answer_id"`
	QuestionID   string  `json:"question_id"`
	QuestionText string  `json:"question_text"`
	AnswerText   string  `json:"answer_text"`
	Passed       bool    `json:"is_passed"`
	Confidence   float64 `json:"confidence"`
	Explanation  string  `json:"explanation"`
}

type summaryIn struct {
	ScoreRunIDs []string `json:"score_run_ids"`
}

type summaryOut struct {
	ID        string          `json:"summary_id"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Overall   string          `json:"overall_summary"`
	Advice    string          `json:"improvement_advice"`
	PerRun    []runSummaryOut `json:"score_run_summaries"`
	Failure   *failureOut     `json:"failure,omitempty"`
}

type runSummaryOut struct {
	ScoreRunID string `json:"score_run_id"`
	Summary    string `json:"summary"`
	Advice     string `json:"improvement_advice"`
}

type failureOut struct {
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

type pageOut[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor"`
}

func (f *failureOut) toModel() *model.FailureDetail {
	if f == nil {
		return nil
	}
	return &model.FailureDetail{Reason: f.Reason, Code: f.Code}
}

func (t testOut) toModel() *model.Test {
	return &model.Test{
		ID:            t.ID,
		Name:          t.Name,
		Status:        model.ParseRemoteStatus(t.Status),
		Language:      t.Language,
		NumQuestions:  t.NumQuestions,
		CreatedAt:     t.CreatedAt,
		FailureDetail: t.Failure.toModel(),
	}
}

func (s scoreRunOut) toModel() *model.ScoreRun {
	return &model.ScoreRun{
		ID:            s.ID,
		TestID:        s.TestID,
		TestName:      s.TestName,
		Status:        model.ParseRemoteStatus(s.Status),
		CreatedAt:     s.CreatedAt,
		FailureDetail: s.Failure.toModel(),
	}
}

func (s summaryOut) toModel() *model.Summary {
	sum := &model.Summary{
		ID:            s.ID,
		Status:        model.ParseRemoteStatus(s.Status),
		CreatedAt:     s.CreatedAt,
		Overall:       s.Overall,
		Advice:        s.Advice,
		FailureDetail: s.Failure.toModel(),
	}
	for _, r := range s.PerRun {
		sum.PerRun = append(sum.PerRun, model.RunSummary{
			ScoreRunID: r.ScoreRunID,
			Summary:    r.Summary,
			Advice:     r.Advice,
		})
	}
	return sum
}

func cursorQuery(cursor string) url.Values {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}

// CreateTest submits a test creation operation.
func (c *Client) CreateTest(ctx context.Context, spec model.TestSpec) (*model.Test, error) {
	body := testIn{
		Name:               spec.Name,
		StudentDescription: spec.StudentDescription,
		Policy:             spec.Policy,
		Language:           spec.Language,
		NumQuestions:       spec.NumQuestions,
	}

	var out testOut
	if err := c.do(ctx, http.MethodPost, "/tests", nil, body, &out); err != nil {
		return nil, err
	}

	return out.toModel(), nil
}

// GetTest queries the current state of a test.
func (c *Client) GetTest(ctx context.Context, id string) (*model.Test, error) {
	var out testOut
	if err := c.do(ctx, http.MethodGet, "/tests/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}

	return out.toModel(), nil
}

// ListTests returns one page of tests.
func (c *Client) ListTests(ctx context.Context, cursor string) ([]model.Test, string, error) {
	var out pageOut[testOut]
	if err := c.do(ctx, http.MethodGet, "/tests", cursorQuery(cursor), nil, &out); err != nil {
		return nil, "", err
	}

	items := make([]model.Test, 0, len(out.Items))
	for _, t := range out.Items {
		items = append(items, *t.toModel())
	}
	return items, out.NextCursor, nil
}

// ListTestQuestions returns one page of a test's generated questions.
func (c *Client) ListTestQuestions(ctx context.Context, testID, cursor string) ([]model.Question, string, error) {
	endpoint := fmt.Sprintf("/tests/%s/questions", url.PathEscape(testID))

	var out pageOut[questionOut]
	if err := c.do(ctx, http.MethodGet, endpoint, cursorQuery(cursor), nil, &out); err != nil {
		return nil, "", err
	}

	items := make([]model.Question, 0, len(out.Items))
	for _, q := range out.Items {
		items = append(items, model.Question{ID: q.ID, Text: q.Text})
	}
	return items, out.NextCursor, nil
}

// CreateScoreRun submits a scoring run operation.
func (c *Client) CreateScoreRun(ctx context.Context, spec model.ScoreRunSpec) (*model.ScoreRun, error) {
	body := scoreRunIn{TestID: spec.TestID}
	for _, a := range spec.Answers {
		body.Answers = append(body.Answers, answerIn{QuestionID: a.QuestionID, AnswerText: a.Text})
	}

	var out scoreRunOut
	if err := c.do(ctx, http.MethodPost, "/score_runs", nil, body, &out); err != nil {
		return nil, err
	}

	return out.toModel(), nil
}

// GetScoreRun queries the current state of a score run.
func (c *Client) GetScoreRun(ctx context.Context, id string) (*model.ScoreRun, error) {
	var out scoreRunOut
	if err := c.do(ctx, http.MethodGet, "/score_runs/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}

	return out.toModel(), nil
}

// ListScoreRuns returns one page of score runs, optionally filtered by test.
func (c *Client) ListScoreRuns(ctx context.Context, testID, cursor string) ([]model.ScoreRun, string, error) {
	q := cursorQuery(cursor)
	if testID != "" {
		q.Set("test_id", testID)
	}

	var out pageOut[scoreRunOut]
	if err := c.do(ctx, http.MethodGet, "/score_runs", q, nil, &out); err != nil {
		return nil, "", err
	}

	items := make([]model.ScoreRun, 0, len(out.Items))
	for _, s := range out.Items {
		items = append(items, *s.toModel())
	}
	return items, out.NextCursor, nil
}

// ListScoreRunAnswers returns one page of a score run's judged answers.
func (c *Client) ListScoreRunAnswers(ctx context.Context, scoreRunID, cursor string) ([]model.ScoredAnswer, string, error) {
	endpoint := fmt.Sprintf("/score_runs/%s/answers", url.PathEscape(scoreRunID))

	var out pageOut[scoredAnswerOut]
	if err := c.do(ctx, http.MethodGet, endpoint, cursorQuery(cursor), nil, &out); err != nil {
		return nil, "", err
	}

	items := make([]model.ScoredAnswer, 0, len(out.Items))
	for _, a := range out.Items {
		items = append(items, model.ScoredAnswer{
			ID:           a.ID,
			QuestionID:   a.QuestionID,
			QuestionText: a.QuestionText,
			AnswerText:   a.AnswerText,
			Passed:       a.Passed,
			Confidence:   a.Confidence,
			Explanation:  a.Explanation,
		})
	}
	return items, out.NextCursor, nil
}

// CreateSummary submits a summary generation operation.
func (c *Client) CreateSummary(ctx context.Context, spec model.SummarySpec) (*model.Summary, error) {
	var out summaryOut
	if err := c.do(ctx, http.MethodPost, "/summaries", nil, summaryIn{ScoreRunIDs: spec.ScoreRunIDs}, &out); err != nil {
		return nil, err
	}

	return out.toModel(), nil
}

// GetSummary queries the current state of a summary.
func (c *Client) GetSummary(ctx context.Context, id string) (*model.Summary, error) {
	var out summaryOut
	if err := c.do(ctx, http.MethodGet, "/summaries/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}

	return out.toModel(), nil
}

// ListSummaries returns one page of summaries.
func (c *Client) ListSummaries(ctx context.Context, cursor string) ([]model.Summary, string, error) {
	var out pageOut[summaryOut]
	if err := c.do(ctx, http.MethodGet, "/summaries", cursorQuery(cursor), nil, &out); err != nil {
		return nil, "", err
	}

	items := make([]model.Summary, 0, len(out.Items))
	for _, s := range out.Items {
		items = append(items, *s.toModel())
	}
	return items, out.NextCursor, nil
}

package proctor

import (
	"errors"
	"fmt"
	"time"

	"github.com/proctorai/proctor-go/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when an input is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrAuth is returned when the API rejects the credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrRateLimited is returned when the API throttles the client.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer is returned when the API fails on its side.
	ErrServer = errors.New("server error")
	// ErrTimeout is returned when a wait ran out of budget before the
	// operation reached a terminal status. The remote operation keeps
	// running and can be waited on again.
	ErrTimeout = errors.New("wait timed out")
	// ErrNotReady is returned when a result is requested for an operation
	// that has not reached a terminal status yet.
	ErrNotReady = errors.New("not ready")
	// ErrOperationFailed is returned when the remote operation itself
	// failed. Use [errors.As] with [*OperationFailedError] for the detail.
	ErrOperationFailed = errors.New("operation failed")
)

// Status represents the lifecycle state of a remote operation.
//
// The typical lifecycle is:
//
//	pending -> running -> completed
//
// An operation can also transition to failed at any point. Completed and
// failed are terminal: once reached, the status never changes again.
type Status string

const (
	// StatusPending indicates the operation was accepted but has not started.
	StatusPending Status = "pending"
	// StatusRunning indicates the operation is in progress.
	StatusRunning Status = "running"
	// StatusCompleted indicates the operation finished successfully. Terminal.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the operation finished with an error. Terminal.
	StatusFailed Status = "failed"
	// StatusUnknown indicates the API reported a status this client version
	// does not recognize. Non-terminal; waits keep polling through it.
	StatusUnknown Status = "unknown"
)

// IsTerminal returns true when no further status transition can occur.
func (s Status) IsTerminal() bool {
	return model.Status(s).IsTerminal()
}

// FailureDetail describes why a remote operation failed.
type FailureDetail struct {
	// Reason is the human-readable failure explanation from the API.
	Reason string
	// Code is the machine-readable failure code from the API.
	Code string
}

// OperationFailedError is returned when a remote operation ends in the
// failed status. It matches [ErrOperationFailed] with [errors.Is].
type OperationFailedError struct {
	// ID of the failed operation.
	ID string
	// Detail is the remote failure detail, when the API reported one.
	Detail FailureDetail
}

func (e *OperationFailedError) Error() string {
	if e.Detail.Reason != "" {
		return fmt.Sprintf("operation %s failed: %s", e.ID, e.Detail.Reason)
	}
	return fmt.Sprintf("operation %s failed", e.ID)
}

// Is makes errors.Is(err, ErrOperationFailed) match.
func (e *OperationFailedError) Is(target error) bool {
	return target == ErrOperationFailed
}

// TestSpec is the definition of an alignment test.
//
// Name, StudentDescription and Policy are required. The spec is validated
// locally before any network call.
type TestSpec struct {
	// Name is the human-friendly test name (1 to 100 characters).
	Name string
	// StudentDescription describes the AI under test: its purpose, expected
	// use and typical user. The more specific, the less generic the
	// generated questions.
	StudentDescription string
	// Policy is the safety policy the test measures compliance against.
	Policy string
	// Language of the generated questions. Default: "en".
	Language string
	// NumQuestions is the number of questions to generate (1 to 100).
	// Default: 20.
	NumQuestions int
}

// Test represents an alignment test on the remote service.
//
// This is a read-only snapshot of the test state at the time of the API
// call. Use [Client.GetTest] to get the latest state.
type Test struct {
	// ID is the unique identifier assigned at creation.
	ID string
	// Name is the human-friendly name.
	Name string
	// Status is the current lifecycle state.
	Status Status
	// Language of the generated questions.
	Language string
	// NumQuestions is the number of questions the test generates.
	NumQuestions int
	// CreatedAt is when the test was created.
	CreatedAt time.Time
	// FailureDetail is only set when Status is [StatusFailed].
	FailureDetail *FailureDetail
}

// Question is a single generated test question.
type Question struct {
	ID   string
	Text string
}

// TestResult is a terminal test together with its generated questions.
type TestResult struct {
	Test      Test
	Questions []Question
}

// Answer is one answer from the AI under test to a generated question.
type Answer struct {
	QuestionID string
	Text       string
}

// ScoreRunSpec is the definition of a scoring run: the test to score
// against and the answers the AI under test gave.
type ScoreRunSpec struct {
	TestID  string
	Answers []Answer
}

// ScoreRun represents a scoring run on the remote service.
type ScoreRun struct {
	// ID is the unique identifier assigned at creation.
	ID string
	// TestID is the test the run scores against.
	TestID string
	// TestName is the name of that test.
	TestName string
	// Status is the current lifecycle state.
	Status Status
	// CreatedAt is when the score run was created.
	CreatedAt time.Time
	// FailureDetail is only set when Status is [StatusFailed].
	FailureDetail *FailureDetail
}

// ScoredAnswer is one judged answer of a completed score run.
type ScoredAnswer struct {
	ID           string
	QuestionID   string
	QuestionText string
	AnswerText   string
	// Passed is the judge's verdict for this answer.
	Passed bool
	// Confidence is the judge's confidence in the verdict, 0 to 1.
	Confidence float64
	// Explanation is the judge's reasoning for the verdict.
	Explanation string
}

// ScoreRunResult is a terminal score run together with its scored answers.
type ScoreRunResult struct {
	ScoreRun ScoreRun
	Answers  []ScoredAnswer
}

// PassStats aggregates the pass rate of one completed score run.
type PassStats struct {
	ScoreRunID string
	TestName   string
	PassTotal  int
	Total      int
	// PassRate is PassTotal over Total, 0 when the run has no answers.
	PassRate float64
}

// SummarySpec is the definition of a summary generation over one or more
// completed score runs.
type SummarySpec struct {
	ScoreRunIDs []string
}

// Summary represents a generated summary of score runs: what failed and how
// to improve the AI under test.
type Summary struct {
	// ID is the unique identifier assigned at creation.
	ID string
	// Status is the current lifecycle state.
	Status Status
	// CreatedAt is when the summary was created.
	CreatedAt time.Time
	// Overall is the cross-run summary text. Only set when completed.
	Overall string
	// Advice is the cross-run improvement advice. Only set when completed.
	Advice string
	// PerRun holds the per-score-run breakdown. Only set when completed.
	PerRun []RunSummary
	// FailureDetail is only set when Status is [StatusFailed].
	FailureDetail *FailureDetail
}

// RunSummary is the per-score-run part of a summary.
type RunSummary struct {
	ScoreRunID string
	Summary    string
	Advice     string
}

// --- Internal conversion helpers ---

func toInternalTestSpec(s TestSpec) model.TestSpec {
	return model.TestSpec{
		Name:               s.Name,
		StudentDescription: s.StudentDescription,
		Policy:             s.Policy,
		Language:           s.Language,
		NumQuestions:       s.NumQuestions,
	}
}

func fromInternalTest(t model.Test) Test {
	return Test{
		ID:            t.ID,
		Name:          t.Name,
		Status:        Status(t.Status),
		Language:      t.Language,
		NumQuestions:  t.NumQuestions,
		CreatedAt:     t.CreatedAt,
		FailureDetail: fromInternalFailureDetail(t.FailureDetail),
	}
}

func fromInternalQuestions(qs []model.Question) []Question {
	result := make([]Question, len(qs))
	for i, q := range qs {
		result[i] = Question{ID: q.ID, Text: q.Text}
	}
	return result
}

func toInternalScoreRunSpec(s ScoreRunSpec) model.ScoreRunSpec {
	answers := make([]model.Answer, len(s.Answers))
	for i, a := range s.Answers {
		answers[i] = model.Answer{QuestionID: a.QuestionID, Text: a.Text}
	}
	return model.ScoreRunSpec{TestID: s.TestID, Answers: answers}
}

func fromInternalScoreRun(s model.ScoreRun) ScoreRun {
	return ScoreRun{
		ID:            s.ID,
		TestID:        s.TestID,
		TestName:      s.TestName,
		Status:        Status(s.Status),
		CreatedAt:     s.CreatedAt,
		FailureDetail: fromInternalFailureDetail(s.FailureDetail),
	}
}

func fromInternalScoredAnswers(as []model.ScoredAnswer) []ScoredAnswer {
	result := make([]ScoredAnswer, len(as))
	for i, a := range as {
		result[i] = ScoredAnswer{
			ID:           a.ID,
			QuestionID:   a.QuestionID,
			QuestionText: a.QuestionText,
			AnswerText:   a.AnswerText,
			Passed:       a.Passed,
			Confidence:   a.Confidence,
			Explanation:  a.Explanation,
		}
	}
	return result
}

func fromInternalPassStats(ss []model.PassStats) []PassStats {
	result := make([]PassStats, len(ss))
	for i, s := range ss {
		result[i] = PassStats{
			ScoreRunID: s.ScoreRunID,
			TestName:   s.TestName,
			PassTotal:  s.PassTotal,
			Total:      s.Total,
			PassRate:   s.PassRate,
		}
	}
	return result
}

func toInternalSummarySpec(s SummarySpec) model.SummarySpec {
	return model.SummarySpec{ScoreRunIDs: append([]string{}, s.ScoreRunIDs...)}
}

func fromInternalSummary(s model.Summary) Summary {
	perRun := make([]RunSummary, len(s.PerRun))
	for i, r := range s.PerRun {
		perRun[i] = RunSummary{ScoreRunID: r.ScoreRunID, Summary: r.Summary, Advice: r.Advice}
	}
	return Summary{
		ID:            s.ID,
		Status:        Status(s.Status),
		CreatedAt:     s.CreatedAt,
		Overall:       s.Overall,
		Advice:        s.Advice,
		PerRun:        perRun,
		FailureDetail: fromInternalFailureDetail(s.FailureDetail),
	}
}

func fromInternalFailureDetail(d *model.FailureDetail) *FailureDetail {
	if d == nil {
		return nil
	}
	return &FailureDetail{Reason: d.Reason, Code: d.Code}
}

// mapError translates internal errors into the public sentinels so callers
// only ever need errors.Is against this package.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var failedErr *model.OperationFailedError
	if errors.As(err, &failedErr) {
		return &OperationFailedError{
			ID:     failedErr.ID,
			Detail: FailureDetail(failedErr.Detail),
		}
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrAuth):
		return joinErrors(err, ErrAuth)
	case errors.Is(err, model.ErrRateLimited):
		return joinErrors(err, ErrRateLimited)
	case errors.Is(err, model.ErrTimeout):
		return joinErrors(err, ErrTimeout)
	case errors.Is(err, model.ErrNotReady):
		return joinErrors(err, ErrNotReady)
	case errors.Is(err, model.ErrServer):
		return joinErrors(err, ErrServer)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }

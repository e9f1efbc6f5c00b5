package model

import (
	"fmt"
	"time"
)

// Answer is one answer from the AI under test to a generated question.
type Answer struct {
	QuestionID string
	Text       string
}

// ScoreRunSpec is the caller-provided definition of a scoring run: the test
// to score against and the answers the AI under test gave.
type ScoreRunSpec struct {
	TestID  string
	Answers []Answer
}

// Validate validates the score run spec locally, without any network call.
func (s *ScoreRunSpec) Validate() error {
	if s.TestID == "" {
		return fmt.Errorf("test id is required: %w", ErrNotValid)
	}

	if len(s.Answers) == 0 {
		return fmt.Errorf("at least one answer is required: %w", ErrNotValid)
	}

	for i, a := range s.Answers {
		if a.QuestionID == "" {
			return fmt.Errorf("answer %d: question id is required: %w", i, ErrNotValid)
		}
		if a.Text == "" {
			return fmt.Errorf("answer %d: answer text is required: %w", i, ErrNotValid)
		}
	}

	return nil
}

// ScoreRun represents a scoring run on the remote service.
type ScoreRun struct {
	ID        string
	TestID    string
	TestName  string
	Status    Status
	CreatedAt time.Time

	// FailureDetail is only set when Status is StatusFailed.
	FailureDetail *FailureDetail
}

// Operation returns the generic operation handle for the score run.
func (s ScoreRun) Operation() Operation {
	return Operation{
		ID:            s.ID,
		Kind:          KindScoreRun,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		FailureDetail: s.FailureDetail,
	}
}

// ScoredAnswer is one judged answer of a completed score run.
type ScoredAnswer struct {
	ID           string
	QuestionID   string
	QuestionText string
	AnswerText   string
	Passed       bool
	Confidence   float64
	Explanation  string
}

// PassStats aggregates the pass rate of one completed score run.
type PassStats struct {
	ScoreRunID string
	TestName   string
	PassTotal  int
	Total      int
	PassRate   float64
}

// NewPassStats computes pass statistics from the scored answers of a run.
func NewPassStats(run ScoreRun, answers []ScoredAnswer) PassStats {
	stats := PassStats{
		ScoreRunID: run.ID,
		TestName:   run.TestName,
		Total:      len(answers),
	}

	for _, a := range answers {
		if a.Passed {
			stats.PassTotal++
		}
	}

	if stats.Total > 0 {
		stats.PassRate = float64(stats.PassTotal) / float64(stats.Total)
	}

	return stats
}

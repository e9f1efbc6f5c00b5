package model

import (
	"fmt"
	"time"
)

// SummarySpec is the caller-provided definition of a summary generation over
// one or more completed score runs.
type SummarySpec struct {
	ScoreRunIDs []string
}

// Validate validates the summary spec locally, without any network call.
func (s *SummarySpec) Validate() error {
	if len(s.ScoreRunIDs) == 0 {
		return fmt.Errorf("at least one score run id is required: %w", ErrNotValid)
	}

	for i, id := range s.ScoreRunIDs {
		if id == "" {
			return fmt.Errorf("score run id %d is empty: %w", i, ErrNotValid)
		}
	}

	return nil
}

// Summary represents a generated summary of score runs: what failed and how
// to improve the AI under test.
type Summary struct {
	ID        string
	Status    Status
	CreatedAt time.Time

	// Overall and Advice are only set when Status is StatusCompleted.
	Overall string
	Advice  string
	PerRun  []RunSummary

	// FailureDetail is only set when Status is StatusFailed.
	FailureDetail *FailureDetail
}

// RunSummary is the per-score-run part of a summary.
type RunSummary struct {
	ScoreRunID string
	Summary    string
	Advice     string
}

// Operation returns the generic operation handle for the summary.
func (s Summary) Operation() Operation {
	return Operation{
		ID:            s.ID,
		Kind:          KindSummary,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		FailureDetail: s.FailureDetail,
	}
}

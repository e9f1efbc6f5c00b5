package model

import "time"

// OperationKind identifies the type of a remote long-running operation.
type OperationKind string

const (
	// KindTest is a test creation operation (question generation).
	KindTest OperationKind = "test"
	// KindScoreRun is a scoring run operation (answer judging).
	KindScoreRun OperationKind = "score_run"
	// KindSummary is a summary generation operation (improvement advice).
	KindSummary OperationKind = "summary"
)

// DefaultWaitTimeout returns the default polling budget for the kind. Question
// generation is usually fast; scoring and summarizing depend on the answer
// volume, so they get a larger budget.
func (k OperationKind) DefaultWaitTimeout() time.Duration {
	switch k {
	case KindTest:
		return 120 * time.Second
	case KindScoreRun, KindSummary:
		return 300 * time.Second
	default:
		return 120 * time.Second
	}
}

// Operation is the client-side handle for a remote long-running operation:
// its identifier and last observed status. Once the status is terminal it
// never changes again.
type Operation struct {
	ID        string
	Kind      OperationKind
	Status    Status
	CreatedAt time.Time

	// FailureDetail is only set when Status is StatusFailed.
	FailureDetail *FailureDetail
}

// FailedError returns the operation-failed error for a failed handle,
// carrying the remote failure detail when the API reported one.
func (o Operation) FailedError() *OperationFailedError {
	err := &OperationFailedError{Kind: o.Kind, ID: o.ID}
	if o.FailureDetail != nil {
		err.Detail = *o.FailureDetail
	}
	return err
}

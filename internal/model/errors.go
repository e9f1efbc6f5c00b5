package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrAuth is returned when the API rejects the credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrRateLimited is returned when the API throttles the client.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer is returned when the API fails on its side.
	ErrServer = errors.New("server error")
	// ErrTimeout is returned when an operation did not reach a terminal
	// status within the polling budget. The remote operation keeps running,
	// only the local wait gave up.
	ErrTimeout = errors.New("wait timed out")
	// ErrNotReady is returned when a result is requested for an operation
	// that has not reached a terminal status yet.
	ErrNotReady = errors.New("not ready")
	// ErrOperationFailed is returned when a remote operation reached the
	// failed status.
	ErrOperationFailed = errors.New("operation failed")
)

// FailureDetail describes why a remote operation failed.
type FailureDetail struct {
	Reason string
	Code   string
}

// OperationFailedError is returned when a remote operation ends in the failed
// status. It matches ErrOperationFailed with errors.Is and carries the remote
// failure detail when the API reported one.
type OperationFailedError struct {
	Kind   OperationKind
	ID     string
	Detail FailureDetail
}

func (e *OperationFailedError) Error() string {
	if e.Detail.Reason != "" {
		return fmt.Sprintf("%s %s failed: %s", e.Kind, e.ID, e.Detail.Reason)
	}
	return fmt.Sprintf("%s %s failed", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrOperationFailed) match.
func (e *OperationFailedError) Is(target error) bool {
	return target == ErrOperationFailed
}

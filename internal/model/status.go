package model

// Status represents the lifecycle state of a remote operation.
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
	// StatusUnknown indicates the remote side reported a status string this
	// client does not recognize. Treated as non-terminal so polling keeps
	// going until it resolves or the wait budget expires.
	StatusUnknown Status = "unknown"
)

// IsTerminal returns true when no further status transition can occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Rank orders statuses for the monotonic-progress invariant: a later poll of
// the same operation must never observe a lower rank.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusRunning, StatusUnknown:
		return 1
	case StatusCompleted, StatusFailed:
		return 2
	default:
		return 1
	}
}

// ParseRemoteStatus maps the status strings used by the evaluation API into
// client statuses. Unrecognized strings map to StatusUnknown instead of
// failing, so a newer server does not break older clients mid-poll.
func ParseRemoteStatus(s string) Status {
	switch s {
	case "record_created", "pending":
		return StatusPending
	case "generating_questions", "scoring", "generating", "running":
		return StatusRunning
	case "finished", "completed":
		return StatusCompleted
	case "failed":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proctorai/proctor-go/internal/model"
)

func TestStatusIsTerminal(t *testing.T) {
	tests := map[string]struct {
		status      model.Status
		expTerminal bool
	}{
		"Pending is not terminal":   {status: model.StatusPending, expTerminal: false},
		"Running is not terminal":   {status: model.StatusRunning, expTerminal: false},
		"Unknown is not terminal":   {status: model.StatusUnknown, expTerminal: false},
		"Completed is terminal":     {status: model.StatusCompleted, expTerminal: true},
		"Failed is terminal":        {status: model.StatusFailed, expTerminal: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expTerminal, tt.status.IsTerminal())
		})
	}
}

func TestStatusRankIsMonotonic(t *testing.T) {
	// Lifecycle order: pending < running < terminal.
	assert.Less(t, model.StatusPending.Rank(), model.StatusRunning.Rank())
	assert.Less(t, model.StatusRunning.Rank(), model.StatusCompleted.Rank())
	assert.Less(t, model.StatusRunning.Rank(), model.StatusFailed.Rank())
	assert.Equal(t, model.StatusCompleted.Rank(), model.StatusFailed.Rank())
}

func TestParseRemoteStatus(t *testing.T) {
	tests := map[string]struct {
		remote    string
		expStatus model.Status
	}{
		"Record created maps to pending":        {remote: "record_created", expStatus: model.StatusPending},
		"Generating questions maps to running":  {remote: "generating_questions", expStatus: model.StatusRunning},
		"Scoring maps to running":               {remote: "scoring", expStatus: model.StatusRunning},
		"Generating maps to running":            {remote: "generating", expStatus: model.StatusRunning},
		"Finished maps to completed":            {remote: "finished", expStatus: model.StatusCompleted},
		"Failed maps to failed":                 {remote: "failed", expStatus: model.StatusFailed},
		"Unrecognized string maps to unknown":   {remote: "defragmenting", expStatus: model.StatusUnknown},
		"Empty string maps to unknown":          {remote: "", expStatus: model.StatusUnknown},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expStatus, model.ParseRemoteStatus(tt.remote))
		})
	}
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proctorai/proctor-go/internal/model"
)

func TestScoreRunSpecValidate(t *testing.T) {
	tests := map[string]struct {
		spec   model.ScoreRunSpec
		expErr bool
		errMsg string
	}{
		"Valid spec passes": {
			spec: model.ScoreRunSpec{
				TestID: "test-1",
				Answers: []model.Answer{
					{QuestionID: "q-1", Text: "I cannot help with that."},
				},
			},
		},
		"Missing test id returns validation error": {
			spec: model.ScoreRunSpec{
				Answers: []model.Answer{{QuestionID: "q-1", Text: "ok"}},
			},
			expErr: true,
			errMsg: "test id is required",
		},
		"No answers returns validation error": {
			spec:   model.ScoreRunSpec{TestID: "test-1"},
			expErr: true,
			errMsg: "at least one answer",
		},
		"Answer without question id returns validation error": {
			spec: model.ScoreRunSpec{
				TestID:  "test-1",
				Answers: []model.Answer{{Text: "ok"}},
			},
			expErr: true,
			errMsg: "question id is required",
		},
		"Answer without text returns validation error": {
			spec: model.ScoreRunSpec{
				TestID:  "test-1",
				Answers: []model.Answer{{QuestionID: "q-1"}},
			},
			expErr: true,
			errMsg: "answer text is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewPassStats(t *testing.T) {
	run := model.ScoreRun{ID: "sr-1", TestName: "jailbreak-resistance"}
	answers := []model.ScoredAnswer{
		{ID: "a-1", Passed: true},
		{ID: "a-2", Passed: false},
		{ID: "a-3", Passed: true},
		{ID: "a-4", Passed: true},
	}

	stats := model.NewPassStats(run, answers)

	assert.Equal(t, "sr-1", stats.ScoreRunID)
	assert.Equal(t, "jailbreak-resistance", stats.TestName)
	assert.Equal(t, 3, stats.PassTotal)
	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 0.75, stats.PassRate, 0.0001)
}

func TestNewPassStatsEmpty(t *testing.T) {
	stats := model.NewPassStats(model.ScoreRun{ID: "sr-1"}, nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.PassRate)
}

package io_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proctorai/proctor-go/internal/model"
	storageio "github.com/proctorai/proctor-go/internal/storage/io"
)

func TestGetTestSpec(t *testing.T) {
	tests := map[string]struct {
		yaml    string
		expSpec model.TestSpec
		expErr  bool
		errMsg  string
	}{
		"Valid full spec": {
			yaml: `
name: jailbreak-resistance
student_description: A customer support chatbot.
policy: Do not facilitate fraud.
language: es
num_questions: 10
`,
			expSpec: model.TestSpec{
				Name:               "jailbreak-resistance",
				StudentDescription: "A customer support chatbot.",
				Policy:             "Do not facilitate fraud.",
				Language:           "es",
				NumQuestions:       10,
			},
		},
		"Optional fields get defaults": {
			yaml: `
name: accuracy
student_description: A chatbot.
policy: Be accurate.
`,
			expSpec: model.TestSpec{
				Name:               "accuracy",
				StudentDescription: "A chatbot.",
				Policy:             "Be accurate.",
				Language:           model.DefaultLanguage,
				NumQuestions:       model.DefaultNumQuestions,
			},
		},
		"Missing policy returns validation error": {
			yaml: `
name: accuracy
student_description: A chatbot.
`,
			expErr: true,
			errMsg: "policy is required",
		},
		"Broken YAML returns parse error": {
			yaml:   "name: [",
			expErr: true,
			errMsg: "parsing YAML",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"test.yaml": &fstest.MapFile{Data: []byte(tt.yaml)},
			}
			repo := storageio.NewSpecYAMLRepository(fsys)

			spec, err := repo.GetTestSpec(context.Background(), "test.yaml")

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expSpec, spec)
			}
		})
	}
}

func TestGetTestSpecMissingFile(t *testing.T) {
	repo := storageio.NewSpecYAMLRepository(fstest.MapFS{})

	_, err := repo.GetTestSpec(context.Background(), "missing.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading test spec file")
}

func TestGetAnswers(t *testing.T) {
	tests := map[string]struct {
		yaml   string
		expLen int
		expErr bool
		errMsg string
	}{
		"Valid answers file": {
			yaml: `
test_id: test-1
answers:
  - question_id: q-1
    text: I cannot help with that.
  - question_id: q-2
    text: Absolutely not.
`,
			expLen: 2,
		},
		"Missing test id returns validation error": {
			yaml: `
answers:
  - question_id: q-1
    text: ok
`,
			expErr: true,
			errMsg: "test id is required",
		},
		"Empty answers return validation error": {
			yaml:   `test_id: test-1`,
			expErr: true,
			errMsg: "at least one answer",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"answers.yaml": &fstest.MapFile{Data: []byte(tt.yaml)},
			}
			repo := storageio.NewSpecYAMLRepository(fsys)

			spec, err := repo.GetAnswers(context.Background(), "answers.yaml")

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "test-1", spec.TestID)
				assert.Len(t, spec.Answers, tt.expLen)
			}
		})
	}
}

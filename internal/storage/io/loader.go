// Package io loads test specs and answer files from YAML, so CLI users can
// keep their test definitions and the answers of the AI under test in files.
package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/proctorai/proctor-go/internal/model"
)

// SpecYAMLRepository loads evaluation inputs from YAML files.
type SpecYAMLRepository struct {
	fs fs.FS
}

// NewSpecYAMLRepository creates a new YAML spec repository.
func NewSpecYAMLRepository(filesystem fs.FS) *SpecYAMLRepository {
	return &SpecYAMLRepository{fs: filesystem}
}

// GetTestSpec loads a test spec from a YAML file and returns a validated
// domain model.
func (r *SpecYAMLRepository) GetTestSpec(ctx context.Context, path string) (model.TestSpec, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.TestSpec{}, fmt.Errorf("reading test spec file: %w", err)
	}

	if ctx.Err() != nil {
		return model.TestSpec{}, ctx.Err()
	}

	var spec TestSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return model.TestSpec{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m := spec.toModel()
	m.Defaults()
	if err := m.Validate(); err != nil {
		return model.TestSpec{}, fmt.Errorf("invalid test spec: %w", err)
	}

	return m, nil
}

// GetAnswers loads a score run spec (test id plus answers) from a YAML file
// and returns a validated domain model.
func (r *SpecYAMLRepository) GetAnswers(ctx context.Context, path string) (model.ScoreRunSpec, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ScoreRunSpec{}, fmt.Errorf("reading answers file: %w", err)
	}

	if ctx.Err() != nil {
		return model.ScoreRunSpec{}, ctx.Err()
	}

	var spec AnswersFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return model.ScoreRunSpec{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m := spec.toModel()
	if err := m.Validate(); err != nil {
		return model.ScoreRunSpec{}, fmt.Errorf("invalid answers file: %w", err)
	}

	return m, nil
}

// TestSpec represents the YAML structure of a test spec file.
type TestSpec struct {
	Name               string `yaml:"name"`
	StudentDescription string `yaml:"student_description"`
	Policy             string `yaml:"policy"`
	Language           string `yaml:"language"`
	NumQuestions       int    `yaml:"num_questions"`
}

func (s TestSpec) toModel() model.TestSpec {
	return model.TestSpec{
		Name:               s.Name,
		StudentDescription: s.StudentDescription,
		Policy:             s.Policy,
		Language:           s.Language,
		NumQuestions:       s.NumQuestions,
	}
}

// AnswersFile represents the YAML structure of an answers file.
type AnswersFile struct {
	TestID  string   `yaml:"test_id"`
	Answers []Answer `yaml:"answers"`
}

// Answer represents one answer entry of an answers file.
type Answer struct {
	QuestionID string `yaml:"question_id"`
	Text       string `yaml:"text"`
}

func (f AnswersFile) toModel() model.ScoreRunSpec {
	spec := model.ScoreRunSpec{TestID: f.TestID}
	for _, a := range f.Answers {
		spec.Answers = append(spec.Answers, model.Answer{QuestionID: a.QuestionID, Text: a.Text})
	}
	return spec
}

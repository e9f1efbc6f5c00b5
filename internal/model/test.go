package model

import (
	"fmt"
	"time"
)

const (
	testNameLenMin = 1
	testNameLenMax = 100

	numQuestionsMin = 1
	numQuestionsMax = 100

	// charToTokenMultiplier approximates the token count of free text. The
	// generation service enforces the real budget; this check only catches
	// inputs that would certainly be rejected, before any network call.
	charToTokenMultiplier = 0.3
	maxPromptTokens       = 2048

	// DefaultNumQuestions is the number of questions generated when the spec
	// does not set one.
	DefaultNumQuestions = 20
	// DefaultLanguage is the test language used when the spec does not set one.
	DefaultLanguage = "en"
)

// supportedLanguages are the languages the generation service can produce
// test questions in.
var supportedLanguages = map[string]struct{}{
	"en": {}, "es": {}, "fr": {}, "de": {}, "it": {}, "pt": {}, "ja": {}, "zh": {},
}

// TestSpec is the caller-provided definition of an alignment test.
type TestSpec struct {
	// Name is the human-friendly test name (1 to 100 characters).
	Name string
	// StudentDescription describes the AI under test (purpose, expected use,
	// typical user). The more specific, the less generic the questions.
	StudentDescription string
	// Policy is the safety policy the test measures compliance against.
	Policy string
	// Language of the generated questions. Defaults to DefaultLanguage.
	Language string
	// NumQuestions is the number of questions to generate (1 to 100).
	// Defaults to DefaultNumQuestions.
	NumQuestions int
}

// Defaults fills zero-valued optional fields.
func (s *TestSpec) Defaults() {
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.NumQuestions == 0 {
		s.NumQuestions = DefaultNumQuestions
	}
}

// Validate validates the test spec locally, without any network call.
func (s *TestSpec) Validate() error {
	if len(s.Name) < testNameLenMin || len(s.Name) > testNameLenMax {
		return fmt.Errorf("name must be between %d and %d characters: %w", testNameLenMin, testNameLenMax, ErrNotValid)
	}

	if s.StudentDescription == "" {
		return fmt.Errorf("student description is required: %w", ErrNotValid)
	}

	if s.Policy == "" {
		return fmt.Errorf("policy is required: %w", ErrNotValid)
	}

	if _, ok := supportedLanguages[s.Language]; !ok {
		return fmt.Errorf("unsupported language %q: %w", s.Language, ErrNotValid)
	}

	if s.NumQuestions < numQuestionsMin || s.NumQuestions > numQuestionsMax {
		return fmt.Errorf("number of questions must be between %d and %d: %w", numQuestionsMin, numQuestionsMax, ErrNotValid)
	}

	descTokens := float64(len(s.StudentDescription)) * charToTokenMultiplier
	policyTokens := float64(len(s.Policy)) * charToTokenMultiplier
	if total := int(descTokens + policyTokens); total > maxPromptTokens {
		return fmt.Errorf("student description and policy are ~%d tokens, must be under %d: %w", total, maxPromptTokens, ErrNotValid)
	}

	return nil
}

// Test represents an alignment test on the remote service.
type Test struct {
	ID           string
	Name         string
	Status       Status
	Language     string
	NumQuestions int
	CreatedAt    time.Time

	// FailureDetail is only set when Status is StatusFailed.
	FailureDetail *FailureDetail
}

// Operation returns the generic operation handle for the test.
func (t Test) Operation() Operation {
	return Operation{
		ID:            t.ID,
		Kind:          KindTest,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		FailureDetail: t.FailureDetail,
	}
}

// Question is a single generated test question.
type Question struct {
	ID   string
	Text string
}

package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/proctorai/proctor-go/internal/model"
)

// JSONPrinter prints evaluation information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type testOutput struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Status       string         `json:"status"`
	Language     string         `json:"language,omitempty"`
	NumQuestions int            `json:"num_questions"`
	CreatedAt    time.Time      `json:"created_at"`
	Failure      *failureOutput `json:"failure,omitempty"`
}

type questionOutput struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type scoreRunOutput struct {
	ID        string         `json:"id"`
	TestID    string         `json:"test_id"`
	TestName  string         `json:"test_name"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	Failure   *failureOutput `json:"failure,omitempty"`
}

type answerOutput struct {
	ID           string  `json:"id"`
	QuestionID   string  `json:"question_id"`
	QuestionText string  `json:"question_text"`
	AnswerText   string  `json:"answer_text"`
	Passed       bool    `json:"passed"`
	Confidence   float64 `json:"confidence"`
	Explanation  string  `json:"explanation,omitempty"`
}

type passStatsOutput struct {
	ScoreRunID string  `json:"score_run_id"`
	TestName   string  `json:"test_name"`
	PassTotal  int     `json:"pass_total"`
	Total      int     `json:"total"`
	PassRate   float64 `json:"pass_rate"`
}

type summaryOutput struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Overall   string            `json:"overall,omitempty"`
	Advice    string            `json:"advice,omitempty"`
	PerRun    []runSummaryOutput `json:"per_run,omitempty"`
	Failure   *failureOutput    `json:"failure,omitempty"`
}

type runSummaryOutput struct {
	ScoreRunID string `json:"score_run_id"`
	Summary    string `json:"summary"`
	Advice     string `json:"advice"`
}

type failureOutput struct {
	Reason string `json:"reason"`
	Code   string `json:"code,omitempty"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v interface{}) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toFailureOutput(f *model.FailureDetail) *failureOutput {
	if f == nil {
		return nil
	}
	return &failureOutput{Reason: f.Reason, Code: f.Code}
}

func toTestOutput(t model.Test) testOutput {
	return testOutput{
		ID:           t.ID,
		Name:         t.Name,
		Status:       string(t.Status),
		Language:     t.Language,
		NumQuestions: t.NumQuestions,
		CreatedAt:    t.CreatedAt.UTC(),
		Failure:      toFailureOutput(t.FailureDetail),
	}
}

func toScoreRunOutput(r model.ScoreRun) scoreRunOutput {
	return scoreRunOutput{
		ID:        r.ID,
		TestID:    r.TestID,
		TestName:  r.TestName,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		Failure:   toFailureOutput(r.FailureDetail),
	}
}

func toSummaryOutput(s model.Summary) summaryOutput {
	out := summaryOutput{
		ID:        s.ID,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.UTC(),
		Overall:   s.Overall,
		Advice:    s.Advice,
		Failure:   toFailureOutput(s.FailureDetail),
	}
	for _, r := range s.PerRun {
		out.PerRun = append(out.PerRun, runSummaryOutput{ScoreRunID: r.ScoreRunID, Summary: r.Summary, Advice: r.Advice})
	}
	return out
}

// PrintTestList prints tests in JSON format.
func (j *JSONPrinter) PrintTestList(tests []model.Test) error {
	items := make([]testOutput, len(tests))
	for i, t := range tests {
		items[i] = toTestOutput(t)
	}
	return j.encode(items)
}

// PrintTest prints a detailed test in JSON format, with its questions when
// present.
func (j *JSONPrinter) PrintTest(test model.Test, questions []model.Question) error {
	output := struct {
		testOutput
		Questions []questionOutput `json:"questions,omitempty"`
	}{testOutput: toTestOutput(test)}

	for _, q := range questions {
		output.Questions = append(output.Questions, questionOutput{ID: q.ID, Text: q.Text})
	}

	return j.encode(output)
}

// PrintScoreRunList prints score runs in JSON format.
func (j *JSONPrinter) PrintScoreRunList(runs []model.ScoreRun) error {
	items := make([]scoreRunOutput, len(runs))
	for i, r := range runs {
		items[i] = toScoreRunOutput(r)
	}
	return j.encode(items)
}

// PrintScoreRun prints a detailed score run in JSON format, with its judged
// answers when present.
func (j *JSONPrinter) PrintScoreRun(run model.ScoreRun, answers []model.ScoredAnswer) error {
	output := struct {
		scoreRunOutput
		Answers []answerOutput `json:"answers,omitempty"`
	}{scoreRunOutput: toScoreRunOutput(run)}

	for _, a := range answers {
		output.Answers = append(output.Answers, answerOutput{
			ID:           a.ID,
			QuestionID:   a.QuestionID,
			QuestionText: a.QuestionText,
			AnswerText:   a.AnswerText,
			Passed:       a.Passed,
			Confidence:   a.Confidence,
			Explanation:  a.Explanation,
		})
	}

	return j.encode(output)
}

// PrintPassStats prints aggregated pass statistics in JSON format.
func (j *JSONPrinter) PrintPassStats(stats []model.PassStats) error {
	items := make([]passStatsOutput, len(stats))
	for i, s := range stats {
		items[i] = passStatsOutput{
			ScoreRunID: s.ScoreRunID,
			TestName:   s.TestName,
			PassTotal:  s.PassTotal,
			Total:      s.Total,
			PassRate:   s.PassRate,
		}
	}
	return j.encode(items)
}

// PrintSummaryList prints summaries in JSON format.
func (j *JSONPrinter) PrintSummaryList(summaries []model.Summary) error {
	items := make([]summaryOutput, len(summaries))
	for i, s := range summaries {
		items[i] = toSummaryOutput(s)
	}
	return j.encode(items)
}

// PrintSummary prints a detailed summary in JSON format.
func (j *JSONPrinter) PrintSummary(summary model.Summary) error {
	return j.encode(toSummaryOutput(summary))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

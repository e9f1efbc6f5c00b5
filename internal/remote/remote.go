package remote

import (
	"context"

	"github.com/proctorai/proctor-go/internal/model"
)

// Client is the boundary to the remote evaluation API. All generation and
// scoring intelligence lives behind it; this client only submits operations,
// queries their status and pages through collections.
//
// List calls are cursor-paged: they return the page items plus the cursor of
// the next page, empty on the final page.
type Client interface {
	CreateTest(ctx context.Context, spec model.TestSpec) (*model.Test, error)
	GetTest(ctx context.Context, id string) (*model.Test, error)
	ListTests(ctx context.Context, cursor string) ([]model.Test, string, error)
	ListTestQuestions(ctx context.Context, testID, cursor string) ([]model.Question, string, error)

	CreateScoreRun(ctx context.Context, spec model.ScoreRunSpec) (*model.ScoreRun, error)
	GetScoreRun(ctx context.Context, id string) (*model.ScoreRun, error)
	ListScoreRuns(ctx context.Context, testID, cursor string) ([]model.ScoreRun, string, error)
	ListScoreRunAnswers(ctx context.Context, scoreRunID, cursor string) ([]model.ScoredAnswer, string, error)

	CreateSummary(ctx context.Context, spec model.SummarySpec) (*model.Summary, error)
	GetSummary(ctx context.Context, id string) (*model.Summary, error)
	ListSummaries(ctx context.Context, cursor string) ([]model.Summary, string, error)
}

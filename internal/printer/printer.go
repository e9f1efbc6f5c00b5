package printer

import "github.com/proctorai/proctor-go/internal/model"

// Printer knows how to print evaluation information in different formats.
type Printer interface {
	PrintTestList(tests []model.Test) error
	PrintTest(test model.Test, questions []model.Question) error
	PrintScoreRunList(runs []model.ScoreRun) error
	PrintScoreRun(run model.ScoreRun, answers []model.ScoredAnswer) error
	PrintPassStats(stats []model.PassStats) error
	PrintSummaryList(summaries []model.Summary) error
	PrintSummary(summary model.Summary) error
	PrintMessage(msg string) error
}

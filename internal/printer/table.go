package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/proctorai/proctor-go/internal/model"
)

// TablePrinter prints evaluation information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTestList prints tests in a table format.
func (t *TablePrinter) PrintTestList(tests []model.Test) error {
	if len(tests) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tQUESTIONS\tCREATED")

	for _, test := range tests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", test.ID, test.Name, test.Status, test.NumQuestions, TimeAgo(test.CreatedAt))
	}

	return nil
}

// PrintTest prints a detailed test, with its questions when present.
func (t *TablePrinter) PrintTest(test model.Test, questions []model.Question) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", test.ID)
	fmt.Fprintf(t.writer, "Name:       %s\n", test.Name)
	fmt.Fprintf(t.writer, "Status:     %s\n", test.Status)
	fmt.Fprintf(t.writer, "Language:   %s\n", test.Language)
	fmt.Fprintf(t.writer, "Questions:  %d\n", test.NumQuestions)
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(test.CreatedAt))

	if test.FailureDetail != nil {
		fmt.Fprintf(t.writer, "Failure:    %s\n", test.FailureDetail.Reason)
	}

	if len(questions) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "QUESTION ID\tTEXT")
	for _, q := range questions {
		fmt.Fprintf(tw, "%s\t%s\n", q.ID, q.Text)
	}

	return nil
}

// PrintScoreRunList prints score runs in a table format.
func (t *TablePrinter) PrintScoreRunList(runs []model.ScoreRun) error {
	if len(runs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTEST\tSTATUS\tCREATED")

	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", run.ID, run.TestName, run.Status, TimeAgo(run.CreatedAt))
	}

	return nil
}

// PrintScoreRun prints a detailed score run, with its judged answers when
// present.
func (t *TablePrinter) PrintScoreRun(run model.ScoreRun, answers []model.ScoredAnswer) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", run.ID)
	fmt.Fprintf(t.writer, "Test:       %s (%s)\n", run.TestName, run.TestID)
	fmt.Fprintf(t.writer, "Status:     %s\n", run.Status)
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(run.CreatedAt))

	if run.FailureDetail != nil {
		fmt.Fprintf(t.writer, "Failure:    %s\n", run.FailureDetail.Reason)
	}

	if len(answers) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "QUESTION\tANSWER\tPASSED\tCONFIDENCE")
	for _, a := range answers {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%.2f\n", truncate(a.QuestionText, 40), truncate(a.AnswerText, 40), a.Passed, a.Confidence)
	}

	return nil
}

// PrintPassStats prints aggregated pass statistics in a table format.
func (t *TablePrinter) PrintPassStats(stats []model.PassStats) error {
	if len(stats) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SCORE RUN\tTEST\tPASSED\tTOTAL\tPASS RATE")

	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f%%\n", s.ScoreRunID, s.TestName, s.PassTotal, s.Total, s.PassRate*100)
	}

	return nil
}

// PrintSummaryList prints summaries in a table format.
func (t *TablePrinter) PrintSummaryList(summaries []model.Summary) error {
	if len(summaries) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tSTATUS\tSCORE RUNS\tCREATED")

	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.Status, len(s.PerRun), TimeAgo(s.CreatedAt))
	}

	return nil
}

// PrintSummary prints a detailed summary.
func (t *TablePrinter) PrintSummary(summary model.Summary) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", summary.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", summary.Status)
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(summary.CreatedAt))

	if summary.FailureDetail != nil {
		fmt.Fprintf(t.writer, "Failure:    %s\n", summary.FailureDetail.Reason)
	}

	if summary.Overall != "" {
		fmt.Fprintf(t.writer, "\nSummary:\n%s\n", summary.Overall)
	}
	if summary.Advice != "" {
		fmt.Fprintf(t.writer, "\nAdvice:\n%s\n", summary.Advice)
	}

	for _, r := range summary.PerRun {
		fmt.Fprintf(t.writer, "\nScore run %s:\n  %s\n  %s\n", r.ScoreRunID, r.Summary, r.Advice)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/summaries"
	"github.com/proctorai/proctor-go/internal/model"
)

type SummaryCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	scoreRunIDs []string
	noWait      bool
	timeout     time.Duration
	format      string
}

// NewSummaryCreateCommand returns the summary create command.
func NewSummaryCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SummaryCreateCommand {
	c := &SummaryCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Generate an improvement summary over completed score runs.")
	c.Cmd.Flag("score-run-id", "Score run to summarize. Repeatable.").Required().StringsVar(&c.scoreRunIDs)
	c.Cmd.Flag("no-wait", "Return right after submission without waiting for the summary text.").BoolVar(&c.noWait)
	c.Cmd.Flag("timeout", "Waiting budget for summary generation.").DurationVar(&c.timeout)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c SummaryCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c SummaryCreateCommand) Run(ctx context.Context) error {
	rem, err := c.rootCmd.NewRemoteClient()
	if err != nil {
		return fmt.Errorf("could not create remote client: %w", err)
	}

	svc, err := summaries.NewService(summaries.ServiceConfig{
		Remote: rem,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	summary, err := svc.CreateAndWait(ctx, model.SummarySpec{ScoreRunIDs: c.scoreRunIDs}, summaries.WaitOptions{
		PollInterval: c.rootCmd.PollInterval,
		Timeout:      c.timeout,
		NoWait:       c.noWait,
	})
	if err != nil {
		return fmt.Errorf("could not create summary: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if c.noWait {
		msg := fmt.Sprintf("Summary %s submitted, generation continues in the background.", summary.ID)
		if err := p.PrintMessage(msg); err != nil {
			return fmt.Errorf("could not print message: %w", err)
		}
		return nil
	}

	if err := p.PrintSummary(*summary); err != nil {
		return fmt.Errorf("could not print summary: %w", err)
	}

	return nil
}

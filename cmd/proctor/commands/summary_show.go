package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/summaries"
)

type SummaryShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
}

// NewSummaryShowCommand returns the summary show command.
func NewSummaryShowCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SummaryShowCommand {
	c := &SummaryShowCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("show", "Show a summary.")
	c.Cmd.Arg("id", "Summary ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c SummaryShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c SummaryShowCommand) Run(ctx context.Context) error {
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

	summary, err := svc.Get(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get summary: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintSummary(*summary); err != nil {
		return fmt.Errorf("could not print summary: %w", err)
	}

	return nil
}

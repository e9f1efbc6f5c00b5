package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/summaries"
	"github.com/proctorai/proctor-go/internal/model"
)

type SummaryListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewSummaryListCommand returns the summary list command.
func NewSummaryListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SummaryListCommand {
	c := &SummaryListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List all summaries.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c SummaryListCommand) Name() string { return c.Cmd.FullCommand() }

func (c SummaryListCommand) Run(ctx context.Context) error {
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

	all := []model.Summary{}
	it := svc.List()
	for it.Next(ctx) {
		all = append(all, it.Item())
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("could not list summaries: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintSummaryList(all); err != nil {
		return fmt.Errorf("could not print summaries: %w", err)
	}

	return nil
}

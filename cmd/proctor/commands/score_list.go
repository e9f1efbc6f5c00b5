package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/scoreruns"
	"github.com/proctorai/proctor-go/internal/model"
)

type ScoreListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	testID string
	format string
}

// NewScoreListCommand returns the score list command.
func NewScoreListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ScoreListCommand {
	c := &ScoreListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List score runs.")
	c.Cmd.Flag("test-id", "Only the score runs of this test.").StringVar(&c.testID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ScoreListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScoreListCommand) Run(ctx context.Context) error {
	rem, err := c.rootCmd.NewRemoteClient()
	if err != nil {
		return fmt.Errorf("could not create remote client: %w", err)
	}

	svc, err := scoreruns.NewService(scoreruns.ServiceConfig{
		Remote: rem,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	all := []model.ScoreRun{}
	it := svc.List(c.testID)
	for it.Next(ctx) {
		all = append(all, it.Item())
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("could not list score runs: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintScoreRunList(all); err != nil {
		return fmt.Errorf("could not print score runs: %w", err)
	}

	return nil
}

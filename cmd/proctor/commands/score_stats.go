package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/scoreruns"
)

type ScoreStatsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	ids    []string
	format string
}

// NewScoreStatsCommand returns the score stats command.
func NewScoreStatsCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ScoreStatsCommand {
	c := &ScoreStatsCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("stats", "Show the pass statistics of completed score runs.")
	c.Cmd.Arg("id", "Score run IDs.").Required().StringsVar(&c.ids)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ScoreStatsCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScoreStatsCommand) Run(ctx context.Context) error {
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

	stats, err := svc.PassStats(ctx, c.ids)
	if err != nil {
		return fmt.Errorf("could not get pass stats: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintPassStats(stats); err != nil {
		return fmt.Errorf("could not print pass stats: %w", err)
	}

	return nil
}

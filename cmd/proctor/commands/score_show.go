package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/scoreruns"
	"github.com/proctorai/proctor-go/internal/model"
)

type ScoreShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
}

// NewScoreShowCommand returns the score show command.
func NewScoreShowCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ScoreShowCommand {
	c := &ScoreShowCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("show", "Show a score run and its judged answers.")
	c.Cmd.Arg("id", "Score run ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ScoreShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScoreShowCommand) Run(ctx context.Context) error {
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

	run, err := svc.Get(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get score run: %w", err)
	}

	// Judged answers only exist once scoring completed.
	var answers []model.ScoredAnswer
	if run.Status == model.StatusCompleted {
		answers, err = svc.Result(ctx, *run)
		if err != nil {
			return fmt.Errorf("could not get scored answers: %w", err)
		}
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintScoreRun(*run, answers); err != nil {
		return fmt.Errorf("could not print score run: %w", err)
	}

	return nil
}

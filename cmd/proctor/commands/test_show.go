package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/tests"
	"github.com/proctorai/proctor-go/internal/model"
)

type TestShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
}

// NewTestShowCommand returns the test show command.
func NewTestShowCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TestShowCommand {
	c := &TestShowCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("show", "Show a test and its generated questions.")
	c.Cmd.Arg("id", "Test ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TestShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c TestShowCommand) Run(ctx context.Context) error {
	rem, err := c.rootCmd.NewRemoteClient()
	if err != nil {
		return fmt.Errorf("could not create remote client: %w", err)
	}

	svc, err := tests.NewService(tests.ServiceConfig{
		Remote: rem,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	test, err := svc.Get(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get test: %w", err)
	}

	// Questions only exist once generation completed.
	var questions []model.Question
	if test.Status == model.StatusCompleted {
		questions, err = svc.Result(ctx, *test)
		if err != nil {
			return fmt.Errorf("could not get test questions: %w", err)
		}
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintTest(*test, questions); err != nil {
		return fmt.Errorf("could not print test: %w", err)
	}

	return nil
}

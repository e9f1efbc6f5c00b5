package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/tests"
	"github.com/proctorai/proctor-go/internal/model"
)

type TestListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTestListCommand returns the test list command.
func NewTestListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TestListCommand {
	c := &TestListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List all tests.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TestListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TestListCommand) Run(ctx context.Context) error {
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

	all := []model.Test{}
	it := svc.List()
	for it.Next(ctx) {
		all = append(all, it.Item())
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("could not list tests: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if err := p.PrintTestList(all); err != nil {
		return fmt.Errorf("could not print tests: %w", err)
	}

	return nil
}

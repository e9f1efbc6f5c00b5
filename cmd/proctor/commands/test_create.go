package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/tests"
	"github.com/proctorai/proctor-go/internal/model"
	storageio "github.com/proctorai/proctor-go/internal/storage/io"
)

type TestCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	specFile     string
	name         string
	description  string
	policy       string
	language     string
	numQuestions int
	noWait       bool
	timeout      time.Duration
	format       string
}

// NewTestCreateCommand returns the test create command.
func NewTestCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TestCreateCommand {
	c := &TestCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Create an alignment test and generate its questions.")

	c.Cmd.Flag("file", "YAML test spec file. Inline flags are ignored when set.").Short('f').StringVar(&c.specFile)
	c.Cmd.Flag("name", "Name for the test.").Short('n').StringVar(&c.name)
	c.Cmd.Flag("description", "Description of the AI under test.").StringVar(&c.description)
	c.Cmd.Flag("policy", "Safety policy the test measures compliance against.").StringVar(&c.policy)
	c.Cmd.Flag("language", "Language of the generated questions.").StringVar(&c.language)
	c.Cmd.Flag("questions", "Number of questions to generate.").IntVar(&c.numQuestions)
	c.Cmd.Flag("no-wait", "Return right after submission without waiting for the questions.").BoolVar(&c.noWait)
	c.Cmd.Flag("timeout", "Waiting budget for question generation.").DurationVar(&c.timeout)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TestCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TestCreateCommand) Run(ctx context.Context) error {
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

	// Build the spec from the YAML file or the inline flags.
	var spec model.TestSpec
	if c.specFile != "" {
		dir, file := filepath.Split(c.specFile)
		if dir == "" {
			dir = "."
		}
		repo := storageio.NewSpecYAMLRepository(os.DirFS(dir))
		spec, err = repo.GetTestSpec(ctx, file)
		if err != nil {
			return fmt.Errorf("could not load test spec: %w", err)
		}
	} else {
		spec = model.TestSpec{
			Name:               c.name,
			StudentDescription: c.description,
			Policy:             c.policy,
			Language:           c.language,
			NumQuestions:       c.numQuestions,
		}
	}

	result, err := svc.CreateAndWait(ctx, spec, tests.WaitOptions{
		PollInterval: c.rootCmd.PollInterval,
		Timeout:      c.timeout,
		NoWait:       c.noWait,
	})
	if err != nil {
		return fmt.Errorf("could not create test: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if c.noWait {
		msg := fmt.Sprintf("Test %s submitted, question generation continues in the background.", result.Test.ID)
		if err := p.PrintMessage(msg); err != nil {
			return fmt.Errorf("could not print message: %w", err)
		}
		return nil
	}

	if err := p.PrintTest(result.Test, result.Questions); err != nil {
		return fmt.Errorf("could not print test: %w", err)
	}

	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/app/scoreruns"
	storageio "github.com/proctorai/proctor-go/internal/storage/io"
)

type ScoreRunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	answersFile string
	testID      string
	noWait      bool
	timeout     time.Duration
	format      string
}

// NewScoreRunCommand returns the score run command.
func NewScoreRunCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ScoreRunCommand {
	c := &ScoreRunCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("run", "Submit answers for scoring and wait for the verdicts.")
	c.Cmd.Flag("answers", "YAML answers file (test id plus answers).").Short('f').Required().StringVar(&c.answersFile)
	c.Cmd.Flag("test-id", "Override the test id of the answers file.").StringVar(&c.testID)
	c.Cmd.Flag("no-wait", "Return right after submission without waiting for the verdicts.").BoolVar(&c.noWait)
	c.Cmd.Flag("timeout", "Waiting budget for scoring.").DurationVar(&c.timeout)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ScoreRunCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScoreRunCommand) Run(ctx context.Context) error {
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

	dir, file := filepath.Split(c.answersFile)
	if dir == "" {
		dir = "."
	}
	repo := storageio.NewSpecYAMLRepository(os.DirFS(dir))
	spec, err := repo.GetAnswers(ctx, file)
	if err != nil {
		return fmt.Errorf("could not load answers: %w", err)
	}

	if c.testID != "" {
		spec.TestID = c.testID
	}

	result, err := svc.CreateAndWait(ctx, spec, scoreruns.WaitOptions{
		PollInterval: c.rootCmd.PollInterval,
		Timeout:      c.timeout,
		NoWait:       c.noWait,
	})
	if err != nil {
		return fmt.Errorf("could not score answers: %w", err)
	}

	p := c.rootCmd.NewPrinter(c.format)
	if c.noWait {
		msg := fmt.Sprintf("Score run %s submitted, scoring continues in the background.", result.ScoreRun.ID)
		if err := p.PrintMessage(msg); err != nil {
			return fmt.Errorf("could not print message: %w", err)
		}
		return nil
	}

	if err := p.PrintScoreRun(result.ScoreRun, result.Answers); err != nil {
		return fmt.Errorf("could not print score run: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/proctorai/proctor-go/cmd/proctor/commands"
	"github.com/proctorai/proctor-go/internal/log"
	loglogrus "github.com/proctorai/proctor-go/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	// Load local .env credentials when present, so PROCTOR_API_KEY doesn't
	// need to live in the shell environment.
	_ = godotenv.Load()

	app := kingpin.New("proctor", "AI alignment evaluation tool.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	testCmd := app.Command("test", "Manage alignment tests.")
	testCreateCmd := commands.NewTestCreateCommand(rootCmd, testCmd)
	testListCmd := commands.NewTestListCommand(rootCmd, testCmd)
	testShowCmd := commands.NewTestShowCommand(rootCmd, testCmd)

	scoreCmd := app.Command("score", "Score answers against a test.")
	scoreRunCmd := commands.NewScoreRunCommand(rootCmd, scoreCmd)
	scoreListCmd := commands.NewScoreListCommand(rootCmd, scoreCmd)
	scoreShowCmd := commands.NewScoreShowCommand(rootCmd, scoreCmd)
	scoreStatsCmd := commands.NewScoreStatsCommand(rootCmd, scoreCmd)

	summaryCmd := app.Command("summary", "Summarize score runs into improvement advice.")
	summaryCreateCmd := commands.NewSummaryCreateCommand(rootCmd, summaryCmd)
	summaryListCmd := commands.NewSummaryListCommand(rootCmd, summaryCmd)
	summaryShowCmd := commands.NewSummaryShowCommand(rootCmd, summaryCmd)

	cmds := map[string]commands.Command{
		testCreateCmd.Name():    testCreateCmd,
		testListCmd.Name():      testListCmd,
		testShowCmd.Name():      testShowCmd,
		scoreRunCmd.Name():      scoreRunCmd,
		scoreListCmd.Name():     scoreListCmd,
		scoreShowCmd.Name():     scoreShowCmd,
		scoreStatsCmd.Name():    scoreStatsCmd,
		summaryCreateCmd.Name(): summaryCreateCmd,
		summaryListCmd.Name():   summaryListCmd,
		summaryShowCmd.Name():   summaryShowCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"test list":    true,
		"test show":    true,
		"score list":   true,
		"score show":   true,
		"score stats":  true,
		"summary list": true,
		"summary show": true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

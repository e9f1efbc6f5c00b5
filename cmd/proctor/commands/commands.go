package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/printer"
	"github.com/proctorai/proctor-go/internal/remote"
	"github.com/proctorai/proctor-go/internal/remote/fake"
	"github.com/proctorai/proctor-go/internal/remote/rest"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug        bool
	NoLog        bool
	NoColor      bool
	LoggerType   string
	APIURL       string
	APIKey       string
	FakeRemote   bool
	PollInterval time.Duration

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	app.Flag("api-url", "Evaluation API base URL.").Envar("PROCTOR_API_URL").StringVar(&c.APIURL)
	app.Flag("api-key", "Evaluation API key.").Envar("PROCTOR_API_KEY").StringVar(&c.APIKey)
	app.Flag("fake-remote", "Use an in-memory simulated API instead of the real one.").BoolVar(&c.FakeRemote)
	app.Flag("poll-interval", "Interval between status queries while waiting.").Default("5s").DurationVar(&c.PollInterval)

	return c
}

// NewRemoteClient returns the remote API client shared by all commands.
func (c *RootCommand) NewRemoteClient() (remote.Client, error) {
	if c.FakeRemote {
		return fake.NewClient(fake.ClientConfig{Logger: c.Logger})
	}

	if c.APIKey == "" {
		return nil, fmt.Errorf("an API key is required (--api-key or PROCTOR_API_KEY)")
	}

	return rest.NewClient(rest.ClientConfig{
		APIKey:  c.APIKey,
		BaseURL: c.APIURL,
		Logger:  c.Logger,
	})
}

// NewPrinter returns the output printer for the selected format.
func (c *RootCommand) NewPrinter(format string) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(c.Stdout)
	default:
		return printer.NewTablePrinter(c.Stdout)
	}
}

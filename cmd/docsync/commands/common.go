package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/thatguysimon/docs.pact.io/internal/config"
	"github.com/thatguysimon/docs.pact.io/internal/forge"
	"github.com/thatguysimon/docs.pact.io/internal/git"
	"github.com/thatguysimon/docs.pact.io/internal/sync"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Ctx context.Context
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsync.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Sync   SyncCmd   `cmd:"" default:"withargs" help:"Sync documentation files into the destination tree"`
	List   ListCmd   `cmd:"" help:"List the source files each job selects and their destinations"`
	Verify VerifyCmd `cmd:"" help:"Report local links in written pages whose targets do not exist"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel returns debug for --verbose, otherwise DOCSYNC_LOG_LEVEL when it
// names a level, otherwise info.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DOCSYNC_LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// openSource returns the repository reader for the configured source mode.
func openSource(cfg *config.Config) (sync.Source, error) {
	src := cfg.Source
	if src.Mode == config.SourceModeGit {
		return git.NewCloneSource(src.CloneURL, src.Branch, src.Token), nil
	}
	client, err := forge.NewClient(src, nil)
	if err != nil {
		return nil, err
	}
	return forge.NewRepositorySource(client, src.Repository, src.Branch), nil
}

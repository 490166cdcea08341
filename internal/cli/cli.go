// Package cli provides the command-line interface for skillhub.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/config"
	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/ui"
	"github.com/klauern/skillhub/internal/util"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	return NewApp(os.Stdout, os.Stderr).Run(ctx, args)
}

// NewApp builds the root command. Command output goes to stdout; logs and
// progress bars go to stderr.
func NewApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "skillhub",
		Usage:     "Sync agent skills from git and local sources into AI coding platforms",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			return ctx, configureLogging(cmd)
		},
		Commands: []*cli.Command{
			syncCommand(),
			installCommand(),
			listCommand(),
			statusCommand(),
			configCommand(),
			checkAutoSyncCommand(),
			sourceCommand(),
			daemonCommand(),
			versionCommand(),
		},
	}
}

// configureColors applies output.color from the config file, which the
// --no-color flag overrides. A broken config is reported by the command
// that loads it, not here.
func configureColors(cmd *cli.Command) {
	mode := config.ColorAuto
	if env, err := util.LoadEnv(); err == nil {
		if cfg, err := config.Load(env.ConfigPath()); err == nil {
			mode = cfg.Output.Color
		}
	}
	ui.Configure(mode, cmd.Bool("no-color"))
}

// configureLogging routes logs to the command's error writer at the level
// selected by --verbose or --debug.
func configureLogging(cmd *cli.Command) error {
	opts := logging.ForFlags(cmd.Root().ErrWriter, cmd.Bool("verbose"), cmd.Bool("debug"))
	logging.SetDefault(logging.New(opts))
	logging.Debug("logging configured", slog.String("level", opts.Level.String()))
	return nil
}

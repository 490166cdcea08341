package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/daemon"
	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/ui"
)

func daemonCommand() *cli.Command {
	return &cli.Command{
		Name:  "daemon",
		Usage: "Keep skills in sync in the background",
		Description: `Runs the auto-sync check on daemon.schedule (a cron spec, default
   "@every 1h"). With daemon.watch_local or --watch, local directory sources
   are also watched and a sync runs shortly after they change.
   Stops on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schedule",
				Usage: "Override daemon.schedule",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Watch local sources for changes (overrides daemon.watch_local)",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period after a change before syncing",
				Value: daemon.DefaultDebounce,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := loadSession()
			if err != nil {
				return err
			}

			schedule := rt.cfg.Daemon.Schedule
			if cmd.IsSet("schedule") {
				schedule = cmd.String("schedule")
			}
			watch := rt.cfg.Daemon.WatchLocal
			if cmd.IsSet("watch") {
				watch = cmd.Bool("watch")
			}

			runner := &daemon.Runner{
				Schedule: schedule,
				Debounce: cmd.Duration("debounce"),
				// Config is reloaded on every run so edits apply without a restart.
				Check: func(ctx context.Context) error {
					fresh, err := loadSession()
					if err != nil {
						return err
					}
					return autoSync(ctx, fresh)
				},
			}
			if watch {
				runner.WatchDirs = localDirs(rt.providers())
				runner.OnChange = func(ctx context.Context) error {
					fresh, err := loadSession()
					if err != nil {
						return err
					}
					_, err = runSync(ctx, fresh, nil, nil, true)
					return err
				}
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(stdout(cmd), "%s schedule %s, watching %d local source(s)\n",
				ui.StatusSuccess("daemon running:"), ui.Info(schedule), len(runner.WatchDirs))
			start := time.Now()
			err = runner.Run(ctx)
			logging.Info("daemon exited", "uptime", time.Since(start).Round(time.Second).String())
			return err
		},
	}
}

func localDirs(providers []source.Provider) []string {
	var dirs []string
	for _, p := range providers {
		if p.Kind() == source.KindDirectory {
			dirs = append(dirs, p.Location())
		}
	}
	return dirs
}

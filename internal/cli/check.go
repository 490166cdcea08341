package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/sync"
)

func checkAutoSyncCommand() *cli.Command {
	return &cli.Command{
		Name:  "check-auto-sync",
		Usage: "Run a quiet sync if auto sync is enabled and due",
		Description: `Intended for editor and shell hooks. Does nothing unless auto_sync is
   on and no sync has run within sync_interval_hours.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := loadSession()
			if err != nil {
				return err
			}
			return autoSync(ctx, rt)
		},
	}
}

// autoSync runs a quiet sync when one is due.
func autoSync(ctx context.Context, rt *session) error {
	st := rt.loadState()
	if !sync.ShouldAutoSync(rt.cfg, st, now()) {
		logging.Debug("auto sync not due")
		return nil
	}
	logging.Info("auto sync due, syncing")
	_, err := runSync(ctx, rt, nil, nil, true)
	return err
}

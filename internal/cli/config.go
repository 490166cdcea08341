package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/config"
	"github.com/klauern/skillhub/internal/sync"
	"github.com/klauern/skillhub/internal/ui"
	"github.com/klauern/skillhub/internal/util"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "View or set configuration",
		ArgsUsage: "[key | key=value]",
		Description: `Without arguments, prints the effective configuration. With a key,
   prints its value. With key=value, validates and saves the new value.

   Keys: ` + strings.Join(config.Keys(), ", ") + `

   Examples:
     skillhub config
     skillhub config sync_interval_hours
     skillhub config auto_sync=false`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := stdout(cmd)

			env, err := util.LoadEnv()
			if err != nil {
				return err
			}
			path := env.ConfigPath()

			switch cmd.Args().Len() {
			case 0:
				cfg, err := config.Load(path)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(w, ui.Header("SkillHub Configuration"))
				_, _ = fmt.Fprintf(w, "%s\n\n", ui.Dim(path))
				_, _ = fmt.Fprint(w, cfg.String())
				if policy, err := sync.ParseCollisionPolicy(cfg.Sync.OnDuplicate); err == nil {
					_, _ = fmt.Fprintf(w, "\n%s %s\n", ui.Dim("sync.on_duplicate:"), policy.Description())
				}
				return nil
			case 1:
			default:
				return errors.New("config takes at most one argument: key or key=value")
			}

			arg := cmd.Args().First()
			if !strings.Contains(arg, "=") {
				cfg, err := config.Load(path)
				if err != nil {
					return err
				}
				value, err := cfg.Get(arg)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(w, value)
				return nil
			}

			key, value, err := config.ParseAssignment(arg)
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := env.EnsureRoot(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			saved, _ := cfg.Get(key)
			_, _ = fmt.Fprintf(w, "Set %s = %s\n", key, saved)
			return nil
		},
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/sync"
	"github.com/klauern/skillhub/internal/ui"
	"github.com/klauern/skillhub/internal/ui/tui"
)

func installCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install specific skills to detected platforms",
		ArgsUsage: "[@scope/name...]",
		Description: `Installs the named skills into every detected platform they are eligible
   for. Only the source whose scope matches the reference is searched.
   Without arguments on a terminal, an interactive picker lists every
   discovered skill.

   Examples:
     skillhub install @acme/deploy
     skillhub install @acme/deploy @team/lint
     skillhub install`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := stdout(cmd)

			rt, err := loadSession()
			if err != nil {
				return err
			}
			eng, err := rt.engine()
			if err != nil {
				return err
			}
			providers := rt.providers()

			refs := cmd.Args().Slice()
			if len(refs) == 0 {
				if !interactive() {
					return errors.New("install requires a skill reference in @scope/name format")
				}
				refs, err = pickRefs(ctx, w, eng, providers)
				if err != nil || len(refs) == 0 {
					return err
				}
			}

			var errs []error
			for _, ref := range refs {
				if err := installRef(ctx, w, eng, providers, ref); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}

func pickRefs(ctx context.Context, w io.Writer, eng *sync.Engine, providers []source.Provider) ([]string, error) {
	discovered := eng.Discover(ctx, providers)
	if discovered.NoSources {
		_, _ = fmt.Fprintln(w, "No sources configured. Add one with 'skillhub source add'.")
		return nil, nil
	}

	res, err := pickSkills(discovered.Skills)
	if err != nil {
		return nil, fmt.Errorf("skill picker failed: %w", err)
	}
	if res.Action != tui.PickerActionInstall {
		_, _ = fmt.Fprintln(w, "No skills selected.")
		return nil, nil
	}

	refs := make([]string, 0, len(res.Selected))
	for _, s := range res.Selected {
		refs = append(refs, s.FullName())
	}
	return refs, nil
}

func installRef(ctx context.Context, w io.Writer, eng *sync.Engine, providers []source.Provider, ref string) error {
	_, _ = fmt.Fprintf(w, "Installing %s...\n", ui.Info(ref))

	report, err := eng.InstallOne(ctx, providers, ref)
	if err != nil {
		_, _ = fmt.Fprintf(w, "  %s\n", ui.StatusError(err.Error()))
		return err
	}

	if len(report.Platforms) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", ui.StatusWarning("no platforms detected"))
		return nil
	}
	if len(report.Pairs) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", ui.StatusSkipped("not eligible for any detected platform"))
		return nil
	}

	var failed int
	for _, p := range report.Pairs {
		switch p.Action {
		case sync.ActionInstalled:
			_, _ = fmt.Fprintf(w, "  %s\n", ui.StatusSuccess("Installed to "+p.Platform))
		case sync.ActionFailed:
			failed++
			_, _ = fmt.Fprintf(w, "  %s\n", ui.StatusError(fmt.Sprintf("%s: %v", p.Platform, p.Error)))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%s failed on %d platform(s)", ref, failed)
	}
	return nil
}

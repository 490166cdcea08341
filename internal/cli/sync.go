package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/progress"
	"github.com/klauern/skillhub/internal/sync"
	"github.com/klauern/skillhub/internal/ui"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync all skills from configured sources to detected platforms",
		Description: `Fetches every configured source in order (remote sources first, then
   local ones) and copies each skill into every detected platform it is
   eligible for. Unavailable sources and failed copies are reported without
   stopping the run.

   Examples:
     skillhub sync
     skillhub sync --quiet`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress the summary and progress output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := loadSession()
			if err != nil {
				return err
			}
			_, err = runSync(ctx, rt, stdout(cmd), stderr(cmd), cmd.Bool("quiet"))
			return err
		},
	}
}

// runSync runs a full sync. Unless quiet, progress goes to errw and the
// summary to w.
func runSync(ctx context.Context, rt *session, w, errw io.Writer, quiet bool) (*sync.Report, error) {
	var opts []sync.Option
	var tracker *progress.SyncTracker
	if !quiet {
		tracker = progress.NewSyncTracker(errw)
		opts = append(opts, sync.WithProgress(tracker.Handle))
	}

	eng, err := rt.engine(opts...)
	if err != nil {
		return nil, err
	}
	report, err := eng.Sync(ctx, rt.providers())
	if tracker != nil {
		tracker.Finish()
	}

	if !quiet && report != nil {
		printReport(w, report)
	}
	return report, err
}

func printReport(w io.Writer, report *sync.Report) {
	_, _ = fmt.Fprintln(w, ui.Header("SkillHub Sync"))
	_, _ = fmt.Fprint(w, report.Summary())
	switch {
	case report.NoSources:
	case report.Success():
		_, _ = fmt.Fprintln(w, ui.StatusSuccess("Sync complete"))
	default:
		_, _ = fmt.Fprintln(w, ui.StatusWarning("Sync completed with problems"))
	}
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/adapter"
	"github.com/klauern/skillhub/internal/config"
	"github.com/klauern/skillhub/internal/detector"
	"github.com/klauern/skillhub/internal/state"
	"github.com/klauern/skillhub/internal/sync"
	"github.com/klauern/skillhub/internal/ui"
)

// now is replaced in tests.
var now = time.Now

type platformStatus struct {
	Name      string `json:"name"`
	SkillsDir string `json:"skills_dir"`
	Installed int    `json:"installed"`
}

type statusReport struct {
	LastSyncTime      *time.Time       `json:"last_sync_time"`
	AutoSync          bool             `json:"auto_sync"`
	SyncIntervalHours float64          `json:"sync_interval_hours"`
	AutoSyncDue       bool             `json:"auto_sync_due"`
	Platforms         []platformStatus `json:"platforms"`
	NotDetected       []string         `json:"not_detected"`
	InstalledSkills   []string         `json:"installed_skills"`
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show sync status, detected platforms and installed skills",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			rt, err := loadSession()
			if err != nil {
				return err
			}
			st := rt.loadState()
			report := buildStatus(rt.cfg, st, detector.All(rt.env), now())

			if cmd.Bool("json") {
				enc := json.NewEncoder(stdout(cmd))
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			writeStatus(stdout(cmd), report, now())
			return nil
		},
	}
}

// buildStatus reports every known platform: detected ones with their count
// of managed @scope/name skills, the rest by name only.
func buildStatus(cfg *config.Config, st *state.State, platforms []adapter.Adapter, at time.Time) statusReport {
	report := statusReport{
		LastSyncTime:      st.LastSyncTime,
		AutoSync:          cfg.AutoSync,
		SyncIntervalHours: cfg.SyncIntervalHours,
		AutoSyncDue:       sync.ShouldAutoSync(cfg, st, at),
		Platforms:         make([]platformStatus, 0, len(platforms)),
		NotDetected:       []string{},
		InstalledSkills:   st.InstalledSkills,
	}
	for _, a := range platforms {
		if !a.IsInstalled() {
			report.NotDetected = append(report.NotDetected, a.Name())
			continue
		}
		ps := platformStatus{Name: a.Name(), SkillsDir: a.SkillsDir()}
		if installed, err := adapter.ListNamespaced(a); err == nil {
			ps.Installed = len(installed)
		}
		report.Platforms = append(report.Platforms, ps)
	}
	return report
}

func writeStatus(w io.Writer, r statusReport, at time.Time) {
	_, _ = fmt.Fprintln(w, ui.Header("SkillHub Status"))

	if r.LastSyncTime == nil {
		_, _ = fmt.Fprintln(w, "Last sync:     Never")
	} else {
		_, _ = fmt.Fprintf(w, "Last sync:     %s (%s)\n",
			r.LastSyncTime.Format(time.RFC3339),
			humanize.RelTime(*r.LastSyncTime, at, "ago", "from now"))
	}
	_, _ = fmt.Fprintf(w, "Auto sync:     %t\n", r.AutoSync)
	_, _ = fmt.Fprintf(w, "Sync interval: %sh\n", humanize.Ftoa(r.SyncIntervalHours))
	switch {
	case !r.AutoSync:
	case r.AutoSyncDue:
		_, _ = fmt.Fprintf(w, "Next sync:     %s\n", ui.Warning("due"))
	default:
		next := r.LastSyncTime.Add(time.Duration(r.SyncIntervalHours * float64(time.Hour)))
		_, _ = fmt.Fprintf(w, "Next sync:     %s\n", humanize.RelTime(next, at, "ago", "from now"))
	}

	_, _ = fmt.Fprintln(w, "\nDetected Platforms:")
	if len(r.Platforms) == 0 {
		_, _ = fmt.Fprintln(w, "  none")
	}
	for _, p := range r.Platforms {
		_, _ = fmt.Fprintf(w, "  - %s: %s (%s)\n", ui.Info(p.Name), p.SkillsDir,
			humanize.Comma(int64(p.Installed))+" skills")
	}
	if len(r.NotDetected) > 0 {
		_, _ = fmt.Fprintf(w, "Not detected: %s\n", strings.Join(r.NotDetected, ", "))
	}

	_, _ = fmt.Fprintf(w, "\nInstalled skills: %d\n", len(r.InstalledSkills))
	for _, s := range r.InstalledSkills {
		_, _ = fmt.Fprintf(w, "  - %s\n", s)
	}
}

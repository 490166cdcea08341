package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/sync"
	"github.com/klauern/skillhub/internal/ui"
)

// skillEntry is the JSON form of a discovered skill.
type skillEntry struct {
	FullName   string   `json:"full_name"`
	Name       string   `json:"name"`
	Scope      string   `json:"scope"`
	SourcePath string   `json:"source_path"`
	Platforms  []string `json:"platforms"`
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List skills available from configured sources",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := loadSession()
			if err != nil {
				return err
			}
			eng, err := rt.engine()
			if err != nil {
				return err
			}
			report := eng.Discover(ctx, rt.providers())

			if cmd.Bool("json") {
				return writeSkillsJSON(stdout(cmd), report)
			}
			return writeSkillsTable(stdout(cmd), report)
		},
	}
}

func writeSkillsJSON(w io.Writer, report *sync.Report) error {
	entries := make([]skillEntry, 0, len(report.Skills))
	for _, s := range report.Skills {
		entries = append(entries, skillEntry{
			FullName:   s.FullName(),
			Name:       s.Name,
			Scope:      s.Scope,
			SourcePath: s.SourcePath,
			Platforms:  s.Platforms,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeSkillsTable(w io.Writer, report *sync.Report) error {
	_, _ = fmt.Fprintln(w, ui.Header("Available Skills"))

	if report.NoSources {
		_, _ = fmt.Fprintln(w, "No sources configured")
		return nil
	}

	if len(report.Skills) > 0 {
		table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignCenter},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}))
		table.Header("Skill", "Platforms", "Source")
		for _, s := range report.Skills {
			if err := table.Append(s.FullName(), platformsColumn(s.Platforms), s.SourcePath); err != nil {
				return fmt.Errorf("failed to build table: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	_, _ = fmt.Fprintf(w, "\nTotal: %d skills from %d sources\n", len(report.Skills), len(report.Sources))
	for _, s := range report.DegradedSources() {
		_, _ = fmt.Fprintf(w, "%s\n", ui.StatusWarning(fmt.Sprintf("@%s %s: %v", s.Scope, ui.SourceStatus(string(s.Status)), s.Err)))
	}
	return nil
}

func platformsColumn(platforms []string) string {
	switch {
	case platforms == nil:
		return "all"
	case len(platforms) == 0:
		return "none"
	default:
		return strings.Join(platforms, ", ")
	}
}

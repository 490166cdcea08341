package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/urfave/cli/v3"

	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/ui"
	"github.com/klauern/skillhub/internal/util"
)

func sourceCommand() *cli.Command {
	return &cli.Command{
		Name:  "source",
		Usage: "Manage skill sources",
		Commands: []*cli.Command{
			sourceAddCommand(),
			sourceRemoveCommand(),
			sourceListCommand(),
		},
	}
}

func sourceAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a git repository or local directory as a source",
		ArgsUsage: "<scope> <url|path>",
		Description: `Git sources go to remote-index, directories to local-index. The type is
   inferred from the location unless --type is given.

   Examples:
     skillhub source add acme https://github.com/acme/skills.git
     skillhub source add mine ~/my-skills --skill foo --skill bar`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Source type: git or directory (default: inferred)",
			},
			&cli.StringSliceFlag{
				Name:  "skill",
				Usage: "Only discover this skill (repeatable)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("source add requires exactly 2 arguments: <scope> <url|path>")
			}
			scope := strings.TrimPrefix(cmd.Args().Get(0), "@")
			location := cmd.Args().Get(1)

			kind := source.Kind(cmd.String("type"))
			if kind == "" {
				kind = inferKind(location)
			}

			entry := source.Entry{
				Type:   string(kind),
				Scope:  scope,
				Skills: cmd.StringSlice("skill"),
			}
			if kind == source.KindGit {
				entry.URL = location
			} else {
				entry.Path = location
			}

			env, err := util.LoadEnv()
			if err != nil {
				return err
			}
			if err := env.EnsureRoot(); err != nil {
				return err
			}
			if err := source.AddSource(env, entry); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout(cmd), ui.StatusSuccess(fmt.Sprintf("Added %s source @%s", kind, scope)))
			return nil
		},
	}
}

// inferKind treats URLs and scp-style git addresses as git, anything else
// as a directory.
func inferKind(location string) source.Kind {
	switch {
	case strings.Contains(location, "://"),
		strings.HasPrefix(location, "git@"),
		strings.HasSuffix(location, ".git"):
		return source.KindGit
	default:
		return source.KindDirectory
	}
}

func sourceRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove a source by scope",
		ArgsUsage: "<scope>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("source remove requires exactly 1 argument: <scope>")
			}
			scope := strings.TrimPrefix(cmd.Args().First(), "@")

			env, err := util.LoadEnv()
			if err != nil {
				return err
			}
			if err := source.RemoveSource(env, scope); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout(cmd), ui.StatusSuccess("Removed source @"+scope))
			return nil
		},
	}
}

func sourceListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List configured sources in sync order",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			env, err := util.LoadEnv()
			if err != nil {
				return err
			}

			var entries []source.Entry
			var errs []error
			for _, path := range []string{source.RemoteIndexPath(env), source.LocalIndexPath(env)} {
				idx, err := source.LoadIndex(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				entries = append(entries, idx.Sources...)
			}

			if cmd.Bool("json") {
				if entries == nil {
					entries = []source.Entry{}
				}
				enc := json.NewEncoder(stdout(cmd))
				enc.SetIndent("", "  ")
				if err := enc.Encode(entries); err != nil {
					return err
				}
				return errors.Join(errs...)
			}

			if err := writeSourcesTable(stdout(cmd), entries); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
}

func writeSourcesTable(w io.Writer, entries []source.Entry) error {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No sources configured.")
		_, _ = fmt.Fprintln(w, "Use 'skillhub source add <scope> <url|path>' to add one.")
		return nil
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))
	table.Header("Scope", "Type", "Location", "Skills")
	for _, e := range entries {
		location := e.URL
		if location == "" {
			location = e.Path
		}
		skills := "*"
		if !source.Filter(e.Skills).IsWildcard() {
			skills = strings.Join(e.Skills, ", ")
		}
		if err := table.Append("@"+e.Scope, e.Type, location, skills); err != nil {
			return fmt.Errorf("failed to build table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/startini/internal/basehome"
	"github.com/toeirei/startini/internal/history"
	"github.com/toeirei/startini/internal/i18n"
	"github.com/toeirei/startini/internal/logging"
	"github.com/toeirei/startini/internal/props"
	"github.com/toeirei/startini/internal/snapshot"
	"github.com/toeirei/startini/internal/startini"
)

// propEnvPrefix marks environment variables that feed the property table,
// e.g. STARTINI_PROP_jetty.http.port=8080.
const propEnvPrefix = "STARTINI_PROP_"

func newShowCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show <start.ini>",
		Short: "Print the expanded, deduplicated lines of a start.ini",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ini, err := startini.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "# "+i18n.T("show.header", ini.Path()))
			fmt.Fprintln(out, "# "+i18n.T("show.base_dir", ini.BaseDir()))
			lines := ini.Lines()
			if all {
				lines = ini.AllLines()
			}
			for line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print the file verbatim instead of the expanded lines")
	return cmd
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules <start.ini>",
		Short: "List the modules enabled by a start.ini",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ini, err := startini.Load(args[0])
			if err != nil {
				return err
			}
			mods := ini.Modules()
			if len(mods) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("modules.none", ini.Path()))
				return nil
			}
			for _, m := range mods {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

func newBaseDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "basedir <start.ini>",
		Short: "Print the directory ${start.basedir} expands to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ini, err := startini.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ini.BaseDir())
			return nil
		},
	}
}

type updateFlags struct {
	propsFile string
	dryRun    bool
	backup    bool
}

func newUpdateCmd() *cobra.Command {
	var f updateFlags
	cmd := &cobra.Command{
		Use:   "update <start.ini> [name=value...]",
		Short: "Rewrite persisted properties to match the given values",
		Long: `Rewrites every name=value (or disabled #name=value) line of the file whose
name appears in the property table and whose value differs, or which is
disabled. Properties that do not already appear in the file are not added.

The property table is built from STARTINI_PROP_<name> environment
variables, then --props-file (a YAML mapping), then name=value arguments,
later sources overriding earlier ones.

Examples:
  startini update start.ini jetty.http.port=9090
  startini update --props-file site.yaml --dry-run start.ini`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], args[1:], f)
		},
	}
	cmd.Flags().StringVar(&f.propsFile, "props-file", "", "YAML file of property values")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would change without writing")
	cmd.Flags().BoolVar(&f.backup, "backup", false, "Write a compressed snapshot of the file before rewriting it")
	return cmd
}

func buildProps(propsFile string, args []string) (*props.Props, error) {
	p := props.New()
	p.LoadEnv(propEnvPrefix, os.Environ())
	if propsFile != "" {
		if err := p.LoadFile(propsFile); err != nil {
			return nil, err
		}
	}
	if err := p.AddArgs(args); err != nil {
		return nil, err
	}
	return p, nil
}

func runUpdate(cmd *cobra.Command, path string, args []string, f updateFlags) error {
	p, err := buildProps(f.propsFile, args)
	if err != nil {
		return err
	}
	if p.Len() == 0 {
		return fmt.Errorf("%s", i18n.T("update.error_no_props"))
	}
	for _, prop := range p.All() {
		logging.Debugf("property %s=%s (from %s)", prop.Name, prop.Value, prop.Origin)
	}

	ini, err := startini.Load(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if f.dryRun {
		_, changes := ini.Plan(p)
		renderChanges(out, ini, changes)
		fmt.Fprintln(out, i18n.T("update.dry_run", ini.Path()))
		return nil
	}

	if f.backup || appConfig.Backup {
		lines, eols := ini.Snapshot()
		now := time.Now()
		name := snapshot.DefaultName(ini.Path(), now)
		s := &snapshot.Snapshot{Path: ini.Path(), TakenAt: now.UTC(), Lines: lines, EOLs: eols}
		if err := snapshot.WriteFile(name, s); err != nil {
			return fmt.Errorf("could not write snapshot: %w", err)
		}
		fmt.Fprintln(out, i18n.T("update.backup_written", name))
	}

	bh := basehome.New(appConfig.Home, appConfig.Base)
	changes, err := ini.Update(p, startini.WithLogger(logging.L), startini.WithPathDisplay(bh))
	if err != nil {
		return err
	}

	if err := recordHistory(cmd.Context(), ini.Path(), changes); err != nil {
		// The file is already rewritten; a history failure must not hide that.
		logging.Errorf("could not record history: %v", err)
	}

	if len(changes) == 0 {
		fmt.Fprintln(out, i18n.T("update.no_changes", ini.Path()))
		return nil
	}
	fmt.Fprintln(out, i18n.T("update.changed", ini.Path(), len(changes)))
	return nil
}

func openHistory(ctx context.Context) (*history.Store, error) {
	return history.Open(ctx, appConfig.History.Type, appConfig.History.Dsn)
}

func recordHistory(ctx context.Context, file string, changes []startini.Change) error {
	if !appConfig.History.Enabled || len(changes) == 0 {
		return nil
	}
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries := make([]history.Entry, 0, len(changes))
	for _, c := range changes {
		entries = append(entries, history.Entry{
			File:      file,
			Name:      c.Name,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			Commented: c.Commented,
			Origin:    c.Origin,
		})
	}
	return store.Record(ctx, entries)
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot" + snapshot.Suffix + "> [target]",
		Short: "Restore a start.ini from a snapshot taken by update --backup",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}
			target := ""
			if len(args) == 2 {
				target = args[1]
			}
			written, err := snapshot.Restore(s, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("restore.success", written, args[0]))
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [start.ini]",
		Short: "Show recorded property changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !appConfig.History.Enabled {
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("history.disabled"))
				return nil
			}
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			ctx := cmd.Context()
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.List(ctx, file, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("history.empty"))
				return nil
			}
			renderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries (0 for all)")
	return cmd
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/startini/internal/history"
	"github.com/toeirei/startini/internal/startini"
)

// renderChanges prints a unified-diff style view of the planned rewrites.
func renderChanges(w io.Writer, ini *startini.Ini, changes []startini.Change) {
	r := lipgloss.NewRenderer(w)
	removed := r.NewStyle().Foreground(lipgloss.Color("1"))
	added := r.NewStyle().Foreground(lipgloss.Color("2"))
	faint := r.NewStyle().Faint(true)

	original := slices.Collect(ini.AllLines())
	for _, c := range changes {
		fmt.Fprintln(w, faint.Render(fmt.Sprintf("@@ %s:%d", ini.Path(), c.Line+1)))
		fmt.Fprintln(w, removed.Render("- "+original[c.Line]))
		fmt.Fprintln(w, added.Render("+ "+c.Name+"="+c.NewValue))
	}
}

func renderHistory(w io.Writer, entries []history.Entry) {
	r := lipgloss.NewRenderer(w)
	name := r.NewStyle().Bold(true)
	for _, e := range entries {
		old := e.OldValue
		if e.Commented {
			old = "#" + old
		}
		fmt.Fprintf(w, "%s  %s  %s: %s -> %s  (%s)\n",
			e.ChangedAt.Local().Format(time.DateTime),
			e.File,
			name.Render(e.Name),
			old,
			e.NewValue,
			e.Origin,
		)
	}
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package startini

import (
	"fmt"
	"iter"
	"os"

	"github.com/toeirei/startini/internal/props"
)

// PropertySource supplies authoritative property values.
type PropertySource interface {
	GetProp(name string) (props.Prop, bool)
}

// PathDisplay renders a path in a short form for log messages.
type PathDisplay interface {
	ShortForm(path string) string
}

// Logger records informational events. *log.Logger from charmbracelet/log
// satisfies it.
type Logger interface {
	Infof(format string, args ...any)
}

// Change describes one rewritten assignment.
type Change struct {
	Line      int // zero-based index into the file
	Name      string
	OldValue  string
	NewValue  string
	Commented bool // the assignment was disabled before the rewrite
	Origin    string
}

// Reconcile returns lines with every persisted assignment replaced by its
// authoritative value where the two differ or the assignment is disabled.
// Properties missing from the file are never added and no line moves.
func Reconcile(lines iter.Seq[string], src PropertySource) ([]string, []Change) {
	var out []string
	var changes []Change
	i := 0
	for raw := range lines {
		out = append(out, raw)
		if a, ok := Classify(raw).(Assignment); ok {
			if p, found := src.GetProp(a.Name); found && (a.Commented || a.Value != p.Value) {
				out[i] = a.Name + "=" + p.Value
				changes = append(changes, Change{
					Line:      i,
					Name:      a.Name,
					OldValue:  a.Value,
					NewValue:  p.Value,
					Commented: a.Commented,
					Origin:    p.Origin,
				})
			}
		}
		i++
	}
	return out, changes
}

type updateOptions struct {
	logger  Logger
	display PathDisplay
}

// UpdateOption configures Update.
type UpdateOption func(*updateOptions)

// WithLogger sets the sink for update records.
func WithLogger(l Logger) UpdateOption {
	return func(o *updateOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPathDisplay sets the service used to shorten the file path in logs.
func WithPathDisplay(d PathDisplay) UpdateOption {
	return func(o *updateOptions) {
		if d != nil {
			o.display = d
		}
	}
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}

type identityDisplay struct{}

func (identityDisplay) ShortForm(path string) string { return path }

// Plan computes the rewritten content without touching the file.
func (ini *Ini) Plan(src PropertySource) ([]string, []Change) {
	return Reconcile(ini.AllLines(), src)
}

// Update rewrites the file so that its assignments match src. The in-memory
// lines are not modified. The file is truncated and written in one pass; on
// error its content is undefined.
func (ini *Ini) Update(src PropertySource, opts ...UpdateOption) ([]Change, error) {
	o := updateOptions{logger: nopLogger{}, display: identityDisplay{}}
	for _, opt := range opts {
		opt(&o)
	}

	label := ini.Label()
	source := o.display.ShortForm(ini.Path())
	lines, changes := ini.Plan(src)

	if err := ini.write(lines); err != nil {
		return nil, err
	}

	for _, c := range changes {
		o.logger.Infof("%-15s property updated %s=%s", label, c.Name, c.NewValue)
	}
	o.logger.Infof("%-15s updated %s", label, source)
	return changes, nil
}

func (ini *Ini) write(lines []string) (err error) {
	f, err := os.OpenFile(ini.Path(), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("could not open %s for writing: %w", ini.Path(), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close %s: %w", ini.Path(), cerr)
		}
	}()

	if err := ini.file.WriteLines(f, lines); err != nil {
		return fmt.Errorf("could not write %s: %w", ini.Path(), err)
	}
	return nil
}

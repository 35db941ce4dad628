// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package startini loads and rewrites a launcher's start.ini file.
//
// Loading splits "--module=a,b" directives into one directive per module,
// replaces ${start.basedir} with the directory holding the file and
// deduplicates the result. Update reconciles the persisted "name=value"
// assignments against an authoritative property table while leaving every
// other line, and the line order, untouched.
package startini // import "github.com/toeirei/startini/internal/startini"

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toeirei/startini/internal/textfile"
)

const (
	// ModulePrefix starts a module directive line.
	ModulePrefix = "--module="
	// BaseDirToken is replaced with the resolved directory of the file.
	BaseDirToken = "${start.basedir}"
)

// Ini is a loaded start.ini file. It is not safe for concurrent use.
type Ini struct {
	file    *textfile.File
	baseDir string
}

// Load reads the file at path. The base directory is resolved before any
// line is processed.
func Load(path string) (*Ini, error) {
	ini := &Ini{baseDir: resolveBaseDir(path)}
	f, err := textfile.Load(path, textfile.WithTransform(ini.expand))
	if err != nil {
		return nil, err
	}
	ini.file = f
	return ini, nil
}

// resolveBaseDir returns the canonical parent directory of path, or the
// cleaned absolute parent when symlinks cannot be resolved.
func resolveBaseDir(path string) string {
	dir := filepath.Dir(path)
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// expand is the load transform: comments and blank lines are dropped,
// module lists are split and the base directory token is substituted.
func (ini *Ini) expand(line string) []string {
	if line == "" || line[0] == '#' {
		return nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if rest, ok := strings.CutPrefix(line, ModulePrefix); ok {
		parts := strings.Split(rest, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			out = append(out, ModulePrefix+ini.ExpandBaseDir(strings.TrimSpace(part)))
		}
		return out
	}
	return []string{ini.ExpandBaseDir(line)}
}

// ExpandBaseDir replaces every literal ${start.basedir} in line.
func (ini *Ini) ExpandBaseDir(line string) string {
	if line == "" {
		return line
	}
	return strings.ReplaceAll(line, BaseDirToken, ini.baseDir)
}

// AddUniqueLine feeds an extra line through the same expansion used at load
// time.
func (ini *Ini) AddUniqueLine(line string) {
	ini.file.AddUniqueLine(line)
}

// BaseDir returns the resolved directory of the file.
func (ini *Ini) BaseDir() string {
	return ini.baseDir
}

// Path returns the path the file was loaded from.
func (ini *Ini) Path() string {
	return ini.file.Path()
}

// AllLines yields the file content exactly as read.
func (ini *Ini) AllLines() iter.Seq[string] {
	return ini.file.AllLines()
}

// Lines yields the deduplicated, expanded lines.
func (ini *Ini) Lines() iter.Seq[string] {
	return ini.file.Lines()
}

// Modules returns the module names from the expanded directives in order.
// Empty names left by stray commas are skipped.
func (ini *Ini) Modules() []string {
	var out []string
	for line := range ini.Lines() {
		if name, ok := strings.CutPrefix(line, ModulePrefix); ok && name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Properties returns the enabled assignments among the expanded lines.
// Module directives are not assignments.
func (ini *Ini) Properties() []Assignment {
	var out []Assignment
	for line := range ini.Lines() {
		if strings.HasPrefix(line, "--") {
			continue
		}
		if a, ok := Classify(line).(Assignment); ok && !a.Commented {
			out = append(out, a)
		}
	}
	return out
}

// Label is the file name without its extension, used to prefix log records.
func (ini *Ini) Label() string {
	return label(ini.Path())
}

func label(path string) string {
	name := filepath.Base(path)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return name
}

// Snapshot returns a copy of the verbatim lines together with the
// terminator that followed each of them.
func (ini *Ini) Snapshot() (lines, eols []string) {
	return slices.Collect(ini.AllLines()), ini.file.Terminators()
}

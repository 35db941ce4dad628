// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package textfile provides an ordered, deduplicating view of a line-oriented
// text file. It keeps the verbatim lines exactly as read next to a set of
// "active" lines that went through a caller-supplied transform.
package textfile // import "github.com/toeirei/startini/internal/textfile"

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Transform maps one raw line to zero or more lines that are then offered to
// the dedup set. Returning nil drops the line from the active view.
type Transform func(line string) []string

// Identity is the default transform.
func Identity(line string) []string {
	return []string{line}
}

// Option configures a File at load time.
type Option func(*File)

// WithTransform installs the transform applied to every line passed to
// AddUniqueLine, including the lines read during Load.
func WithTransform(fn Transform) Option {
	return func(f *File) {
		if fn != nil {
			f.transform = fn
		}
	}
}

// File is a text file loaded into memory. It is not safe for concurrent use.
type File struct {
	path      string
	all       []string
	lines     []string
	seen      map[string]struct{}
	transform Transform

	eols []string // terminator read after each line of all; "" for an unterminated last line
	eol  string   // first terminator seen, used for lines past the end of eols
}

// Load reads path eagerly and feeds every line through the transform.
func Load(path string, opts ...Option) (*File, error) {
	f := &File{
		path:      path,
		seen:      make(map[string]struct{}),
		transform: Identity,
		eol:       "\n",
	}
	for _, opt := range opts {
		opt(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if err := f.read(data); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	for _, line := range f.all {
		f.AddUniqueLine(line)
	}
	return f, nil
}

func (f *File) read(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	scanner.Split(scanTerminatedLines)
	for scanner.Scan() {
		line, eol := cutTerminator(scanner.Text())
		f.all = append(f.all, line)
		f.eols = append(f.eols, eol)
	}
	if i := slices.IndexFunc(f.eols, func(e string) bool { return e != "" }); i >= 0 {
		f.eol = f.eols[i]
	}
	return scanner.Err()
}

// scanTerminatedLines is a bufio.SplitFunc that ends a line at "\n", "\r\n"
// or a lone "\r" and keeps the terminator in the token.
func scanTerminatedLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i+1], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i+2], nil
			}
			return i + 1, data[:i+1], nil
		}
		if atEOF {
			return i + 1, data[:i+1], nil
		}
		// A \r at the end of the buffer may be the first half of \r\n.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func cutTerminator(token string) (line, eol string) {
	for _, t := range []string{"\r\n", "\n", "\r"} {
		if l, ok := strings.CutSuffix(token, t); ok {
			return l, t
		}
	}
	return token, ""
}

// AddUniqueLine runs line through the transform and appends every result that
// is not already present in the active set.
func (f *File) AddUniqueLine(line string) {
	for _, l := range f.transform(line) {
		f.addLine(l)
	}
}

func (f *File) addLine(line string) {
	if _, ok := f.seen[line]; ok {
		return
	}
	f.seen[line] = struct{}{}
	f.lines = append(f.lines, line)
}

// AllLines yields the lines exactly as they were read, in file order.
func (f *File) AllLines() iter.Seq[string] {
	return slices.Values(f.all)
}

// Lines yields the active lines in first-seen order.
func (f *File) Lines() iter.Seq[string] {
	return slices.Values(f.lines)
}

// Len returns the number of verbatim lines.
func (f *File) Len() int {
	return len(f.all)
}

// Path returns the path the file was loaded from.
func (f *File) Path() string {
	return f.path
}

// Dir returns the directory containing the file.
func (f *File) Dir() string {
	return filepath.Dir(f.path)
}

// EOL returns the first line terminator seen at load time, "\n" if none.
func (f *File) EOL() string {
	return f.eol
}

// FinalNewline reports whether the file ended with a line terminator.
func (f *File) FinalNewline() bool {
	return len(f.eols) > 0 && f.eols[len(f.eols)-1] != ""
}

// Terminators returns a copy of the terminator read after each verbatim line.
func (f *File) Terminators() []string {
	return slices.Clone(f.eols)
}

// terminator returns what WriteLines puts after line i of n.
func (f *File) terminator(i, n int) string {
	if i < len(f.eols) {
		if t := f.eols[i]; t != "" || i == n-1 {
			return t
		}
		return f.eol
	}
	if i < n-1 || f.FinalNewline() {
		return f.eol
	}
	return ""
}

// WriteLines writes lines to w. Line i keeps the terminator it had when the
// file was read; lines past the original end use EOL.
func (f *File) WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if _, err := bw.WriteString(f.terminator(i, len(lines))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package snapshot stores the verbatim content of a start.ini file as a
// Zstandard-compressed JSON document so that an in-place rewrite can be
// undone.
package snapshot // import "github.com/toeirei/startini/internal/snapshot"

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Suffix is appended to the file name of a snapshot.
const Suffix = ".json.zst"

// Snapshot is the persisted form of a file's lines.
// EOLs holds the terminator that followed each line; when it does not match
// Lines in length, lines are joined with "\n".
type Snapshot struct {
	Path    string    `json:"path"`
	TakenAt time.Time `json:"taken_at"`
	Lines   []string  `json:"lines"`
	EOLs    []string  `json:"eols"`
}

// Content reassembles the original file bytes.
func (s *Snapshot) Content() []byte {
	var b strings.Builder
	perLine := len(s.EOLs) == len(s.Lines)
	for i, line := range s.Lines {
		b.WriteString(line)
		switch {
		case perLine:
			b.WriteString(s.EOLs[i])
		case i < len(s.Lines)-1:
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

// DefaultName returns "<path>.<timestamp>.json.zst".
func DefaultName(path string, at time.Time) string {
	return fmt.Sprintf("%s.%s%s", path, at.UTC().Format("20060102T150405Z"), Suffix)
}

// Write streams s as zstd-compressed JSON to w.
func Write(w io.Writer, s *Snapshot) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	encoder := json.NewEncoder(zw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return zw.Close()
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var s Snapshot
	if err := json.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return &s, nil
}

// WriteFile writes s to filename.
func WriteFile(filename string, s *Snapshot) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(file, s); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads a snapshot from filename.
func ReadFile(filename string) (*Snapshot, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Read(file)
}

// Restore writes the snapshot content back to target, or to the recorded
// path when target is empty. It returns the path written.
func Restore(s *Snapshot, target string) (string, error) {
	if target == "" {
		target = s.Path
	}
	if target == "" {
		return "", fmt.Errorf("snapshot has no recorded path and no target was given")
	}
	if err := os.WriteFile(target, s.Content(), 0o644); err != nil {
		return "", fmt.Errorf("could not restore %s: %w", target, err)
	}
	return target, nil
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestWriteRead(t *testing.T) {
	in := &Snapshot{
		Path:    "/srv/site/start.ini",
		TakenAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Lines:   []string{"--module=http", "", "#foo=1"},
		EOLs:    []string{"\r\n", "\n", "\r"},
	}
	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.Path != in.Path || !out.TakenAt.Equal(in.TakenAt) || !slices.Equal(out.Lines, in.Lines) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if string(out.Content()) != "--module=http\r\n\n#foo=1\r" {
		t.Fatalf("Content = %q", out.Content())
	}
}

func TestRead_Garbage(t *testing.T) {
	if _, err := Read(strings.NewReader("not zstd")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "start.ini")
	if err := os.WriteFile(target, []byte("foo=2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := &Snapshot{Path: target, Lines: []string{"foo=1", "bar"}}
	name := DefaultName(target, time.Now())
	if !strings.HasSuffix(name, Suffix) {
		t.Fatalf("unexpected name %q", name)
	}
	if err := WriteFile(name, s); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	loaded, err := ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	written, err := Restore(loaded, "")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if written != target {
		t.Fatalf("restored to %q, want %q", written, target)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "foo=1\nbar" {
		t.Fatalf("restored content = %q", data)
	}
}

func TestRestore_NoPath(t *testing.T) {
	if _, err := Restore(&Snapshot{}, ""); err == nil {
		t.Fatalf("expected error without a path")
	}
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteIni writes content to start.ini in a fresh temp dir and returns its path.
func WriteIni(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "start.ini")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write ini: %v", err)
	}
	return path
}

// RecordingLogger collects formatted Infof records.
type RecordingLogger struct {
	Records []string
}

func (r *RecordingLogger) Infof(format string, args ...any) {
	r.Records = append(r.Records, fmt.Sprintf(format, args...))
}

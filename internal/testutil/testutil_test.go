// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteIni(t *testing.T) {
	path := WriteIni(t, "a=1\n")
	if filepath.Base(path) != "start.ini" {
		t.Fatalf("unexpected name %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "a=1\n" {
		t.Fatalf("unexpected content %q (%v)", data, err)
	}
}

func TestRecordingLogger(t *testing.T) {
	var r RecordingLogger
	r.Infof("%-5s|%d", "x", 2)
	if len(r.Records) != 1 || r.Records[0] != "x    |2" {
		t.Fatalf("unexpected records %q", r.Records)
	}
}

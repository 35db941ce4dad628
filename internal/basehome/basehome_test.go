// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package basehome

import (
	"path/filepath"
	"testing"
)

func TestShortForm(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")
	base := filepath.Join(root, "base")
	bh := New(home, base)

	cases := []struct {
		in   string
		want string
	}{
		{filepath.Join(base, "start.ini"), "${jetty.base}/start.ini"},
		{filepath.Join(base, "start.d", "http.ini"), "${jetty.base}/start.d/http.ini"},
		{filepath.Join(home, "etc", "jetty.xml"), "${jetty.home}/etc/jetty.xml"},
		{base, "${jetty.base}"},
		{filepath.Join(root, "basement", "x.ini"), filepath.Join(root, "basement", "x.ini")},
	}
	for _, tc := range cases {
		if got := bh.ShortForm(tc.in); got != tc.want {
			t.Fatalf("ShortForm(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShortForm_BaseInsideHome(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "demo-base")
	bh := New(home, base)
	if got := bh.ShortForm(filepath.Join(base, "start.ini")); got != "${jetty.base}/start.ini" {
		t.Fatalf("expected base token to win, got %q", got)
	}
}

func TestNew_EmptyHome(t *testing.T) {
	bh := New("", "")
	if bh.Home() != "" {
		t.Fatalf("expected empty home, got %q", bh.Home())
	}
	if bh.Base() == "" {
		t.Fatalf("expected base to default to working directory")
	}
}

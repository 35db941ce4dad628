// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package startini

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Line
	}{
		{"foo=1", Assignment{Name: "foo", Value: "1"}},
		{"#foo=1", Assignment{Commented: true, Name: "foo", Value: "1"}},
		{"# jetty.http.port=8080", Assignment{Commented: true, Name: "jetty.http.port", Value: "8080"}},
		{"  foo=", Assignment{Name: "foo", Value: ""}},
		{"foo=a=b", Assignment{Name: "foo", Value: "a=b"}},
		{"--module=http", Assignment{Name: "--module", Value: "http"}},
		{"foo =1", Opaque{Raw: "foo =1"}},
		{"=1", Opaque{Raw: "=1"}},
		{"#", Opaque{Raw: "#"}},
		{"", Opaque{Raw: ""}},
		{"## ---------- comment", Opaque{Raw: "## ---------- comment"}},
		{"--exec", Opaque{Raw: "--exec"}},
		{"##foo=1", Opaque{Raw: "##foo=1"}},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestAssignmentString(t *testing.T) {
	a := Assignment{Commented: true, Name: "x", Value: "y"}
	if a.String() != "x=y" {
		t.Fatalf("String = %q", a.String())
	}
}

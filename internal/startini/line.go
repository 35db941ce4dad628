// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package startini

import "strings"

// Line is the classification of a single start.ini line: either an
// Assignment or an Opaque line.
type Line interface {
	line()
}

// Assignment is a "name=value" line, optionally disabled with a leading '#'.
type Assignment struct {
	Commented bool
	Name      string
	Value     string
}

// Opaque is any line that is not an assignment. It is copied verbatim.
type Opaque struct {
	Raw string
}

func (Assignment) line() {}
func (Opaque) line()     {}

// String renders the assignment in its enabled form.
func (a Assignment) String() string {
	return a.Name + "=" + a.Value
}

// whitespace matches the characters of the \s class in the launcher's
// property pattern.
const whitespace = " \t\n\v\f\r"

// Classify recognises lines of the shape `[#][ws]name=value` where name is a
// non-empty run without whitespace or '='. Everything else is Opaque.
func Classify(raw string) Line {
	s := raw
	commented := false
	if strings.HasPrefix(s, "#") {
		commented = true
		s = s[1:]
	}
	s = strings.TrimLeft(s, whitespace)

	idx := strings.IndexByte(s, '=')
	if idx <= 0 {
		return Opaque{Raw: raw}
	}
	name := s[:idx]
	if strings.ContainsAny(name, whitespace) {
		return Opaque{Raw: raw}
	}
	return Assignment{Commented: commented, Name: name, Value: s[idx+1:]}
}

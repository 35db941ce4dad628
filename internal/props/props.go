// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package props holds the authoritative property table used when rewriting
// start.ini files. Every value remembers where it came from so that updates
// can be traced back to a command-line argument, a property file or the
// environment.
package props // import "github.com/toeirei/startini/internal/props"

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Well-known origins.
const (
	OriginCommandLine = "<command-line>"
	OriginEnv         = "<env>"
)

// Prop is a single property value and its provenance.
type Prop struct {
	Name   string
	Value  string
	Origin string
}

// Props is a mutable property table. The zero value is ready to use.
type Props struct {
	props map[string]Prop
}

// New returns an empty table.
func New() *Props {
	return &Props{props: make(map[string]Prop)}
}

// Set stores or replaces a property.
func (p *Props) Set(name, value, origin string) {
	if p.props == nil {
		p.props = make(map[string]Prop)
	}
	p.props[name] = Prop{Name: name, Value: value, Origin: origin}
}

// GetProp looks up a property by exact name.
func (p *Props) GetProp(name string) (Prop, bool) {
	prop, ok := p.props[name]
	return prop, ok
}

// Len returns the number of properties in the table.
func (p *Props) Len() int {
	return len(p.props)
}

// All returns every property sorted by name.
func (p *Props) All() []Prop {
	out := make([]Prop, 0, len(p.props))
	for _, prop := range p.props {
		out = append(out, prop)
	}
	slices.SortFunc(out, func(a, b Prop) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// ParseArg splits a "name=value" argument. The name must be non-empty; the
// value may be empty.
func ParseArg(arg string) (name, value string, err error) {
	idx := strings.IndexByte(arg, '=')
	if idx <= 0 {
		return "", "", fmt.Errorf("invalid property %q: expected name=value", arg)
	}
	return arg[:idx], arg[idx+1:], nil
}

// AddArgs adds "name=value" arguments with the command-line origin.
func (p *Props) AddArgs(args []string) error {
	for _, arg := range args {
		name, value, err := ParseArg(arg)
		if err != nil {
			return err
		}
		p.Set(name, value, OriginCommandLine)
	}
	return nil
}

// LoadFile reads a YAML mapping of property names to scalar values. Nested
// mappings are not flattened; property names already carry their dots.
// Values are taken as written, so "1.10" stays "1.10" and "0x1F" stays "0x1F".
func (p *Props) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read property file: %w", err)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("could not parse property file %s: %w", path, err)
	}

	for _, doc := range file.Docs {
		var entries []*ast.MappingValueNode
		switch body := doc.Body.(type) {
		case nil, *ast.CommentGroupNode:
			continue
		case *ast.MappingNode:
			entries = body.Values
		case *ast.MappingValueNode:
			entries = []*ast.MappingValueNode{body}
		default:
			return fmt.Errorf("property file %s: top level must be a mapping", path)
		}
		for _, entry := range entries {
			name := entry.Key.GetToken().Value
			value, ok := scalarText(entry.Value)
			if !ok {
				return fmt.Errorf("property %q in %s: value must be a scalar", name, path)
			}
			p.Set(name, value, path)
		}
	}
	return nil
}

// scalarText returns the source text of a scalar node.
func scalarText(n ast.Node) (string, bool) {
	switch v := n.(type) {
	case nil, *ast.NullNode:
		return "", true
	case *ast.StringNode:
		return v.Value, true
	case *ast.LiteralNode:
		return v.Value.Value, true
	case *ast.TagNode:
		return scalarText(v.Value)
	case *ast.AnchorNode:
		return scalarText(v.Value)
	case ast.ScalarNode:
		return v.GetToken().Value, true
	}
	return "", false
}

// LoadEnv adds every environment variable of the form PREFIXname=value. The
// remainder after the prefix is used as the property name verbatim.
func (p *Props) LoadEnv(prefix string, environ []string) {
	for _, e := range environ {
		if !strings.HasPrefix(e, prefix) {
			continue
		}
		name, value, err := ParseArg(strings.TrimPrefix(e, prefix))
		if err != nil {
			continue
		}
		p.Set(name, value, OriginEnv)
	}
}

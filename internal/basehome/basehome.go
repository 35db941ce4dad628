// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package basehome knows the launcher's home and base directories and renders
// paths below them in the short "${jetty.base}/start.ini" form used in logs.
package basehome // import "github.com/toeirei/startini/internal/basehome"

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	BaseToken = "${jetty.base}"
	HomeToken = "${jetty.home}"
)

// BaseHome holds the two launcher directories. Either may be empty.
type BaseHome struct {
	home string
	base string
}

// New resolves home and base to absolute paths. An empty base defaults to
// the current working directory.
func New(home, base string) *BaseHome {
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}
	return &BaseHome{home: absClean(home), base: absClean(base)}
}

func absClean(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Home returns the launcher home directory.
func (bh *BaseHome) Home() string { return bh.home }

// Base returns the launcher base directory.
func (bh *BaseHome) Base() string { return bh.base }

// ShortForm replaces a base or home prefix of path with its token. The base
// directory is checked first since it usually lives below or beside home.
// Paths outside both are returned cleaned but otherwise unchanged.
func (bh *BaseHome) ShortForm(path string) string {
	p := absClean(path)
	if short, ok := replacePrefix(p, bh.base, BaseToken); ok {
		return short
	}
	if short, ok := replacePrefix(p, bh.home, HomeToken); ok {
		return short
	}
	return p
}

func replacePrefix(path, dir, token string) (string, bool) {
	if dir == "" {
		return "", false
	}
	if path == dir {
		return token, true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if rest, ok := strings.CutPrefix(path, prefix); ok {
		return token + "/" + filepath.ToSlash(rest), true
	}
	return "", false
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"errors"
	"io"
	"slices"

	clog "github.com/charmbracelet/log"
	"github.com/toeirei/startini/internal/basehome"
	"github.com/toeirei/startini/internal/history"
	"github.com/toeirei/startini/internal/props"
	"github.com/toeirei/startini/internal/startini"
)

// ErrHistoryDisabled is returned by History when no database is configured.
var ErrHistoryDisabled = errors.New("history is not configured")

type Client interface {
	// Close releases the history database, if any.
	Close(ctx context.Context) error

	// Inspect loads a start.ini and returns its expanded view.
	Inspect(ctx context.Context, path string) (File, error)

	// Update rewrites the persisted assignments of path that appear in
	// values. origin is recorded as the provenance of every value.
	Update(ctx context.Context, path string, values map[string]string, origin string) ([]Change, error)

	// History lists recorded changes for path (all files if empty).
	History(ctx context.Context, path string, limit int) ([]HistoryEntry, error)
}

type File struct {
	Path       string
	BaseDir    string
	Lines      []string
	Modules    []string
	Properties map[string]string
}

type Change struct {
	Line      int
	Name      string
	OldValue  string
	NewValue  string
	Commented bool
}

type HistoryEntry = history.Entry

type startiniClient struct {
	config  Config
	log     *clog.Logger
	display *basehome.BaseHome
	store   *history.Store
}

// *startiniClient implements Client
var _ Client = (*startiniClient)(nil)

// New creates a Client. When a history database is configured it is opened
// and migrated immediately.
func New(ctx context.Context, config Config) (Client, error) {
	out := config.LogOutput
	if out == nil {
		out = io.Discard
	}
	logger := clog.New(out)
	logger.SetLevel(config.LogLevel.clog())

	c := &startiniClient{
		config:  config,
		log:     logger,
		display: basehome.New(config.Home, config.Base),
	}
	if config.HistoryType != "" {
		store, err := history.Open(ctx, config.HistoryType, config.HistoryDsn)
		if err != nil {
			return nil, err
		}
		c.store = store
	}
	return c, nil
}

func (c *startiniClient) Close(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func (c *startiniClient) Inspect(ctx context.Context, path string) (File, error) {
	ini, err := startini.Load(path)
	if err != nil {
		return File{}, err
	}
	f := File{
		Path:       ini.Path(),
		BaseDir:    ini.BaseDir(),
		Lines:      slices.Collect(ini.Lines()),
		Modules:    ini.Modules(),
		Properties: make(map[string]string),
	}
	for _, a := range ini.Properties() {
		f.Properties[a.Name] = a.Value
	}
	return f, nil
}

func (c *startiniClient) Update(ctx context.Context, path string, values map[string]string, origin string) ([]Change, error) {
	if origin == "" {
		origin = "<client>"
	}
	table := props.New()
	for name, value := range values {
		table.Set(name, value, origin)
	}

	ini, err := startini.Load(path)
	if err != nil {
		return nil, err
	}
	changes, err := ini.Update(table, startini.WithLogger(c.log), startini.WithPathDisplay(c.display))
	if err != nil {
		return nil, err
	}

	out := make([]Change, 0, len(changes))
	entries := make([]history.Entry, 0, len(changes))
	for _, ch := range changes {
		out = append(out, Change{Line: ch.Line, Name: ch.Name, OldValue: ch.OldValue, NewValue: ch.NewValue, Commented: ch.Commented})
		entries = append(entries, history.Entry{
			File:      ini.Path(),
			Name:      ch.Name,
			OldValue:  ch.OldValue,
			NewValue:  ch.NewValue,
			Commented: ch.Commented,
			Origin:    ch.Origin,
		})
	}
	if c.store != nil {
		if err := c.store.Record(ctx, entries); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (c *startiniClient) History(ctx context.Context, path string, limit int) ([]HistoryEntry, error) {
	if c.store == nil {
		return nil, ErrHistoryDisabled
	}
	return c.store.List(ctx, path, limit)
}

// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package history records every property rewritten by an update in a SQL
// database (SQLite, PostgreSQL or MySQL) so operators can see when and from
// where a start.ini value changed.
package history // import "github.com/toeirei/startini/internal/history"

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	//go:embed migrations
	embeddedMigrations embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// ErrDuplicate is returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("duplicate record")

// Entry is one recorded property change.
type Entry struct {
	ID        int64
	File      string
	Name      string
	OldValue  string
	NewValue  string
	Commented bool
	Origin    string
	ChangedAt time.Time
}

// ChangeModel maps property_changes.
type ChangeModel struct {
	bun.BaseModel `bun:"table:property_changes"`
	ID            int64     `bun:"id,pk,autoincrement"`
	File          string    `bun:"file"`
	Name          string    `bun:"name"`
	OldValue      string    `bun:"old_value"`
	NewValue      string    `bun:"new_value"`
	Commented     bool      `bun:"commented"`
	Origin        string    `bun:"origin"`
	ChangedAt     time.Time `bun:"changed_at"`
}

// Store is a history database. It is safe for concurrent use.
type Store struct {
	db     *bun.DB
	dbType string
}

// driverName maps a database type to the registered database/sql driver.
func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

// createBunDB wraps sqlDB with the dialect for dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// Open connects to the database and applies pending migrations.
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sqlOpenFunc(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// In-memory SQLite is per connection.
	if dbType == "sqlite" && strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	bdb := createBunDB(sqlDB, dbType)
	s := &Store{db: bdb, dbType: dbType}
	if err := s.migrate(ctx); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies the embedded .up.sql files for the store's dialect in
// lexical order, recording each in schema_migrations.
func (s *Store) migrate(ctx context.Context) error {
	migrationsPath := path.Join("migrations", s.dbType)
	entries, err := fs.ReadDir(embeddedMigrations, migrationsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read embedded migrations (%s): %w", migrationsPath, err)
	}

	var ups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	slices.Sort(ups)

	if _, err := s.db.NewRaw(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`).Exec(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	for _, fname := range ups {
		version := strings.TrimSuffix(fname, ".up.sql")

		var count int
		if err := s.db.NewRaw("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(ctx, &count); err != nil {
			return fmt.Errorf("failed to check migration version %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		data, err := embeddedMigrations.ReadFile(path.Join(migrationsPath, fname))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", fname, err)
		}

		err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, string(data)); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", version, err)
			}
			if _, err := tx.NewRaw("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)", version, time.Now().UTC()).Exec(ctx); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// FileKey returns the absolute form of a start.ini path. Changes are stored
// and looked up under this key so relative and absolute spellings match.
func FileKey(file string) string {
	if file == "" {
		return ""
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.Clean(file)
	}
	return abs
}

// Record inserts entries in a single transaction. Entries without a
// timestamp get the current time.
func (s *Store) Record(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]ChangeModel, 0, len(entries))
	for _, e := range entries {
		at := e.ChangedAt
		if at.IsZero() {
			at = now
		}
		models = append(models, ChangeModel{
			File:      FileKey(e.File),
			Name:      e.Name,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			Commented: e.Commented,
			Origin:    e.Origin,
			ChangedAt: at.UTC(),
		})
	}
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models).Exec(ctx)
		return err
	})
	return MapDBError(err)
}

// List returns recorded changes, most recent first. An empty file matches
// every file; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, file string, limit int) ([]Entry, error) {
	var models []ChangeModel
	q := s.db.NewSelect().Model(&models).OrderExpr("changed_at DESC, id DESC")
	if file != "" {
		q = q.Where("file = ?", FileKey(file))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(models))
	for _, m := range models {
		out = append(out, Entry{
			ID:        m.ID,
			File:      m.File,
			Name:      m.Name,
			OldValue:  m.OldValue,
			NewValue:  m.NewValue,
			Commented: m.Commented,
			Origin:    m.Origin,
			ChangedAt: m.ChangedAt,
		})
	}
	return out, nil
}

// MapDBError maps driver-specific constraint violations to ErrDuplicate.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry, Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}

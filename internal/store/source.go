// Package store opens the relational data source the alignment battery inspects.
//
// A Source wraps a single read-only connection. SQLite files are never
// created: a missing file is reported as ErrUnavailable so callers can skip
// instead of failing.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"aligncheck/internal/config"
	"aligncheck/internal/logging"
)

// ErrUnavailable reports that the data source does not exist or cannot be reached.
var ErrUnavailable = errors.New("data source unavailable")

// Source is a read-only handle on the platform database.
type Source struct {
	db      *sql.DB
	dialect dialect
	driver  string
	target  string // redacted; safe to log and print
}

// Open connects to the database described by cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Source, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	target := cfg.Target()
	if target == "" {
		return nil, fmt.Errorf("%w: no %s target configured", ErrUnavailable, cfg.Driver)
	}
	if cfg.IsFile() {
		if err := statDatabaseFile(target); err != nil {
			logging.StoreWarn("SQLite database not found at %s", target)
			return nil, err
		}
	}

	safe := redact(cfg.Driver, target)
	logging.Store("Opening %s data source: %s", cfg.Driver, safe)

	db, err := sql.Open(d.driverName(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logging.StoreWarn("Ping %s failed: %v", safe, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, safe, err)
	}

	for _, stmt := range d.sessionSetup() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logging.StoreDebug("Session setup %q failed: %v", stmt, err)
		}
	}

	return &Source{db: db, dialect: d, driver: cfg.Driver, target: safe}, nil
}

// statDatabaseFile maps a missing SQLite file to ErrUnavailable.
// In-memory and URI targets are passed through to the driver.
func statDatabaseFile(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: database not found at %s", ErrUnavailable, path)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}
	return nil
}

// Driver returns the configured driver name.
func (s *Source) Driver() string {
	return s.driver
}

// Target returns the redacted path or DSN.
func (s *Source) Target() string {
	return s.target
}

// Table quotes a table or column name for the source's dialect.
func (s *Source) Table(name string) string {
	return s.dialect.quote(name)
}

// Count runs a query that returns a single integer.
func (s *Source) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var n sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logging.StoreDebug("Count query failed: %v | %s", err, compact(query))
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n.Int64, nil
}

// Columns lists the column names of a table.
// A missing table yields an empty list, not an error.
func (s *Source) Columns(ctx context.Context, table string) ([]string, error) {
	cols, err := s.dialect.columns(ctx, s.db, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	logging.StoreDebug("Table %s has %d columns", table, len(cols))
	return cols, nil
}

// HasTable reports whether a table exists and has at least one column.
func (s *Source) HasTable(ctx context.Context, table string) (bool, error) {
	cols, err := s.Columns(ctx, table)
	if err != nil {
		return false, err
	}
	return len(cols) > 0, nil
}

// Close releases the connection.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aligncheck/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// dialect hides the per-engine differences the checks care about:
// identifier quoting and schema introspection.
type dialect interface {
	driverName() string
	quote(ident string) string
	columns(ctx context.Context, db *sql.DB, table string) ([]string, error)
	sessionSetup() []string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return sqliteDialect{name: "sqlite"}, nil
	case config.DriverSQLite3:
		return sqliteDialect{name: "sqlite3"}, nil
	case config.DriverPostgres:
		return postgresDialect{}, nil
	case config.DriverMySQL:
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (valid: %v)", driver, config.ValidDrivers)
	}
}

// sqliteDialect serves both modernc.org/sqlite ("sqlite") and mattn/go-sqlite3 ("sqlite3").
type sqliteDialect struct {
	name string
}

func (d sqliteDialect) driverName() string { return d.name }

func (sqliteDialect) quote(ident string) string { return doubleQuote(ident) }

func (sqliteDialect) sessionSetup() []string {
	return []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA query_only = ON",
	}
}

func (d sqliteDialect) columns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+d.quote(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

type postgresDialect struct{}

func (postgresDialect) driverName() string { return "pgx" }

func (postgresDialect) quote(ident string) string { return doubleQuote(ident) }

func (postgresDialect) sessionSetup() []string {
	return []string{"SET SESSION CHARACTERISTICS AS TRANSACTION READ ONLY"}
}

func (postgresDialect) columns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	return scanNames(db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, table))
}

type mysqlDialect struct{}

func (mysqlDialect) driverName() string { return "mysql" }

func (mysqlDialect) quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDialect) sessionSetup() []string {
	return []string{"SET SESSION TRANSACTION READ ONLY"}
}

func (mysqlDialect) columns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	return scanNames(db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`, table))
}

func scanNames(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func doubleQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

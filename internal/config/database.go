package config

import "fmt"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"   // modernc.org/sqlite, pure Go
	DriverSQLite3  = "sqlite3"  // github.com/mattn/go-sqlite3, requires cgo
	DriverPostgres = "postgres" // github.com/jackc/pgx/v5
	DriverMySQL    = "mysql"    // github.com/go-sql-driver/mysql
)

// ValidDrivers lists all supported database drivers.
var ValidDrivers = []string{DriverSQLite, DriverSQLite3, DriverPostgres, DriverMySQL}

// DatabaseConfig configures the data source the battery inspects.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`         // sqlite, sqlite3, postgres, mysql
	Path         string `yaml:"path,omitempty"` // SQLite file
	DSN          string `yaml:"dsn,omitempty"`  // postgres/mysql connection string
	QueryTimeout string `yaml:"query_timeout"`  // per-check timeout
}

// IsFile reports whether the driver reads a local database file.
func (d DatabaseConfig) IsFile() bool {
	return d.Driver == DriverSQLite || d.Driver == DriverSQLite3
}

// Target returns the file path or DSN the driver connects to.
func (d DatabaseConfig) Target() string {
	if d.IsFile() {
		return d.Path
	}
	return d.DSN
}

// SetTarget stores a path or DSN depending on the driver.
func (d *DatabaseConfig) SetTarget(target string) {
	if d.IsFile() {
		d.Path = target
		return
	}
	d.DSN = target
}

// Validate checks the driver name. An empty target is allowed; the
// battery then runs with no data source and skips every check.
func (d DatabaseConfig) Validate() error {
	valid := false
	for _, drv := range ValidDrivers {
		if d.Driver == drv {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid database driver: %s (valid: %v)", d.Driver, ValidDrivers)
	}
	return nil
}

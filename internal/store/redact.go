package store

import (
	"fmt"
	"net/url"
	"strings"

	"aligncheck/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
)

// redact strips credentials from a DSN so it can be logged and printed.
func redact(driver, target string) string {
	switch driver {
	case config.DriverPostgres:
		return redactPostgres(target)
	case config.DriverMySQL:
		return redactMySQL(target)
	default:
		return target
	}
}

func redactPostgres(dsn string) string {
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			return u.Redacted()
		}
	}
	// keyword/value form: host=... user=... password=...
	cc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return "postgres://(unparseable dsn)"
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", cc.User, cc.Host, cc.Port, cc.Database)
}

func redactMySQL(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "mysql://(unparseable dsn)"
	}
	if cfg.Passwd != "" {
		cfg.Passwd = "xxxxx"
	}
	return cfg.FormatDSN()
}

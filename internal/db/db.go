// Package db persists component entity trees in PostgreSQL (through pgx) or
// SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB wraps a database/sql handle and remembers its dialect.
type DB struct {
	sql    *sql.DB
	driver string
}

// Open connects using driver ("postgres" or "sqlite") and pings the server.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	var name string
	switch driver {
	case DriverPostgres, "pgx":
		driver, name = DriverPostgres, "pgx"
	case DriverSQLite, "sqlite3":
		driver, name = DriverSQLite, "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if driver == DriverSQLite {
		// :memory: databases are per connection.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{sql: conn, driver: driver}, nil
}

// Close closes the connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Driver returns the normalized driver name.
func (d *DB) Driver() string { return d.driver }

// SQL returns the underlying handle.
func (d *DB) SQL() *sql.DB { return d.sql }

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d *DB) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

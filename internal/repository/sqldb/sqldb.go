// Package sqldb implements the repository interfaces on top of database/sql.
//
// Two drivers are supported behind one set of queries:
//
//   - "sqlite"   modernc.org/sqlite, a pure Go SQLite. The default; the DSN is a file path.
//   - "postgres" github.com/jackc/pgx/v5 through its database/sql adapter.
//
// Every query uses $N placeholders. Postgres requires them and SQLite accepts
// them, binding $N to the N-th argument, so no query is written twice. Only the
// schema bootstrap differs per dialect (see schema.go).
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB wraps a sql.DB connection pool and implements every repository interface.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

type Options struct {
	MaxOpenConns int
}

// Open connects, verifies the connection and applies the schema bootstrap.
//
// For SQLite the DSN is a file path. Pragmas are appended to it so that every
// pooled connection, including the dedicated ones handed out by BeginTx, runs
// with foreign keys enforced. A PRAGMA issued once through the pool would only
// reach whichever connection happened to run it.
func Open(ctx context.Context, dialect Dialect, dsn string, opts Options) (*DB, error) {
	driverName, source, err := driverFor(dialect, dsn)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("sqldb: opening %s database: %w", dialect, err)
	}
	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
		conn.SetMaxIdleConns(opts.MaxOpenConns)
	}
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqldb: pinging %s database: %w", dialect, err)
	}

	db := &DB{conn: conn, dialect: dialect}
	if err := db.Bootstrap(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func driverFor(dialect Dialect, dsn string) (driverName, source string, err error) {
	switch dialect {
	case SQLite:
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return "sqlite", dsn + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", nil
	case Postgres:
		return "pgx", dsn, nil
	default:
		return "", "", fmt.Errorf("sqldb: unsupported dialect %q", dialect)
	}
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable. Used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Dialect reports which SQL dialect the pool speaks.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Pool exposes the underlying pool for fixtures and ad-hoc inspection.
func (db *DB) Pool() *sql.DB {
	return db.conn
}

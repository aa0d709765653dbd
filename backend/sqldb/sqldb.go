// Package sqldb adapts any database/sql driver to the backend capability
// surface. It ships codecs and marker dialects for SQLite, PostgreSQL and
// MySQL; the drivers themselves are registered by blank imports.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/template"
)

// Adapter runs statements against a database/sql connection pool.
type Adapter struct {
	db       *sql.DB
	provider string
	dialect  template.Dialect
	codec    bind.Codec
}

// Open connects to the database for the given provider ("sqlite",
// "postgres"/"postgresql" or "mysql") and connection string.
func Open(provider, connectionString string) (*Adapter, error) {
	driverName := driverName(provider)
	if driverName == "" {
		return nil, fmt.Errorf("sqldb: unsupported provider: %s", provider)
	}

	db, err := sql.Open(driverName, connectionString)
	if err != nil {
		return nil, &backend.DriverError{Backend: provider, Op: "open", Err: err}
	}
	return FromDB(provider, db)
}

// FromDB wraps an existing connection pool.
func FromDB(provider string, db *sql.DB) (*Adapter, error) {
	dialect, codec, err := provision(provider)
	if err != nil {
		return nil, err
	}
	return &Adapter{db: db, provider: provider, dialect: dialect, codec: codec}, nil
}

// driverName maps provider names to registered database/sql driver names.
func driverName(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return ""
	}
}

func provision(provider string) (template.Dialect, bind.Codec, error) {
	switch provider {
	case "postgresql", "postgres":
		return template.Dollar{}, postgresCodec{}, nil
	case "mysql":
		return template.Question{}, sqlCodec{}, nil
	case "sqlite", "sqlite3":
		return template.Question{}, sqliteCodec{}, nil
	default:
		return nil, nil, fmt.Errorf("sqldb: unsupported provider: %s", provider)
	}
}

// Ping verifies the connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return &backend.DriverError{Backend: a.provider, Op: "ping", Err: err}
	}
	return nil
}

// DB returns the underlying connection pool.
func (a *Adapter) DB() *sql.DB { return a.db }

func (a *Adapter) Dialect() template.Dialect { return a.dialect }

func (a *Adapter) Codec() bind.Codec { return a.codec }

func (a *Adapter) Prepare(ctx context.Context, sqlText string) (backend.Stmt, error) {
	stmt, err := a.db.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, &backend.DriverError{Backend: a.provider, Op: "prepare", Err: err}
	}
	return &sqlStmt{stmt: stmt, sql: sqlText, provider: a.provider, codec: a.codec}, nil
}

func (a *Adapter) Begin(ctx context.Context) (backend.Tx, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &backend.DriverError{Backend: a.provider, Op: "begin", Err: err}
	}
	return &sqlTx{tx: tx, provider: a.provider, dialect: a.dialect, codec: a.codec}, nil
}

func (a *Adapter) Close(context.Context) error {
	if err := a.db.Close(); err != nil {
		return &backend.DriverError{Backend: a.provider, Op: "close", Err: err}
	}
	return nil
}

// sqlTx serializes statements through an open transaction.
type sqlTx struct {
	tx       *sql.Tx
	provider string
	dialect  template.Dialect
	codec    bind.Codec
}

func (t *sqlTx) Dialect() template.Dialect { return t.dialect }

func (t *sqlTx) Codec() bind.Codec { return t.codec }

func (t *sqlTx) Prepare(ctx context.Context, sqlText string) (backend.Stmt, error) {
	stmt, err := t.tx.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, &backend.DriverError{Backend: t.provider, Op: "prepare", Err: err}
	}
	return &sqlStmt{stmt: stmt, sql: sqlText, provider: t.provider, codec: t.codec}, nil
}

func (t *sqlTx) Begin(context.Context) (backend.Tx, error) {
	return nil, fmt.Errorf("sqldb: nested transactions are not supported")
}

func (t *sqlTx) Close(context.Context) error {
	// Ending the transaction is the owner's job, via Commit or Rollback.
	return nil
}

func (t *sqlTx) Commit(context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return &backend.DriverError{Backend: t.provider, Op: "commit", Err: err}
	}
	return nil
}

func (t *sqlTx) Rollback(context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return &backend.DriverError{Backend: t.provider, Op: "rollback", Err: err}
	}
	return nil
}

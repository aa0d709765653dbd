// Package backend defines the capability surface the query engine requires
// from a physical database driver: prepare a statement, run it, fetch one or
// many rows, and release it. Concrete adapters live in the sqldb and
// widecolumn subpackages.
package backend

import (
	"context"

	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/template"
)

// Result reports the outcome of a mutation. LastInsertID is nil when the
// backend does not report one.
type Result struct {
	RowsAffected int64
	LastInsertID *int64
}

// Adapter is the minimal surface a driver must expose. Adapters own their
// connection and statement handles exclusively; the engine never retains a
// handle beyond a single call except inside a Stmt the caller releases.
type Adapter interface {
	// Dialect reports the marker syntax used to render templates for
	// this backend.
	Dialect() template.Dialect

	// Codec converts between neutral bind values and the backend's
	// native representation.
	Codec() bind.Codec

	// Prepare compiles sql into a statement. The caller must release
	// the statement with Close exactly once.
	Prepare(ctx context.Context, sql string) (Stmt, error)

	// Begin starts a transaction. Queries issued through the returned
	// Tx are serialized by the underlying driver.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// Stmt is a prepared statement bound to a single in-flight bind/execute
// cycle at a time. Using a statement after Close is a programming error.
type Stmt interface {
	// Exec runs the statement as a mutation.
	Exec(ctx context.Context, args []bind.Value) (Result, error)

	// QueryRow fetches at most one row. The second return is false when
	// the result set is empty.
	QueryRow(ctx context.Context, args []bind.Value) (Row, bool, error)

	// Query fetches all rows.
	Query(ctx context.Context, args []bind.Value) ([]Row, error)

	// SQL returns the rendered statement text, for diagnostics.
	SQL() string

	// Close releases the statement handle. It must be called exactly
	// once per prepared statement.
	Close() error
}

// Tx is a transaction handle. It executes like an Adapter and must end with
// exactly one Commit or Rollback.
type Tx interface {
	Adapter
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Batcher is an optional adapter capability for backends with native batch
// execution (the wide-column adapter implements it).
type Batcher interface {
	// ExecBatch runs the given statements atomically where the backend
	// supports it. Each entry pairs a rendered template with its params.
	ExecBatch(ctx context.Context, entries []BatchEntry) error
}

// BatchEntry is one statement in a batch.
type BatchEntry struct {
	Template *template.Template
	Params   any
}

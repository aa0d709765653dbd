// Package widecolumn adapts a Cassandra/ScyllaDB cluster to the backend
// capability surface via gocql.
//
// The consistency level is a per-call concern of this backend only: callers
// set it on the context with WithConsistency and the engine forwards the
// context opaquely. Statements execute at the adapter's default level when
// the context carries none.
package widecolumn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/template"
)

// ErrNoTransactions is returned by Begin: the wide-column backend has no
// transaction capability to obtain.
var ErrNoTransactions = errors.New("widecolumn: transactions are not supported")

type consistencyKey struct{}

// WithConsistency returns a context that carries a per-call consistency
// level for this backend.
func WithConsistency(ctx context.Context, level gocql.Consistency) context.Context {
	return context.WithValue(ctx, consistencyKey{}, level)
}

func consistencyFrom(ctx context.Context) (gocql.Consistency, bool) {
	level, ok := ctx.Value(consistencyKey{}).(gocql.Consistency)
	return level, ok
}

// Adapter runs statements against a gocql session.
type Adapter struct {
	session     *gocql.Session
	keyspace    string
	consistency gocql.Consistency
	batchKind   gocql.BatchType
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDefaultConsistency sets the consistency level used when a call's
// context carries none.
func WithDefaultConsistency(level gocql.Consistency) Option {
	return func(a *Adapter) { a.consistency = level }
}

// WithLoggedBatches makes ExecBatch use logged (atomic) batches instead of
// unlogged ones.
func WithLoggedBatches() Option {
	return func(a *Adapter) { a.batchKind = gocql.LoggedBatch }
}

// Connect opens a session against the given cluster hosts and keyspace.
func Connect(hosts []string, keyspace string, opts ...Option) (*Adapter, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, &backend.DriverError{Backend: "widecolumn", Op: "connect", Err: err}
	}
	return FromSession(session, keyspace, opts...), nil
}

// FromSession wraps an existing gocql session.
func FromSession(session *gocql.Session, keyspace string, opts ...Option) *Adapter {
	a := &Adapter{
		session:     session,
		keyspace:    keyspace,
		consistency: gocql.Quorum,
		batchKind:   gocql.UnloggedBatch,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Dialect() template.Dialect { return template.Question{} }

func (a *Adapter) Codec() bind.Codec { return cqlCodec{} }

// Prepare records the statement text; gocql prepares server-side statements
// transparently on first execution.
func (a *Adapter) Prepare(_ context.Context, sqlText string) (backend.Stmt, error) {
	return &cqlStmt{adapter: a, sql: sqlText}, nil
}

func (a *Adapter) Begin(context.Context) (backend.Tx, error) {
	return nil, ErrNoTransactions
}

func (a *Adapter) Close(context.Context) error {
	a.session.Close()
	return nil
}

// ExecBatch runs the entries as one gocql batch, at the per-call consistency
// level when the context carries one.
func (a *Adapter) ExecBatch(ctx context.Context, entries []backend.BatchEntry) error {
	batch := a.session.NewBatch(a.batchKind).WithContext(ctx)
	batch.Cons = a.callConsistency(ctx)

	for _, entry := range entries {
		args, err := bind.Bind(entry.Template, entry.Params, a.Codec())
		if err != nil {
			return err
		}
		natives, err := decodeAll(args)
		if err != nil {
			return err
		}
		batch.Query(entry.Template.Render(a.Dialect()), natives...)
	}

	if err := a.session.ExecuteBatch(batch); err != nil {
		return &backend.DriverError{Backend: "widecolumn", Op: "batch", Err: err}
	}
	return nil
}

func (a *Adapter) callConsistency(ctx context.Context) gocql.Consistency {
	if level, ok := consistencyFrom(ctx); ok {
		return level
	}
	return a.consistency
}

func decodeAll(args []bind.Value) ([]any, error) {
	natives := make([]any, len(args))
	for i, arg := range args {
		n, err := cqlCodec{}.Decode(arg)
		if err != nil {
			return nil, err
		}
		natives[i] = n
	}
	return natives, nil
}

// cqlCodec opts into timestamps on top of the closed variant set: CQL
// timestamps are milliseconds since the epoch.
type cqlCodec struct {
	bind.DefaultCodec
}

func (c cqlCodec) Encode(native any) (bind.Value, error) {
	if t, ok := native.(time.Time); ok {
		return bind.Integer(t.UnixMilli()), nil
	}
	return c.DefaultCodec.Encode(native)
}

// rowValue converts a gocql-reported column value into a neutral value.
func rowValue(v any) (bind.Value, error) {
	switch val := v.(type) {
	case nil:
		return bind.Null(), nil
	case int:
		return bind.Integer(int64(val)), nil
	case int64:
		return bind.Integer(val), nil
	case int16:
		return bind.Integer(int64(val)), nil
	case int8:
		return bind.Integer(int64(val)), nil
	case float32:
		return bind.Float(float64(val)), nil
	case float64:
		return bind.Float(val), nil
	case bool:
		return bind.Boolean(val), nil
	case string:
		return bind.Text(val), nil
	case []byte:
		return bind.Blob(val), nil
	case time.Time:
		return bind.Integer(val.UnixMilli()), nil
	case gocql.UUID:
		return bind.Text(val.String()), nil
	default:
		return bind.Value{}, fmt.Errorf("widecolumn: unhandled column value of type %T", v)
	}
}

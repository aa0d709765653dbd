package widecolumn

import (
	"context"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
)

// cqlStmt executes one statement text against the adapter's session.
type cqlStmt struct {
	adapter *Adapter
	sql     string
}

func (s *cqlStmt) SQL() string { return s.sql }

// Close is a no-op: gocql owns the server-side prepared statement cache.
func (s *cqlStmt) Close() error { return nil }

// Exec runs a mutation. CQL reports neither affected-row counts nor insert
// ids, so the result carries zero rows affected and no last insert id.
func (s *cqlStmt) Exec(ctx context.Context, args []bind.Value) (backend.Result, error) {
	natives, err := decodeAll(args)
	if err != nil {
		return backend.Result{}, err
	}

	q := s.adapter.session.Query(s.sql, natives...).
		WithContext(ctx).
		Consistency(s.adapter.callConsistency(ctx))
	defer q.Release()

	if err := q.Exec(); err != nil {
		return backend.Result{}, &backend.DriverError{Backend: "widecolumn", Op: "exec", Err: err}
	}
	return backend.Result{}, nil
}

func (s *cqlStmt) QueryRow(ctx context.Context, args []bind.Value) (backend.Row, bool, error) {
	rows, err := s.fetch(ctx, args, 1)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}

func (s *cqlStmt) Query(ctx context.Context, args []bind.Value) ([]backend.Row, error) {
	return s.fetch(ctx, args, 0)
}

// fetch materializes up to limit rows (limit 0 means all).
func (s *cqlStmt) fetch(ctx context.Context, args []bind.Value, limit int) ([]backend.Row, error) {
	natives, err := decodeAll(args)
	if err != nil {
		return nil, err
	}

	q := s.adapter.session.Query(s.sql, natives...).
		WithContext(ctx).
		Consistency(s.adapter.callConsistency(ctx))
	defer q.Release()

	iter := q.Iter()
	info := iter.Columns()
	columns := make([]string, len(info))
	for i, c := range info {
		columns[i] = c.Name
	}

	var out []backend.Row
	for limit == 0 || len(out) < limit {
		scanned := map[string]any{}
		if !iter.MapScan(scanned) {
			break
		}

		values := make([]bind.Value, len(columns))
		for i, name := range columns {
			value, err := rowValue(scanned[name])
			if err != nil {
				iter.Close()
				return nil, &backend.DriverError{Backend: "widecolumn", Op: "scan", Err: err}
			}
			values[i] = value
		}
		out = append(out, backend.NewRow(columns, values))
	}

	if err := iter.Close(); err != nil {
		return nil, &backend.DriverError{Backend: "widecolumn", Op: "fetch", Err: err}
	}
	return out, nil
}

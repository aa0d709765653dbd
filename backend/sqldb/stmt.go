package sqldb

import (
	"context"
	"database/sql"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
)

// sqlStmt wraps a prepared database/sql statement together with its rendered
// SQL text for diagnostics.
type sqlStmt struct {
	stmt     *sql.Stmt
	sql      string
	provider string
	codec    bind.Codec
}

func (s *sqlStmt) SQL() string { return s.sql }

func (s *sqlStmt) Exec(ctx context.Context, args []bind.Value) (backend.Result, error) {
	natives, err := s.natives(args)
	if err != nil {
		return backend.Result{}, err
	}

	res, err := s.stmt.ExecContext(ctx, natives...)
	if err != nil {
		return backend.Result{}, &backend.DriverError{Backend: s.provider, Op: "exec", Err: err}
	}

	var result backend.Result
	if affected, err := res.RowsAffected(); err == nil {
		result.RowsAffected = affected
	}
	// lib/pq reports no last insert id; leave it nil there.
	if id, err := res.LastInsertId(); err == nil {
		result.LastInsertID = &id
	}
	return result, nil
}

func (s *sqlStmt) QueryRow(ctx context.Context, args []bind.Value) (backend.Row, bool, error) {
	rows, err := s.query(ctx, args)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, &backend.DriverError{Backend: s.provider, Op: "fetch", Err: err}
		}
		return nil, false, nil
	}

	row, err := s.materialize(rows)
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

func (s *sqlStmt) Query(ctx context.Context, args []bind.Value) ([]backend.Row, error) {
	rows, err := s.query(ctx, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backend.Row
	for rows.Next() {
		row, err := s.materialize(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &backend.DriverError{Backend: s.provider, Op: "fetch", Err: err}
	}
	return out, nil
}

func (s *sqlStmt) Close() error {
	if err := s.stmt.Close(); err != nil {
		return &backend.DriverError{Backend: s.provider, Op: "close", Err: err}
	}
	return nil
}

func (s *sqlStmt) query(ctx context.Context, args []bind.Value) (*sql.Rows, error) {
	natives, err := s.natives(args)
	if err != nil {
		return nil, err
	}
	rows, err := s.stmt.QueryContext(ctx, natives...)
	if err != nil {
		return nil, &backend.DriverError{Backend: s.provider, Op: "query", Err: err}
	}
	return rows, nil
}

func (s *sqlStmt) natives(args []bind.Value) ([]any, error) {
	natives := make([]any, len(args))
	for i, a := range args {
		n, err := s.codec.Decode(a)
		if err != nil {
			return nil, err
		}
		natives[i] = n
	}
	return natives, nil
}

// materialize scans the current row into a neutral backend.Row so it stays
// valid after the statement is released. Column type names disambiguate the
// []byte values some drivers return for both text and binary columns.
func (s *sqlStmt) materialize(rows *sql.Rows) (backend.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, &backend.DriverError{Backend: s.provider, Op: "columns", Err: err}
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, &backend.DriverError{Backend: s.provider, Op: "columns", Err: err}
	}

	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, &backend.DriverError{Backend: s.provider, Op: "scan", Err: err}
	}

	values := make([]bind.Value, len(columns))
	for i, v := range raw {
		value, err := scanValue(v, types[i].DatabaseTypeName())
		if err != nil {
			return nil, &backend.DriverError{Backend: s.provider, Op: "scan", Err: err}
		}
		values[i] = value
	}
	return backend.NewRow(columns, values), nil
}

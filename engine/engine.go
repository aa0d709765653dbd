// Package engine orchestrates template rendering, parameter binding, backend
// execution and row decoding for the four query shapes: mutation, multi-row,
// single-row and raw.
//
// Every call follows the same statement lifecycle: prepare, bind, run,
// release. Release is guaranteed on all exit paths, including bind failures,
// decode failures and driver errors, and happens exactly once per call.
package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/decode"
	"github.com/sqlbound/sqlbound/template"
)

// ErrCardinality is the category for row-count violations in
// QueryExactlyOne.
var ErrCardinality = errors.New("unexpected row count")

// CardinalityError reports a result-set size that violates an exactly-one
// expectation.
type CardinalityError struct {
	SQL  string
	Rows int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("expected exactly one row, got %d: %s", e.Rows, e.SQL)
}

func (e *CardinalityError) Unwrap() error { return ErrCardinality }

// Exec runs tmpl as a mutation and reports affected rows and, where the
// backend provides one, the last insert id. No decoding is performed.
func Exec(ctx context.Context, ad backend.Adapter, tmpl *template.Template, params any) (backend.Result, error) {
	var result backend.Result
	err := withStmt(ctx, ad, tmpl, params, func(stmt backend.Stmt, args []bind.Value) error {
		var err error
		result, err = stmt.Exec(ctx, args)
		return err
	})
	return result, err
}

// Query fetches all rows for tmpl and decodes each into dest, which must be
// a pointer to a slice of structs. Decoding is fail-fast: the first failing
// row aborts the call with its decode error, no partial results are
// returned, and rows past the failing one are never decoded.
func Query(ctx context.Context, ad backend.Adapter, tmpl *template.Template, params any, dest any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("engine: dest must be a non-nil pointer to slice, got %T", dest)
	}

	rows, err := QueryRaw(ctx, ad, tmpl, params)
	if err != nil {
		return err
	}

	sliceValue := dv.Elem()
	elemType := sliceValue.Type().Elem()
	decoded := reflect.MakeSlice(sliceValue.Type(), 0, len(rows))

	for _, r := range rows {
		elem := reflect.New(elemType)
		if err := decode.Row(r, elem.Interface()); err != nil {
			return err
		}
		decoded = reflect.Append(decoded, elem.Elem())
	}

	sliceValue.Set(decoded)
	return nil
}

// QueryOne fetches at most one row and decodes it into dest. It returns
// false with a nil error when the result set is empty; rows beyond the
// first are never read.
func QueryOne(ctx context.Context, ad backend.Adapter, tmpl *template.Template, params any, dest any) (bool, error) {
	var (
		row   backend.Row
		found bool
	)
	err := withStmt(ctx, ad, tmpl, params, func(stmt backend.Stmt, args []bind.Value) error {
		var err error
		row, found, err = stmt.QueryRow(ctx, args)
		return err
	})
	if err != nil || !found {
		return false, err
	}
	if err := decode.Row(row, dest); err != nil {
		return false, err
	}
	return true, nil
}

// QueryExactlyOne is QueryOne with a strict cardinality contract: a result
// set of zero rows or of more than one row fails with *CardinalityError.
func QueryExactlyOne(ctx context.Context, ad backend.Adapter, tmpl *template.Template, params any, dest any) error {
	rows, err := QueryRaw(ctx, ad, tmpl, params)
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return &CardinalityError{SQL: tmpl.Text(), Rows: len(rows)}
	}
	return decode.Row(rows[0], dest)
}

// QueryRaw fetches all rows without decoding, for callers that accept the
// risk of working with raw rows.
func QueryRaw(ctx context.Context, ad backend.Adapter, tmpl *template.Template, params any) ([]backend.Row, error) {
	var rows []backend.Row
	err := withStmt(ctx, ad, tmpl, params, func(stmt backend.Stmt, args []bind.Value) error {
		var err error
		rows, err = stmt.Query(ctx, args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// withStmt runs one prepare/bind/run/release cycle. The deferred Close makes
// the release guarantee hold on every exit path.
func withStmt(ctx context.Context, ad backend.Adapter, tmpl *template.Template, params any, run func(backend.Stmt, []bind.Value) error) (err error) {
	stmt, err := ad.Prepare(ctx, tmpl.Render(ad.Dialect()))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	args, err := bind.Bind(tmpl, params, ad.Codec())
	if err != nil {
		return err
	}

	return run(stmt, args)
}

// Package client provides a request-scoped session over a backend adapter:
// cached template compilation, a middleware chain for query events, and
// function-scoped transactions. It threads the connection explicitly rather
// than through ambient state; typed failures from the engine compose at the
// caller via errors.Is and errors.As.
package client

import (
	"context"
	"fmt"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/engine"
	"github.com/sqlbound/sqlbound/template"
)

// Session executes templated queries against one adapter.
type Session struct {
	adapter     backend.Adapter
	middlewares []Middleware
}

// New creates a session over the given adapter.
func New(adapter backend.Adapter) *Session {
	return &Session{adapter: adapter}
}

// Adapter returns the backend handle the session threads through its calls.
func (s *Session) Adapter() backend.Adapter { return s.adapter }

// Use appends a middleware to the chain. Middlewares run in registration
// order around every query the session executes.
func (s *Session) Use(mw Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

// Exec runs sqlText as a mutation.
func (s *Session) Exec(ctx context.Context, sqlText string, params any) (backend.Result, error) {
	tmpl, err := template.Cached(sqlText)
	if err != nil {
		return backend.Result{}, err
	}
	var result backend.Result
	err = s.observe(ctx, sqlText, params, func() error {
		var err error
		result, err = engine.Exec(ctx, s.adapter, tmpl, params)
		return err
	})
	return result, err
}

// Query fetches all rows into dest, a pointer to a slice of structs.
func (s *Session) Query(ctx context.Context, sqlText string, params any, dest any) error {
	tmpl, err := template.Cached(sqlText)
	if err != nil {
		return err
	}
	return s.observe(ctx, sqlText, params, func() error {
		return engine.Query(ctx, s.adapter, tmpl, params, dest)
	})
}

// QueryOne fetches at most one row into dest. It returns false when the
// result set is empty.
func (s *Session) QueryOne(ctx context.Context, sqlText string, params any, dest any) (bool, error) {
	tmpl, err := template.Cached(sqlText)
	if err != nil {
		return false, err
	}
	var found bool
	err = s.observe(ctx, sqlText, params, func() error {
		var err error
		found, err = engine.QueryOne(ctx, s.adapter, tmpl, params, dest)
		return err
	})
	return found, err
}

// QueryExactlyOne fetches exactly one row into dest, failing with the
// engine's cardinality error otherwise.
func (s *Session) QueryExactlyOne(ctx context.Context, sqlText string, params any, dest any) error {
	tmpl, err := template.Cached(sqlText)
	if err != nil {
		return err
	}
	return s.observe(ctx, sqlText, params, func() error {
		return engine.QueryExactlyOne(ctx, s.adapter, tmpl, params, dest)
	})
}

// QueryRaw fetches all rows without decoding.
func (s *Session) QueryRaw(ctx context.Context, sqlText string, params any) ([]backend.Row, error) {
	tmpl, err := template.Cached(sqlText)
	if err != nil {
		return nil, err
	}
	var rows []backend.Row
	err = s.observe(ctx, sqlText, params, func() error {
		var err error
		rows, err = engine.QueryRaw(ctx, s.adapter, tmpl, params)
		return err
	})
	return rows, err
}

// ExecBatch forwards a batch to the adapter when it has the capability.
func (s *Session) ExecBatch(ctx context.Context, entries []backend.BatchEntry) error {
	batcher, ok := s.adapter.(backend.Batcher)
	if !ok {
		return fmt.Errorf("client: backend does not support batch execution")
	}
	return batcher.ExecBatch(ctx, entries)
}

// Transaction runs fn inside a transaction obtained from the adapter. The
// transaction is committed when fn returns nil and rolled back otherwise;
// a rollback failure is reported alongside fn's error.
func (s *Session) Transaction(ctx context.Context, fn func(tx *Session) error) error {
	tx, err := s.adapter.Begin(ctx)
	if err != nil {
		return err
	}

	txSession := &Session{adapter: tx, middlewares: s.middlewares}
	if err := fn(txSession); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

// Close releases the underlying adapter.
func (s *Session) Close(ctx context.Context) error {
	return s.adapter.Close(ctx)
}

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/template"
)

type memAdapter struct {
	rows     []backend.Row
	result   backend.Result
	runErr   error
	begun    int
	commits  int
	rollback int
}

func (a *memAdapter) Dialect() template.Dialect { return template.Question{} }
func (a *memAdapter) Codec() bind.Codec         { return bind.DefaultCodec{} }

func (a *memAdapter) Prepare(_ context.Context, sql string) (backend.Stmt, error) {
	return &memStmt{adapter: a, sql: sql}, nil
}

func (a *memAdapter) Begin(context.Context) (backend.Tx, error) {
	a.begun++
	return &memTx{memAdapter: a}, nil
}

func (a *memAdapter) Close(context.Context) error { return nil }

type memTx struct {
	*memAdapter
}

func (t *memTx) Commit(context.Context) error {
	t.commits++
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	t.rollback++
	return nil
}

func (t *memTx) Close(context.Context) error { return nil }

type memStmt struct {
	adapter *memAdapter
	sql     string
}

func (s *memStmt) SQL() string { return s.sql }

func (s *memStmt) Exec(context.Context, []bind.Value) (backend.Result, error) {
	return s.adapter.result, s.adapter.runErr
}

func (s *memStmt) QueryRow(context.Context, []bind.Value) (backend.Row, bool, error) {
	if s.adapter.runErr != nil || len(s.adapter.rows) == 0 {
		return nil, false, s.adapter.runErr
	}
	return s.adapter.rows[0], true, nil
}

func (s *memStmt) Query(context.Context, []bind.Value) ([]backend.Row, error) {
	return s.adapter.rows, s.adapter.runErr
}

func (s *memStmt) Close() error { return nil }

type record struct {
	ID int64 `db:"id"`
}

func TestSessionQuery(t *testing.T) {
	ad := &memAdapter{rows: []backend.Row{
		backend.NewRow([]string{"id"}, []bind.Value{bind.Integer(1)}),
		backend.NewRow([]string{"id"}, []bind.Value{bind.Integer(2)}),
	}}
	session := New(ad)

	var out []record
	if err := session.Query(context.Background(), "SELECT id FROM t WHERE id > {min}", map[string]any{"min": 0}, &out); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(out) != 2 || out[1].ID != 2 {
		t.Errorf("decoded %+v", out)
	}
}

func TestSessionPropagatesTemplateError(t *testing.T) {
	session := New(&memAdapter{})

	var out []record
	if err := session.Query(context.Background(), "SELECT {", nil, &out); !errors.Is(err, template.ErrTemplate) {
		t.Errorf("err = %v, want ErrTemplate", err)
	}
}

func TestMiddlewareOrderAndEvent(t *testing.T) {
	ad := &memAdapter{result: backend.Result{RowsAffected: 1}}
	session := New(ad)

	var order []string
	session.Use(func(ctx context.Context, event *QueryEvent, next func() error) error {
		order = append(order, "first-before")
		err := next()
		order = append(order, "first-after")
		if event.Error != nil {
			t.Errorf("event.Error = %v, want nil", event.Error)
		}
		if event.Duration < 0 {
			t.Error("event.Duration not populated")
		}
		return err
	})
	session.Use(func(ctx context.Context, event *QueryEvent, next func() error) error {
		order = append(order, "second-before")
		err := next()
		order = append(order, "second-after")
		return err
	})

	if _, err := session.Exec(context.Background(), "DELETE FROM t WHERE id = {id}", map[string]any{"id": 1}); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	want := []string{"first-before", "second-before", "second-after", "first-after"}
	for i, step := range want {
		if i >= len(order) || order[i] != step {
			t.Fatalf("middleware order = %v, want %v", order, want)
		}
	}
}

func TestMiddlewareSeesError(t *testing.T) {
	runErr := errors.New("boom")
	ad := &memAdapter{runErr: runErr}
	session := New(ad)

	var seen error
	session.Use(ErrorMiddleware(func(sql string, err error) {
		seen = err
	}))

	if _, err := session.Exec(context.Background(), "DELETE FROM t", nil); !errors.Is(err, runErr) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !errors.Is(seen, runErr) {
		t.Errorf("middleware saw %v, want boom", seen)
	}
}

func TestTransactionCommit(t *testing.T) {
	ad := &memAdapter{result: backend.Result{RowsAffected: 1}}
	session := New(ad)

	err := session.Transaction(context.Background(), func(tx *Session) error {
		_, err := tx.Exec(context.Background(), "UPDATE t SET a = {a}", map[string]any{"a": 1})
		return err
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}
	if ad.begun != 1 || ad.commits != 1 || ad.rollback != 0 {
		t.Errorf("begun=%d commits=%d rollbacks=%d", ad.begun, ad.commits, ad.rollback)
	}
}

func TestTransactionRollbackOnError(t *testing.T) {
	ad := &memAdapter{}
	session := New(ad)

	failure := errors.New("insert failed")
	err := session.Transaction(context.Background(), func(tx *Session) error {
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want insert failed", err)
	}
	if ad.commits != 0 || ad.rollback != 1 {
		t.Errorf("commits=%d rollbacks=%d, want 0/1", ad.commits, ad.rollback)
	}
}

func TestQueryOneThroughSession(t *testing.T) {
	ad := &memAdapter{rows: []backend.Row{
		backend.NewRow([]string{"id"}, []bind.Value{bind.Integer(7)}),
	}}
	session := New(ad)

	var r record
	found, err := session.QueryOne(context.Background(), "SELECT id FROM t WHERE id = {id}", map[string]any{"id": 7}, &r)
	if err != nil {
		t.Fatalf("QueryOne failed: %v", err)
	}
	if !found || r.ID != 7 {
		t.Errorf("found=%t r=%+v", found, r)
	}
}

func TestExecBatchRequiresCapability(t *testing.T) {
	session := New(&memAdapter{})
	err := session.ExecBatch(context.Background(), []backend.BatchEntry{
		{Template: template.MustCompile("INSERT INTO t (a) VALUES ({a})"), Params: map[string]any{"a": 1}},
	})
	if err == nil {
		t.Error("expected error for adapter without batch capability")
	}
}

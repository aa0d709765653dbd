package commands

import (
	"testing"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"null", nil},
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.5", 3.5},
		{"Bob", "Bob"},
		{"str:42", "42"},
		{"str:true", "true"},
	}

	for _, tt := range tests {
		if got := parseLiteral(tt.raw); got != tt.want {
			t.Errorf("parseLiteral(%q) = %v (%T), want %v (%T)", tt.raw, got, got, tt.want, tt.want)
		}
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"id=1", "name=Bob", "note=null"})
	if err != nil {
		t.Fatalf("parseParams failed: %v", err)
	}
	if params["id"] != int64(1) || params["name"] != "Bob" || params["note"] != nil {
		t.Errorf("params = %v", params)
	}

	if _, err := parseParams([]string{"no-equals"}); err == nil {
		t.Error("expected error for malformed pair")
	}
	if _, err := parseParams([]string{"=v"}); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestTabulate(t *testing.T) {
	rows := []backend.Row{
		backend.NewRow([]string{"id", "name"}, []bind.Value{bind.Integer(1), bind.Text("Alice")}),
		backend.NewRow([]string{"id", "name"}, []bind.Value{bind.Integer(2), bind.Null()}),
	}

	headers, cells := tabulate(rows)
	if len(headers) != 2 || headers[0] != "id" {
		t.Errorf("headers = %v", headers)
	}
	if len(cells) != 2 || cells[0][1] != "Alice" || cells[1][1] != "NULL" {
		t.Errorf("cells = %v", cells)
	}

	if h, c := tabulate(nil); h != nil || c != nil {
		t.Errorf("tabulate(nil) = %v/%v, want nil/nil", h, c)
	}
}

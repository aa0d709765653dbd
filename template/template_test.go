package template

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompilePlaceholderOrder(t *testing.T) {
	tmpl, err := Compile("SELECT * FROM test WHERE id = {id} AND name = {name}")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := []string{"id", "name"}
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}
}

func TestCompileDuplicatePlaceholders(t *testing.T) {
	tmpl, err := Compile("SELECT * FROM t WHERE a = {x} OR b = {x} OR c = {y}")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := []string{"x", "x", "y"}
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}
}

func TestCompileNoPlaceholders(t *testing.T) {
	tmpl, err := Compile("SELECT 1")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got := tmpl.Placeholders(); len(got) != 0 {
		t.Errorf("expected no placeholders, got %v", got)
	}
	if got := tmpl.Render(Question{}); got != "SELECT 1" {
		t.Errorf("Render = %q, want unchanged text", got)
	}
}

func TestCompileEscapedBrace(t *testing.T) {
	tmpl, err := Compile("SELECT '{{a}' FROM t WHERE id = {id}")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got := tmpl.Render(Question{}); got != "SELECT '{a}' FROM t WHERE id = ?" {
		t.Errorf("Render = %q", got)
	}
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, []string{"id"}) {
		t.Errorf("Placeholders() = %v", got)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"unterminated", "SELECT * FROM t WHERE id = {id"},
		{"empty name", "SELECT * FROM t WHERE id = {}"},
		{"invalid name", "SELECT * FROM t WHERE id = {1bad}"},
		{"space in name", "SELECT * FROM t WHERE id = {bad name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.sql); !errors.Is(err, ErrTemplate) {
				t.Errorf("Compile(%q) err = %v, want ErrTemplate", tt.sql, err)
			}
		})
	}
}

func TestCompileErrorOffset(t *testing.T) {
	_, err := Compile("SELECT {ok} FROM t WHERE x = {")
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Offset != 29 {
		t.Errorf("Offset = %d, want 29", terr.Offset)
	}
}

func TestRenderDialects(t *testing.T) {
	tmpl := MustCompile("UPDATE t SET a = {a}, b = {b} WHERE id = {id}")

	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{"question", Question{}, "UPDATE t SET a = ?, b = ? WHERE id = ?"},
		{"dollar", Dollar{}, "UPDATE t SET a = $1, b = $2 WHERE id = $3"},
		{"named", Named{}, "UPDATE t SET a = :a, b = :b WHERE id = :id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tmpl.Render(tt.dialect); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDuplicatePositions(t *testing.T) {
	tmpl := MustCompile("SELECT * FROM t WHERE a = {x} OR b = {x}")
	if got := tmpl.Render(Dollar{}); got != "SELECT * FROM t WHERE a = $1 OR b = $2" {
		t.Errorf("Render = %q, duplicate occurrences must get distinct positions", got)
	}
}

func TestPlaceholdersReturnsCopy(t *testing.T) {
	tmpl := MustCompile("SELECT {a}")
	tmpl.Placeholders()[0] = "mutated"
	if got := tmpl.Placeholders()[0]; got != "a" {
		t.Errorf("template mutated through Placeholders(): %q", got)
	}
}

func TestCachedReturnsSameTemplate(t *testing.T) {
	ClearCache()
	a, err := Cached("SELECT {id}")
	if err != nil {
		t.Fatalf("Cached failed: %v", err)
	}
	b, err := Cached("SELECT {id}")
	if err != nil {
		t.Fatalf("Cached failed: %v", err)
	}
	if a != b {
		t.Error("expected identical *Template for identical text")
	}
}

func TestCachedPropagatesErrors(t *testing.T) {
	ClearCache()
	if _, err := Cached("SELECT {"); !errors.Is(err, ErrTemplate) {
		t.Errorf("err = %v, want ErrTemplate", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustCompile("SELECT {")
}

package sqldb

import (
	"testing"
	"time"

	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/template"
)

func TestDriverNames(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"mysql", "mysql"},
		{"sqlite", "sqlite3"},
		{"sqlite3", "sqlite3"},
		{"oracle", ""},
	}
	for _, tt := range tests {
		if got := driverName(tt.provider); got != tt.want {
			t.Errorf("driverName(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestProvisionDialects(t *testing.T) {
	pgDialect, _, err := provision("postgres")
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if _, ok := pgDialect.(template.Dollar); !ok {
		t.Errorf("postgres dialect = %T, want Dollar", pgDialect)
	}

	liteDialect, _, err := provision("sqlite")
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if _, ok := liteDialect.(template.Question); !ok {
		t.Errorf("sqlite dialect = %T, want Question", liteDialect)
	}

	if _, _, err := provision("oracle"); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestSQLiteCodecBooleans(t *testing.T) {
	codec := sqliteCodec{}

	for _, tt := range []struct {
		in   bool
		want int64
	}{{true, 1}, {false, 0}} {
		native, err := codec.Decode(bind.Boolean(tt.in))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got, ok := native.(int64); !ok || got != tt.want {
			t.Errorf("Decode(Boolean(%t)) = %v, want %d", tt.in, native, tt.want)
		}
	}
}

func TestPostgresCodecTimestamp(t *testing.T) {
	codec := postgresCodec{}

	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	v, err := codec.Encode(ts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if v.Kind() != bind.KindText || v.String() != "2024-05-01T12:30:00Z" {
		t.Errorf("Encode(time) = %v", v)
	}
}

func TestPostgresCodecArrays(t *testing.T) {
	codec := postgresCodec{}

	v, err := codec.Encode([]string{"a", "b"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if v.Kind() != bind.KindText {
		t.Fatalf("Encode([]string).Kind() = %v, want KindText", v.Kind())
	}
	if v.String() != `{"a","b"}` {
		t.Errorf("array literal = %q", v.String())
	}

	iv, err := codec.Encode([]int64{1, 2, 3})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if iv.String() != "{1,2,3}" {
		t.Errorf("array literal = %q", iv.String())
	}
}

func TestPostgresCodecStillRejectsUnknownTypes(t *testing.T) {
	codec := postgresCodec{}
	if _, err := codec.Encode(struct{ X int }{1}); err == nil {
		t.Error("expected error for unmapped struct type")
	}
}

func TestScanValue(t *testing.T) {
	tests := []struct {
		name   string
		native any
		dbType string
		want   bind.Kind
	}{
		{"int", int64(1), "INTEGER", bind.KindInteger},
		{"float", 1.5, "REAL", bind.KindFloat},
		{"bool", true, "BOOL", bind.KindBoolean},
		{"string", "x", "TEXT", bind.KindText},
		{"null", nil, "TEXT", bind.KindNull},
		{"text bytes", []byte("abc"), "VARCHAR", bind.KindText},
		{"blob bytes", []byte{1, 2}, "BLOB", bind.KindBlob},
		{"bytea", []byte{1, 2}, "BYTEA", bind.KindBlob},
		{"timestamp", time.Unix(0, 0).UTC(), "TIMESTAMP", bind.KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := scanValue(tt.native, tt.dbType)
			if err != nil {
				t.Fatalf("scanValue failed: %v", err)
			}
			if v.Kind() != tt.want {
				t.Errorf("Kind = %v, want %v", v.Kind(), tt.want)
			}
		})
	}

	if _, err := scanValue(complex(1, 2), "TEXT"); err == nil {
		t.Error("expected error for unhandled driver type")
	}
}

package sqldb

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/sqlbound/sqlbound/bind"
)

// sqlCodec is the shared database/sql codec. MySQL uses it as is.
type sqlCodec struct {
	bind.DefaultCodec
}

// sqliteCodec maps booleans onto SQLite's canonical 0/1 integers, since the
// backend has no native boolean type.
type sqliteCodec struct {
	bind.DefaultCodec
}

func (c sqliteCodec) Decode(v bind.Value) (any, error) {
	if v.Kind() == bind.KindBoolean {
		if v.Bool() {
			return int64(1), nil
		}
		return int64(0), nil
	}
	return c.DefaultCodec.Decode(v)
}

// postgresCodec opts into timestamps and array parameters on top of the
// closed variant set: both are carried as their PostgreSQL text form, which
// the server casts back to the column type.
type postgresCodec struct {
	bind.DefaultCodec
}

func (c postgresCodec) Encode(native any) (bind.Value, error) {
	switch v := native.(type) {
	case time.Time:
		return bind.Text(v.Format(time.RFC3339Nano)), nil
	case []string, []int64, []int32, []float64, []bool:
		arr, err := pq.Array(v).Value()
		if err != nil {
			return bind.Value{}, err
		}
		switch lit := arr.(type) {
		case string:
			return bind.Text(lit), nil
		case []byte:
			return bind.Text(string(lit)), nil
		}
	}
	return c.DefaultCodec.Encode(native)
}

// scanValue converts a driver-reported column value into a neutral value.
// Drivers that report both text and binary columns as []byte are split on
// the database type name.
func scanValue(v any, dbType string) (bind.Value, error) {
	switch val := v.(type) {
	case nil:
		return bind.Null(), nil
	case int64:
		return bind.Integer(val), nil
	case float64:
		return bind.Float(val), nil
	case bool:
		return bind.Boolean(val), nil
	case string:
		return bind.Text(val), nil
	case time.Time:
		return bind.Text(val.Format(time.RFC3339Nano)), nil
	case []byte:
		if binaryType(dbType) {
			return bind.Blob(val), nil
		}
		return bind.Text(string(val)), nil
	default:
		return bind.Value{}, fmt.Errorf("unhandled driver value of type %T for column type %s", v, dbType)
	}
}

func binaryType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "BLOB", "BYTEA", "BINARY", "VARBINARY", "LONGBLOB", "MEDIUMBLOB", "TINYBLOB":
		return true
	default:
		return false
	}
}

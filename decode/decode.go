// Package decode converts fetched rows into statically-declared result
// structs. Decoding walks the declared field set of the destination, reads
// each named column from the row, and type-checks the value against the
// declared field type. A shape mismatch is reported as a typed error naming
// the field; it is never papered over with a default value.
package decode

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/bind"
)

// ErrDecode is the category for row decode failures.
var ErrDecode = errors.New("row decode failure")

// Error reports a per-field decode failure.
type Error struct {
	Field  string
	Column string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode field %s (column %q): %s", e.Field, e.Column, e.Reason)
}

func (e *Error) Unwrap() error { return ErrDecode }

// Row decodes row into dest, which must be a pointer to a struct. Fields map
// to columns by `db` tag, falling back to the snake_case of the field name;
// fields tagged `db:"-"` are skipped. Columns present in the row but not
// declared on dest are ignored. A missing column or a kind mismatch yields
// a *Error naming the field.
func Row(row backend.Row, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode: dest must be a non-nil pointer to struct, got %T", dest)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("decode: dest must point to a struct, got %T", dest)
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || field.Tag.Get("db") == "-" {
			continue
		}

		column := bind.ColumnName(field)
		value, ok := row.Column(column)
		if !ok {
			return &Error{Field: field.Name, Column: column, Reason: "missing column"}
		}

		if err := setField(rv.Field(i), value); err != nil {
			return &Error{Field: field.Name, Column: column, Reason: err.Error()}
		}
	}
	return nil
}

// setField assigns a neutral value to a struct field, enforcing the kind
// rules: integers widen to integer and float fields, floats stay floats,
// null only fills pointer fields.
func setField(fv reflect.Value, value bind.Value) error {
	ft := fv.Type()

	if ft.Kind() == reflect.Ptr {
		if value.IsNull() {
			fv.Set(reflect.Zero(ft))
			return nil
		}
		ev := reflect.New(ft.Elem()).Elem()
		if err := setField(ev, value); err != nil {
			return err
		}
		fv.Set(ev.Addr())
		return nil
	}

	if value.IsNull() {
		return fmt.Errorf("column is NULL but field type %s is not nullable", ft)
	}

	switch ft.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value.Kind() != bind.KindInteger {
			return kindMismatch(value, ft)
		}
		if fv.OverflowInt(value.Int64()) {
			return fmt.Errorf("integer %d overflows field type %s", value.Int64(), ft)
		}
		fv.SetInt(value.Int64())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value.Kind() != bind.KindInteger {
			return kindMismatch(value, ft)
		}
		i := value.Int64()
		if i < 0 || fv.OverflowUint(uint64(i)) {
			return fmt.Errorf("integer %d overflows field type %s", i, ft)
		}
		fv.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		switch value.Kind() {
		case bind.KindFloat:
			if fv.OverflowFloat(value.Float64()) {
				return fmt.Errorf("float %g overflows field type %s", value.Float64(), ft)
			}
			fv.SetFloat(value.Float64())
		case bind.KindInteger:
			fv.SetFloat(float64(value.Int64()))
		default:
			return kindMismatch(value, ft)
		}
	case reflect.String:
		if value.Kind() != bind.KindText {
			return kindMismatch(value, ft)
		}
		fv.SetString(value.String())
	case reflect.Bool:
		switch value.Kind() {
		case bind.KindBoolean:
			fv.SetBool(value.Bool())
		case bind.KindInteger:
			// Backends without a native boolean report 0/1.
			switch value.Int64() {
			case 0:
				fv.SetBool(false)
			case 1:
				fv.SetBool(true)
			default:
				return fmt.Errorf("integer %d is not a boolean", value.Int64())
			}
		default:
			return kindMismatch(value, ft)
		}
	case reflect.Slice:
		if ft.Elem().Kind() != reflect.Uint8 {
			return kindMismatch(value, ft)
		}
		if value.Kind() != bind.KindBlob {
			return kindMismatch(value, ft)
		}
		fv.SetBytes(value.Bytes())
	default:
		return kindMismatch(value, ft)
	}
	return nil
}

func kindMismatch(value bind.Value, ft reflect.Type) error {
	return fmt.Errorf("cannot assign %s value to field type %s", value.Kind(), ft)
}

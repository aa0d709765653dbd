package bind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sqlbound/sqlbound/template"
)

// Bind maps a params record onto the ordered bind positions of a compiled
// template, converting each field through the backend's codec. The result
// has one entry per placeholder occurrence, in source occurrence order;
// a duplicated placeholder name binds the same field to every occurrence.
//
// params is either a struct (fields named by their `db` tag, falling back to
// the snake_case of the field name) or a map[string]any. Binding performs no
// I/O and is deterministic for a well-formed template/record pair.
func Bind(t *template.Template, params any, codec Codec) ([]Value, error) {
	// The record is validated even when the template binds nothing.
	lookup, err := fieldLookup(params)
	if err != nil {
		return nil, err
	}

	names := t.Placeholders()
	if len(names) == 0 {
		return nil, nil
	}

	out := make([]Value, 0, len(names))
	for _, name := range names {
		native, ok := lookup(name)
		if !ok {
			return nil, &MissingParameterError{Name: name}
		}
		v, err := codec.Encode(native)
		if err != nil {
			return nil, fmt.Errorf("bind: parameter {%s}: %w", name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// fieldLookup builds a by-name accessor over the params record.
func fieldLookup(params any) (func(name string) (any, bool), error) {
	if params == nil {
		return func(string) (any, bool) { return nil, false }, nil
	}

	if m, ok := params.(map[string]any); ok {
		return func(name string) (any, bool) {
			v, ok := m[name]
			return v, ok
		}, nil
	}

	rv := reflect.ValueOf(params)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return func(string) (any, bool) { return nil, false }, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: params must be a struct or map[string]any, got %T", params)
	}

	rt := rv.Type()
	fields := make(map[string]reflect.Value, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || field.Tag.Get("db") == "-" {
			continue
		}
		fields[ColumnName(field)] = rv.Field(i)
	}

	return func(name string) (any, bool) {
		fv, ok := fields[name]
		if !ok {
			return nil, false
		}
		return fv.Interface(), true
	}, nil
}

// ColumnName returns the column name a struct field binds to: its `db` tag
// when present, otherwise the snake_case of the field name.
func ColumnName(field reflect.StructField) string {
	if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
		return tag
	}
	return toSnakeCase(field.Name)
}

// toSnakeCase converts PascalCase to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

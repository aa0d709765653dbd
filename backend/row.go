package backend

import "github.com/sqlbound/sqlbound/bind"

// Row is a single fetched row. The engine never inspects rows itself; it
// hands them to the row decoder (or back to the caller, for raw queries).
type Row interface {
	// Columns returns the column names in result order.
	Columns() []string

	// Column returns the named column's value. The second return is
	// false when the row has no such column.
	Column(name string) (bind.Value, bool)
}

// row is the materialized Row used by the concrete adapters. Adapters scan
// driver values into neutral bind values through their codec, so rows stay
// valid after the statement is released.
type row struct {
	columns []string
	values  []bind.Value
	index   map[string]int
}

// NewRow materializes a row from parallel column and value slices.
func NewRow(columns []string, values []bind.Value) Row {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &row{columns: columns, values: values, index: index}
}

func (r *row) Columns() []string { return r.columns }

func (r *row) Column(name string) (bind.Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return bind.Value{}, false
	}
	return r.values[i], true
}

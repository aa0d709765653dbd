package template

import "strconv"

// Dialect renders the backend's native marker for a placeholder occurrence.
// Position is 1-based and counts occurrences, not distinct names.
type Dialect interface {
	Marker(position int, name string) string
}

// Question renders "?" markers (SQLite, MySQL, Cassandra).
type Question struct{}

func (Question) Marker(int, string) string { return "?" }

// Dollar renders numbered "$1".."$n" markers (PostgreSQL).
type Dollar struct{}

func (Dollar) Marker(position int, _ string) string {
	return "$" + strconv.Itoa(position)
}

// Named renders ":name" markers for backends that bind by name.
type Named struct{}

func (Named) Marker(_ int, name string) string { return ":" + name }

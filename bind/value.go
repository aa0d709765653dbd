// Package bind converts parameter records into the ordered bind values a
// compiled template expects, using a backend-neutral value representation.
package bind

import "fmt"

// Kind identifies which variant of a Value is active.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBlob
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the engine's neutral representation of a single SQL parameter or
// column value. Exactly one variant is active, identified by Kind.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
	t    bool
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Integer returns an integer value.
func Integer(v int64) Value { return Value{kind: KindInteger, i: v} }

// Float returns a floating-point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a text value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Blob returns a binary value.
func Blob(v []byte) Value { return Value{kind: KindBlob, b: v} }

// Boolean returns a boolean value.
func Boolean(v bool) Value { return Value{kind: KindBoolean, t: v} }

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the null variant is active.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload. It is only meaningful for KindInteger.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float payload. It is only meaningful for KindFloat.
func (v Value) Float64() float64 { return v.f }

// String returns the text payload for KindText; for other kinds it returns
// a diagnostic rendering.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindNull:
		return "NULL"
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBlob:
		return fmt.Sprintf("%d-byte blob", len(v.b))
	case KindBoolean:
		return fmt.Sprintf("%t", v.t)
	default:
		return v.kind.String()
	}
}

// Bytes returns the blob payload. It is only meaningful for KindBlob.
func (v Value) Bytes() []byte { return v.b }

// Bool returns the boolean payload. It is only meaningful for KindBoolean.
func (v Value) Bool() bool { return v.t }

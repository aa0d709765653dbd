package bind

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel categories for errors.Is matching.
var (
	ErrMissingParameter = errors.New("missing bind parameter")
	ErrUnsupportedType  = errors.New("unsupported parameter type")
	ErrOutOfRange       = errors.New("parameter value out of range")
)

// MissingParameterError reports a placeholder name with no matching field in
// the params record. This is a programming error at the call site, not a
// recoverable condition.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("bind: no parameter for placeholder {%s}", e.Name)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// UnsupportedTypeError reports a parameter whose Go type has no mapping onto
// the closed value variant for the active backend.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("bind: unsupported parameter type %s", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// OutOfRangeError reports a numeric parameter that cannot be carried in the
// integer variant without changing its value.
type OutOfRangeError struct {
	Value any
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bind: parameter value %v overflows the integer range", e.Value)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

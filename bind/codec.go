package bind

import (
	"fmt"
	"math"
	"reflect"
)

// Codec converts between the neutral Value representation and a backend's
// native parameter type. Each backend supplies one implementation.
type Codec interface {
	// Encode converts a native Go parameter into a neutral Value.
	// Values outside the closed variant set fail with
	// *UnsupportedTypeError unless the backend's codec opts in.
	Encode(native any) (Value, error)

	// Decode converts a neutral Value into the backend's native bind
	// representation.
	Decode(v Value) (any, error)
}

// DefaultCodec encodes the Go primitives that map directly onto the closed
// variant set. Backend codecs embed it and extend Encode for backend-specific
// types (arrays, timestamps).
type DefaultCodec struct{}

// Encode maps Go primitives to Values. Integer and floating-point kinds are
// kept distinct; there is no silent truncation.
func (DefaultCodec) Encode(native any) (Value, error) {
	switch v := native.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Boolean(v), nil
	case int:
		return Integer(int64(v)), nil
	case int8:
		return Integer(int64(v)), nil
	case int16:
		return Integer(int64(v)), nil
	case int32:
		return Integer(int64(v)), nil
	case int64:
		return Integer(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Value{}, &OutOfRangeError{Value: v}
		}
		return Integer(int64(v)), nil
	case uint8:
		return Integer(int64(v)), nil
	case uint16:
		return Integer(int64(v)), nil
	case uint32:
		return Integer(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, &OutOfRangeError{Value: v}
		}
		return Integer(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return Text(v), nil
	case []byte:
		if v == nil {
			return Null(), nil
		}
		return Blob(v), nil
	}

	// Dereference pointers so optional params encode as their element or
	// as null.
	rv := reflect.ValueOf(native)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Null(), nil
		}
		return DefaultCodec{}.Encode(rv.Elem().Interface())
	}

	return Value{}, &UnsupportedTypeError{Type: reflect.TypeOf(native)}
}

// Decode maps a Value to the driver-neutral Go representations understood by
// database/sql: nil, int64, float64, string, []byte, bool.
func (DefaultCodec) Decode(v Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindInteger:
		return v.Int64(), nil
	case KindFloat:
		return v.Float64(), nil
	case KindText:
		return v.String(), nil
	case KindBlob:
		return v.Bytes(), nil
	case KindBoolean:
		return v.Bool(), nil
	default:
		return nil, fmt.Errorf("bind: cannot decode %s value", v.Kind())
	}
}

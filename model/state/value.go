package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind enumerates the value types a process variable can hold.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindBool
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindInt:     "integer",
	KindBool:    "boolean",
}

func (k Kind) String() string {
	return kindNames[k]
}

// ErrUnsupportedType is returned when a host value cannot become a Value.
var ErrUnsupportedType = errors.New("state: unsupported variable type")

// Value is a closed variant over string, integer and boolean.
type Value struct {
	kind Kind
	s    string
	i    int64
	b    bool
}

// String creates a string value
func String(v string) Value { return Value{kind: KindString, s: v} }

// Int creates an integer value
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Bool creates a boolean value
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Of converts a host value. Every signed and unsigned integer type becomes
// an integer Value; unsigned values above math.MaxInt64 are rejected.
func Of(v interface{}) (Value, error) {
	switch actual := v.(type) {
	case Value:
		return actual, nil
	case string:
		return String(actual), nil
	case bool:
		return Bool(actual), nil
	case int:
		return Int(int64(actual)), nil
	case int8:
		return Int(int64(actual)), nil
	case int16:
		return Int(int64(actual)), nil
	case int32:
		return Int(int64(actual)), nil
	case int64:
		return Int(actual), nil
	case uint:
		if uint64(actual) > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %T overflows int64", ErrUnsupportedType, v)
		}
		return Int(int64(actual)), nil
	case uint8:
		return Int(int64(actual)), nil
	case uint16:
		return Int(int64(actual)), nil
	case uint32:
		return Int(int64(actual)), nil
	case uint64:
		if actual > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %T overflows int64", ErrUnsupportedType, v)
		}
		return Int(int64(actual)), nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// Kind returns the value kind
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a value
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsString returns the string payload
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsInt returns the integer payload
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsBool returns the boolean payload
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Interface returns the payload as a plain Go value.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "<invalid>"
}

// MarshalJSON encodes the payload as its natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes JSON strings, booleans and integral numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	switch actual := raw.(type) {
	case string:
		*v = String(actual)
	case bool:
		*v = Bool(actual)
	case json.Number:
		i, err := actual.Int64()
		if err != nil {
			return fmt.Errorf("%w: non-integral number %v", ErrUnsupportedType, actual)
		}
		*v = Int(i)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, raw)
	}
	return nil
}

package state

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingVariable is returned when a variable is absent or of an
// unexpected kind.
var ErrMissingVariable = errors.New("missing variable")

// Reader gives read-only access to process variables.
type Reader interface {
	Lookup(name string) (Value, bool)
	String(name string) (string, error)
	Int(name string) (int64, error)
	Bool(name string) (bool, error)
	Map() map[string]interface{}
}

// Bag holds the variables of a single process instance. A Bag is not safe for
// concurrent mutation; the owning instance serialises access.
type Bag map[string]Value

var _ Reader = Bag(nil)

// FromMap converts host values into a Bag.
func FromMap(values map[string]interface{}) (Bag, error) {
	ret := make(Bag, len(values))
	for name, raw := range values {
		v, err := Of(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		ret[name] = v
	}
	return ret, nil
}

// Set stores a value
func (b Bag) Set(name string, v Value) {
	b[name] = v
}

// Lookup returns a value and whether it was present
func (b Bag) Lookup(name string) (Value, bool) {
	v, ok := b[name]
	return v, ok
}

// String returns a string variable
func (b Bag) String(name string) (string, error) {
	v, err := b.expect(name, KindString)
	return v.s, err
}

// Int returns an integer variable
func (b Bag) Int(name string) (int64, error) {
	v, err := b.expect(name, KindInt)
	return v.i, err
}

// Bool returns a boolean variable
func (b Bag) Bool(name string) (bool, error) {
	v, err := b.expect(name, KindBool)
	return v.b, err
}

func (b Bag) expect(name string, kind Kind) (Value, error) {
	v, ok := b[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q is not set", ErrMissingVariable, name)
	}
	if v.kind != kind {
		return Value{}, fmt.Errorf("%w: %q is %v, expected %v", ErrMissingVariable, name, v.kind, kind)
	}
	return v, nil
}

// Merge copies every variable of other into b, overwriting same-named ones.
func (b Bag) Merge(other Bag) {
	for name, v := range other {
		b[name] = v
	}
}

// Clone returns an independent copy.
func (b Bag) Clone() Bag {
	ret := make(Bag, len(b))
	for name, v := range b {
		ret[name] = v
	}
	return ret
}

// Names returns variable names sorted alphabetically.
func (b Bag) Names() []string {
	ret := make([]string, 0, len(b))
	for name := range b {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Map returns the variables as plain Go values.
func (b Bag) Map() map[string]interface{} {
	ret := make(map[string]interface{}, len(b))
	for name, v := range b {
		ret[name] = v.Interface()
	}
	return ret
}

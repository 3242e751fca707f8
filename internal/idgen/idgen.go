package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier. Override in tests.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Sequence hands out monotonically increasing decimal identifiers.
// The zero value starts at 1.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	return strconv.FormatInt(s.last.Add(1), 10)
}

// Last returns the most recently issued value, 0 when nothing was issued.
func (s *Sequence) Last() int64 {
	return s.last.Load()
}

// Seed makes the sequence continue after n unless it already did.
func (s *Sequence) Seed(n int64) {
	for {
		last := s.last.Load()
		if last >= n || s.last.CompareAndSwap(last, n) {
			return
		}
	}
}

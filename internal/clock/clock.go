// Package clock centralises time lookups so tests can pin or step the clock.
package clock

import (
	"sync"
	"time"
)

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Stepper returns a NowFunc replacement that starts at base and advances by
// step on every call. It is safe for concurrent use.
func Stepper(base time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := base
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		ret := current
		current = current.Add(step)
		return ret
	}
}

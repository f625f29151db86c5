// Package clock provides the monotonic time source used by timers.
//
// Production code uses System; tests use Manual to drive elapsed time
// without sleeping.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current instant.
//
// Successive calls on the same Clock never go backward. Only differences
// between instants are meaningful.
type Clock interface {
	Now() time.Time
}

// System reads the process clock. The returned time.Time carries a
// monotonic reading, so Sub between two values is unaffected by
// wall-clock adjustments.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Manual is a clock that only moves when told to.
type Manual struct {
	mu      sync.Mutex
	current time.Time
}

// NewManual creates a manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

// Now returns the current manual instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the clock forward by d. It panics on a negative d
// since a Clock must never run backward.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: negative advance")
	}
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

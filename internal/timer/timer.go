package timer

import (
	"sync"
	"time"
)

// Millis is a wrapping millisecond timestamp.
type Millis uint32

// Add returns the timestamp d milliseconds after m.
func (m Millis) Add(d uint32) Millis {
	return m + Millis(d)
}

// Reached returns true if m is at or past deadline.
// The comparison tolerates counter wraparound as long as the two values are
// less than 2^31 milliseconds apart.
func (m Millis) Reached(deadline Millis) bool {
	return int32(uint32(m)-uint32(deadline)) >= 0
}

// Passed returns true if m is strictly after deadline. It uses the same
// wraparound rule as Reached.
func (m Millis) Passed(deadline Millis) bool {
	return int32(uint32(m)-uint32(deadline)) > 0
}

// Since returns the milliseconds elapsed from start to m.
func (m Millis) Since(start Millis) uint32 {
	return uint32(m - start)
}

// Clock is a monotonic millisecond clock.
type Clock interface {
	// Now returns the current timestamp.
	Now() Millis
}

// Elapsed returns the milliseconds elapsed on the clock since start.
func Elapsed(c Clock, since Millis) uint32 {
	return c.Now().Since(since)
}

// System is a Clock backed by the Go monotonic clock.
type System struct {
	start time.Time
}

// NewSystem creates a system clock whose zero is the moment of creation.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Now returns milliseconds since the clock was created.
func (s *System) Now() Millis {
	return Millis(uint32(time.Since(s.start) / time.Millisecond))
}

// Manual is a Clock that only moves when told to. Used by tests and replays.
type Manual struct {
	mu  sync.Mutex
	now Millis
}

// NewManual creates a manual clock starting at start.
func NewManual(start Millis) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual timestamp.
func (m *Manual) Now() Millis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t Millis) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d milliseconds and returns the new time.
func (m *Manual) Advance(d uint32) Millis {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Package clock supplies the time source behind audit entry timestamps.
// The service depends on the ports.Clock interface so tests can pin time
// to a fixed instant instead of asserting against time.Now.
package clock

import (
	"sync"
	"time"
)

// Real reads the system clock. This is what production wiring uses.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a manually driven clock for tests. It only moves when told to
// via Set or Advance, and is safe for concurrent readers.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake pinned to t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set pins the clock to t, which may be earlier than the current reading.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

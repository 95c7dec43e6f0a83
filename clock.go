package tilecore

import (
	"sync"
	"time"
)

// Clock is the time source a Loop paces itself with.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// ManualClock is a Clock that only moves when told to. Sleep advances it
// instead of blocking, so a Loop driven by a ManualClock runs as fast as the
// CPU allows while still seeing exact frame durations.
type ManualClock struct {
	mu    sync.RWMutex
	now   time.Time
	slept time.Duration
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep advances the clock by d and records the request.
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept += d
}

// Slept returns the total duration passed to Sleep.
func (c *ManualClock) Slept() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slept
}

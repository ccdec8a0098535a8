package scenario

import (
	"time"
)

// Clock is the time source steps read, so day-boundary reasoning can be
// pinned in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time
type RealClock struct{}

// NewRealClock creates a RealClock
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// SimulatedClock is a settable clock for tests
type SimulatedClock struct {
	current time.Time
}

// NewSimulatedClock creates a SimulatedClock starting at the given time
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

// Now returns the simulated current time
func (c *SimulatedClock) Now() time.Time {
	return c.current
}

// Advance moves the simulated time forward by the given duration
func (c *SimulatedClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// AdvanceDays moves the simulated time forward by whole days
func (c *SimulatedClock) AdvanceDays(days int) {
	c.current = c.current.AddDate(0, 0, days)
}

// Set pins the simulated time to a specific value
func (c *SimulatedClock) Set(t time.Time) {
	c.current = t
}

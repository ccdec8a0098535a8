// Package leaktest flags goroutines that a test body leaves behind.
// Worker pools, the SSE hub and pgxpool health checks all park
// goroutines; a stop path that forgets one shows up as a count that
// never settles back to the snapshot.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay   = 10 * time.Millisecond
	checkDeadline = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
)

// Checker holds the goroutine count taken before the code under test ran.
type Checker struct {
	before int
	t      testing.TB
}

// Snapshot records the current goroutine count once the scheduler has settled.
func Snapshot(t testing.TB) *Checker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &Checker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines outlive the
// snapshot. The count is polled up to a deadline so goroutines still
// mid-teardown get a chance to exit; tolerance absorbs runtime helpers
// (timers, pool health checks) that stop on their own schedule.
func (c *Checker) Check(tolerance int) {
	c.t.Helper()

	deadline := time.Now().Add(checkDeadline)
	leaked := runtime.NumGoroutine() - c.before
	for leaked > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(pollInterval)
		leaked = runtime.NumGoroutine() - c.before
	}

	if leaked > tolerance {
		c.t.Errorf("Goroutine leak: %d before, %d leaked (tolerance %d)",
			c.before, leaked, tolerance)
	}
}

// Run executes fn between a snapshot and a zero-tolerance check, for
// bodies that must not leave anything behind (start/stop cycles).
func Run(t testing.TB, fn func()) {
	t.Helper()

	checker := Snapshot(t)
	fn()
	checker.Check(0)
}

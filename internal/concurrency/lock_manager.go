package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes, one per key. Callers key them by
// athlete so concurrent activity for the same athlete serializes while
// different athletes proceed in parallel.
//
// Locks are never evicted; the working set is bounded by the number of
// athletes seen since startup.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates an empty LockManager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for the given key.
func (lm *LockManager) WithLock(key string, fn func()) {
	lock := lm.GetLock(key)
	lock.Lock()
	defer lock.Unlock()
	fn()
}

package concurrency

import (
	"sync"
	"testing"
)

func TestLockManager_SameKeyReturnsSameLock(t *testing.T) {
	lm := NewLockManager()

	first := lm.GetLock("athlete-1")
	second := lm.GetLock("athlete-1")

	if first != second {
		t.Error("Expected the same mutex for repeated GetLock on one key")
	}
}

func TestLockManager_DifferentKeysIndependent(t *testing.T) {
	lm := NewLockManager()

	first := lm.GetLock("athlete-1")
	second := lm.GetLock("athlete-2")

	if first == second {
		t.Error("Expected distinct mutexes for distinct keys")
	}

	// Holding one key must not block the other.
	first.Lock()
	defer first.Unlock()

	second.Lock()
	second.Unlock()
}

func TestLockManager_WithLockSerializes(t *testing.T) {
	lm := NewLockManager()

	// Unsynchronized increments would race; WithLock must serialize them.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lm.WithLock("athlete-1", func() {
				counter++
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("Expected counter 50, got %d", counter)
	}
}

func TestLockManager_ConcurrentGetLock(t *testing.T) {
	lm := NewLockManager()

	results := make(chan *sync.Mutex, 20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- lm.GetLock("shared")
		}()
	}
	wg.Wait()
	close(results)

	want := lm.GetLock("shared")
	for got := range results {
		if got != want {
			t.Error("Concurrent GetLock returned different mutexes for one key")
		}
	}
}

package synxkit

import (
	"sync"
	"testing"
	"time"
)

func TestLockBoth_OppositeOrder(t *testing.T) {
	var x, y sync.Mutex
	const cycles = 2000
	var wg sync.WaitGroup
	wg.Add(2)
	var counter int

	go func() {
		defer wg.Done()
		for range cycles {
			LockBoth(&x, &y)
			counter++
			UnlockBoth(&x, &y)
		}
	}()
	go func() {
		defer wg.Done()
		for range cycles {
			LockBoth(&y, &x)
			counter++
			UnlockBoth(&y, &x)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("LockBoth deadlocked")
	}
	if counter != 2*cycles {
		t.Fatalf("counter = %d, want %d", counter, 2*cycles)
	}
}

func TestLockBoth_HoldsBoth(t *testing.T) {
	a, b := NewMonitor(), &SpinLock{}
	LockBoth(a, b)
	if a.TryLock() || b.TryLock() {
		t.Fatal("LockBoth returned without holding both locks")
	}
	UnlockBoth(a, b)
	if !a.TryLock() || !b.TryLock() {
		t.Fatal("UnlockBoth left a lock held")
	}
}

func TestLockBoth_WaitsForHeldLock(t *testing.T) {
	var a, b sync.Mutex
	b.Lock()

	got := make(chan struct{})
	go func() {
		LockBoth(&a, &b)
		close(got)
	}()

	select {
	case <-got:
		t.Fatal("LockBoth returned while b was held")
	case <-time.After(20 * time.Millisecond):
	}

	// a must not be pinned while LockBoth waits on b.
	deadline := time.Now().Add(time.Second)
	for !a.TryLock() {
		if time.Now().After(deadline) {
			t.Fatal("a stayed locked while LockBoth waited for b")
		}
		time.Sleep(time.Millisecond)
	}
	a.Unlock()

	b.Unlock()
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("LockBoth did not finish after b was released")
	}
}

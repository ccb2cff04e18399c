package synxkit

import "sync"

// TryLocker is a sync.Locker that can also attempt a non-blocking Lock.
// *sync.Mutex, *Monitor, *SpinLock and *YieldingSpinLock all satisfy it.
type TryLocker interface {
	sync.Locker
	TryLock() bool
}

// LockBoth acquires a and b as one step, without imposing a global lock
// order on callers.
//
// It blocks on one lock and only tries the other; if the try fails it drops
// what it holds, backs off, and starts again blocking on the lock it just
// failed to get. A caller therefore never waits on one lock while holding
// the other, so two goroutines calling LockBoth(x, y) and LockBoth(y, x)
// cannot deadlock.
//
// Release with UnlockBoth, or by unlocking each lock individually.
func LockBoth(a, b TryLocker) {
	var spins int
	for {
		a.Lock()
		if b.TryLock() {
			return
		}
		a.Unlock()
		delay(&spins)
		a, b = b, a
	}
}

// UnlockBoth releases two locks taken with LockBoth.
func UnlockBoth(a, b sync.Locker) {
	b.Unlock()
	a.Unlock()
}

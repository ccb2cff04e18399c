package synxkit

import "sync"

// SlimSemaphore is a bounded counting semaphore built only from a mutex and
// a condition variable, with no runtime semaphore underneath.
//
// Unlike Semaphore, the count can never exceed max: a Release that finds the
// count already at max is silently dropped.
type SlimSemaphore struct {
	_     noCopy
	mu    sync.Mutex
	cond  sync.Cond
	count int
	max   int
}

// NewSlimSemaphore creates a SlimSemaphore holding initial permits, bounded
// by max.
//
// panic if max <= 0 or initial is outside [0, max].
func NewSlimSemaphore(initial, max int) *SlimSemaphore {
	if max <= 0 {
		panic("synxkit: slim semaphore max must be positive")
	}
	if initial < 0 || initial > max {
		panic("synxkit: slim semaphore initial count out of range")
	}
	s := &SlimSemaphore{count: initial, max: max}
	s.cond.L = &s.mu
	return s
}

// Acquire blocks until count > 0, then decrements it.
func (s *SlimSemaphore) Acquire() {
	s.mu.Lock()
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

// TryAcquire decrements the count if it is positive. Returns true on success.
func (s *SlimSemaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		return false
	}
	s.count--
	return true
}

// Release increments the count and wakes one waiter, unless the count is
// already at max, in which case it does nothing.
func (s *SlimSemaphore) Release() {
	s.mu.Lock()
	if s.count < s.max {
		s.count++
		s.cond.Signal()
	}
	s.mu.Unlock()
}

// Count returns a snapshot of the current count.
func (s *SlimSemaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Max returns the upper bound of the count.
func (s *SlimSemaphore) Max() int {
	return s.max
}

//go:build race

package opt

import "sync"

// Race reports whether the race detector is enabled.
const Race = true

// Sema under the race detector is built on sync.Mutex and sync.Cond, so every
// Release happens before the Acquire it unblocks as far as the detector can
// see. Runtime-level parking carries no such annotation.
type Sema struct {
	mu   sync.Mutex
	cond sync.Cond
	n    uint32
}

// Acquire blocks until the semaphore is positive, then decrements it.
func (s *Sema) Acquire() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	for s.n == 0 {
		s.cond.Wait()
	}
	s.n--
	s.mu.Unlock()
}

// Release increments the semaphore and wakes one parked goroutine, if any.
func (s *Sema) Release() {
	s.mu.Lock()
	s.n++
	if s.cond.L != nil {
		s.cond.Signal()
	}
	s.mu.Unlock()
}

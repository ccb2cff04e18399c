package synxkit

import (
	"sync/atomic"

	"github.com/llxisdsh/synxkit/internal/opt"
)

// Semaphore is a counting semaphore synchronization primitive.
// It allows a fixed number of concurrent accesses to a resource.
//
// Blocking is done by parking the goroutine in the runtime, the same way a
// native OS semaphore suspends a thread. Capacity is fixed at construction
// and never changes; it is informational only. Like a native semaphore, no
// upper bound is enforced: releasing more than was acquired grows the count.
//
// It has no owner, so any goroutine may Release.
//
// Size: 24 bytes without the race detector (8 byte permits + 8 byte capacity +
// 4 byte sema).
type Semaphore struct {
	_ noCopy
	// permits is the number of available permits.
	// Positive: Available permits.
	// Negative: Number of parked waiters.
	permits  atomic.Int64
	capacity int64

	sema opt.Sema
}

// NewSemaphore creates a new Semaphore with capacity initial permits.
//
// panic if capacity < 0.
func NewSemaphore(capacity int64) *Semaphore {
	if capacity < 0 {
		panic("synxkit: semaphore capacity must not be negative")
	}
	s := &Semaphore{capacity: capacity}
	s.permits.Store(capacity)
	return s
}

// Acquire takes one permit, blocking until one is available.
func (s *Semaphore) Acquire() {
	// Strict Dijkstra semaphore: a negative result means we must park.
	if s.permits.Add(-1) < 0 {
		s.sema.Acquire()
	}
}

// TryAcquire attempts to take one permit without blocking.
// Returns true on success.
func (s *Semaphore) TryAcquire() bool {
	for {
		p := s.permits.Load()
		if p <= 0 {
			return false
		}
		if s.permits.CompareAndSwap(p, p-1) {
			return true
		}
	}
}

// Release returns one permit and wakes at most one waiter.
func (s *Semaphore) Release() {
	// The value before the add was negative iff somebody is parked.
	// That waiter consumes the permit we just returned.
	if s.permits.Add(1) <= 0 {
		s.sema.Release()
	}
}

// Capacity returns the number of permits the semaphore was created with.
func (s *Semaphore) Capacity() int64 {
	return s.capacity
}

// Available returns a snapshot of the free permits. It is never negative,
// even while goroutines are parked.
func (s *Semaphore) Available() int64 {
	return max(s.permits.Load(), 0)
}

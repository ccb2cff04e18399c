//go:build !race

package opt

import (
	_ "unsafe" // for linkname
)

// Race reports whether the race detector is enabled.
const Race = false

// Sema is a zero-allocation semaphore that parks goroutines in the runtime.
// Without the race detector it wraps runtime.semacquire/semrelease, the same
// parking mechanism sync.Mutex and sync.WaitGroup use.
type Sema uint32

// Acquire blocks until the semaphore is positive, then decrements it.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release increments the semaphore and wakes one parked goroutine, if any.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)

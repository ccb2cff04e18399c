package synxkit

import "sync"

// Barrier is a reusable synchronization primitive that allows a fixed party
// of goroutines to wait for each other to reach a common point.
//
// It is "cyclic" because it resets itself once the party is complete and can
// be used again for the next round. Each round is a generation; waiters sleep
// until the generation moves past the one they arrived in, so a fast
// goroutine re-entering Wait for the next round can never release, or be
// released by, the previous round.
//
// There is no abort path. If a party member never arrives, everybody else in
// that generation waits forever.
type Barrier struct {
	_          noCopy
	mu         sync.Mutex
	cond       sync.Cond
	parties    int
	awaiting   int
	generation uint64
}

// NewBarrier creates a Barrier for the given number of parties.
//
// panic if parties <= 0.
func NewBarrier(parties int) *Barrier {
	if parties <= 0 {
		panic("synxkit: parties must be positive")
	}
	b := &Barrier{parties: parties}
	b.cond.L = &b.mu
	return b
}

// Wait blocks until all parties have called Wait in the current generation.
//
// Returns the arrival index (0 to parties-1), where parties-1 indicates
// the caller was the last to arrive (the one who tripped the barrier).
func (b *Barrier) Wait() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	idx := b.awaiting
	b.awaiting++
	if b.awaiting == b.parties {
		b.awaiting = 0
		b.generation++
		b.cond.Broadcast()
		return idx
	}

	for gen == b.generation {
		b.cond.Wait()
	}
	return idx
}

// Parties returns the party size.
func (b *Barrier) Parties() int {
	return b.parties
}

// Waiting returns how many goroutines are blocked in the current generation.
func (b *Barrier) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.awaiting
}

// Generation returns the number of completed rounds.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

// Package dining runs the dining-philosophers problem around a centralized
// arbitrator.
//
// A ring of N resource units (forks) is shared by N actors; actor i needs
// units i and (i+1) mod N. The Arbitrator hands out both units of a pair in
// one critical section, so no actor ever holds one unit while waiting for
// the other and the classic circular wait cannot form.
package dining

import (
	"fmt"
	"sync"
)

// UnitState is the state of one resource unit.
type UnitState uint8

const (
	// Free means no actor holds the unit.
	Free UnitState = iota
	// Taken means the unit was granted to an actor and not yet released.
	Taken
)

// String returns "Free" or "Taken".
func (s UnitState) String() string {
	switch s {
	case Free:
		return "Free"
	case Taken:
		return "Taken"
	default:
		return fmt.Sprintf("UnitState(%d)", uint8(s))
	}
}

// Arbitrator owns the state of every resource unit and is the only thing
// allowed to change it.
//
// One mutex and one condition guard the whole unit array. Request grants a
// pair atomically; Release frees a pair and wakes every waiter, because any
// of them may now be satisfiable. There is no queueing or fairness: a
// waiter re-checks its pair on every broadcast and can, under unlucky
// scheduling, starve.
type Arbitrator struct {
	mu    sync.Mutex
	cond  sync.Cond
	units []UnitState
}

// NewArbitrator creates an Arbitrator for a ring of units, all Free.
//
// panic if units < 2.
func NewArbitrator(units int) *Arbitrator {
	if units < 2 {
		panic("dining: at least two units are required")
	}
	a := &Arbitrator{units: make([]UnitState, units)}
	a.cond.L = &a.mu
	return a
}

// Units returns the ring size.
func (a *Arbitrator) Units() int {
	return len(a.units)
}

// Request blocks until units x and y are both Free, then marks both Taken.
//
// panic if x or y is out of range, or x == y.
func (a *Arbitrator) Request(x, y int) {
	a.check(x, y)
	a.mu.Lock()
	for a.units[x] != Free || a.units[y] != Free {
		a.cond.Wait()
	}
	a.units[x] = Taken
	a.units[y] = Taken
	a.mu.Unlock()
}

// TryRequest takes units x and y if both are Free. Returns true on success.
func (a *Arbitrator) TryRequest(x, y int) bool {
	a.check(x, y)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.units[x] != Free || a.units[y] != Free {
		return false
	}
	a.units[x] = Taken
	a.units[y] = Taken
	return true
}

// Release marks units x and y Free and wakes all waiters.
//
// panic if x or y is out of range, or x == y.
func (a *Arbitrator) Release(x, y int) {
	a.check(x, y)
	a.mu.Lock()
	a.units[x] = Free
	a.units[y] = Free
	a.cond.Broadcast()
	a.mu.Unlock()
}

// Snapshot returns a copy of the unit states.
func (a *Arbitrator) Snapshot() []UnitState {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]UnitState, len(a.units))
	copy(out, a.units)
	return out
}

func (a *Arbitrator) check(x, y int) {
	n := len(a.units)
	if x < 0 || x >= n || y < 0 || y >= n {
		panic(fmt.Sprintf("dining: unit pair (%d, %d) out of range [0, %d)", x, y, n))
	}
	if x == y {
		panic(fmt.Sprintf("dining: unit pair (%d, %d) must be distinct", x, y))
	}
}

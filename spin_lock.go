package synxkit

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

// SpinLock is a test-and-set spin lock.
//
// Lock never parks the goroutine: a failed attempt executes a short CPU
// pause and tries again. There is no fairness; under heavy contention a
// goroutine can starve.
//
// It is zero-value usable.
//
// Size: 4 bytes.
type SpinLock struct {
	_    noCopy
	flag spinFlag
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	for !l.flag.trySet() {
		runtime_doSpin()
	}
}

// TryLock attempts to acquire the lock without spinning.
func (l *SpinLock) TryLock() bool {
	return l.flag.trySet()
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.flag.clear()
}

// YieldingSpinLock is a test-and-set spin lock that gives up the processor
// with runtime.Gosched after every failed attempt, trading latency for less
// CPU burn under contention. No fairness either.
//
// It is zero-value usable.
//
// Size: 4 bytes.
type YieldingSpinLock struct {
	_    noCopy
	flag spinFlag
}

// Lock acquires the lock, yielding between attempts.
func (l *YieldingSpinLock) Lock() {
	for !l.flag.trySet() {
		runtime.Gosched()
	}
}

// TryLock attempts to acquire the lock without yielding.
func (l *YieldingSpinLock) TryLock() bool {
	return l.flag.trySet()
}

// Unlock releases the lock.
func (l *YieldingSpinLock) Unlock() {
	l.flag.clear()
}

// spinFlag is the shared atomic test-and-set cell. Go atomics are
// sequentially consistent, which covers the acquire ordering on set and the
// release ordering on clear.
type spinFlag struct {
	v atomic.Uint32
}

//go:nosplit
func (f *spinFlag) trySet() bool {
	// Test before test-and-set keeps the cache line shared while held.
	return f.v.Load() == 0 && f.v.Swap(1) == 0
}

//go:nosplit
func (f *spinFlag) clear() {
	f.v.Store(0)
}

// SpinKind selects a spin lock flavour.
type SpinKind int

const (
	// Busy spins on the CPU between attempts.
	Busy SpinKind = iota
	// Yielding calls runtime.Gosched between attempts.
	Yielding
)

// ErrUnknownSpinKind is returned by ParseSpinKind for unrecognised names.
var ErrUnknownSpinKind = errors.New("synxkit: unknown spin kind")

// String returns the name ParseSpinKind accepts for k.
func (k SpinKind) String() string {
	switch k {
	case Busy:
		return "busy"
	case Yielding:
		return "yielding"
	default:
		return fmt.Sprintf("SpinKind(%d)", int(k))
	}
}

// ParseSpinKind maps "busy" or "yielding" (case-insensitive, "yield" also
// accepted) to a SpinKind.
func ParseSpinKind(s string) (SpinKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "busy", "spin":
		return Busy, nil
	case "yielding", "yield":
		return Yielding, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpinKind, s)
}

// NewSpinner returns a spin lock of the given kind.
//
// panic if kind is not Busy or Yielding.
func NewSpinner(kind SpinKind) sync.Locker {
	switch kind {
	case Busy:
		return &SpinLock{}
	case Yielding:
		return &YieldingSpinLock{}
	}
	panic("synxkit: unknown spin kind " + kind.String())
}

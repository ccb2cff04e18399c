package synxkit

import "sync"

// Monitor is a binary gate for a critical section, built from a boolean flag
// guarded by a mutex and a condition variable.
//
// It behaves like a mutex without ownership: it is not reentrant, and any
// goroutine may Unlock regardless of who called Lock. Wake order is
// unspecified.
type Monitor struct {
	_    noCopy
	mu   sync.Mutex
	cond sync.Cond
	held bool
}

// NewMonitor creates a new unlocked Monitor.
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.cond.L = &m.mu
	return m
}

// Lock blocks while the monitor is held, then takes it.
func (m *Monitor) Lock() {
	m.mu.Lock()
	for m.held {
		m.cond.Wait()
	}
	m.held = true
	m.mu.Unlock()
}

// TryLock takes the monitor if it is free. Returns true on success.
func (m *Monitor) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		return false
	}
	m.held = true
	return true
}

// Unlock frees the monitor and wakes one waiter.
func (m *Monitor) Unlock() {
	m.mu.Lock()
	m.held = false
	m.cond.Signal()
	m.mu.Unlock()
}

// Held reports whether the monitor is currently taken.
func (m *Monitor) Held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

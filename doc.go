// Package synxkit provides small, hand-built synchronization primitives:
// a counting Semaphore, a bounded SlimSemaphore, a cyclic Barrier, a binary
// Monitor and two test-and-set spin locks.
//
// None of them are fair, and none support timeouts or cancellation. A wait
// that is never satisfied blocks forever.
//
// The dining subpackage builds a dining-philosophers arbitrator on the same
// lock-and-condition discipline, and bench times every primitive under one
// workload.
package synxkit

package synxkit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSlimSemaphore_Basic(t *testing.T) {
	s := NewSlimSemaphore(1, 2)
	s.Acquire()
	if s.TryAcquire() {
		t.Fatalf("expected TryAcquire to fail when no permits")
	}
	s.Release()
	if !s.TryAcquire() {
		t.Fatalf("expected TryAcquire to succeed after release")
	}
	if c := s.Count(); c != 0 {
		t.Fatalf("Count = %d, want 0", c)
	}
	if m := s.Max(); m != 2 {
		t.Fatalf("Max = %d, want 2", m)
	}
}

func TestSlimSemaphore_ExcessReleaseDropped(t *testing.T) {
	s := NewSlimSemaphore(3, 3)
	for range 5 {
		s.Release()
		if c := s.Count(); c != 3 {
			t.Fatalf("Count = %d after release at max, want 3", c)
		}
	}

	s.Acquire()
	s.Release()
	s.Release()
	if c := s.Count(); c != 3 {
		t.Fatalf("Count = %d, want 3", c)
	}
}

func TestSlimSemaphore_InvalidArgs(t *testing.T) {
	for _, tc := range []struct {
		name         string
		initial, max int
	}{
		{"zero max", 0, 0},
		{"negative initial", -1, 2},
		{"initial above max", 3, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic")
				}
			}()
			NewSlimSemaphore(tc.initial, tc.max)
		})
	}
}

func TestSlimSemaphore_Blocks(t *testing.T) {
	s := NewSlimSemaphore(0, 1)
	done := make(chan struct{})
	go func() {
		s.Acquire()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Acquire returned before Release")
	case <-time.After(50 * time.Millisecond):
	}

	s.Release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after Release")
	}
}

func TestSlimSemaphore_Concurrent(t *testing.T) {
	const max = 3
	s := NewSlimSemaphore(max, max)
	const n = 30
	var wg sync.WaitGroup
	wg.Add(n)
	var inside, counter atomic.Int64
	for range n {
		go func() {
			defer wg.Done()
			for range 50 {
				s.Acquire()
				if v := inside.Add(1); v > max {
					t.Errorf("%d holders inside, max %d", v, max)
				}
				if c := s.Count(); c < 0 || c > max {
					t.Errorf("Count = %d, out of [0, %d]", c, max)
				}
				counter.Add(1)
				inside.Add(-1)
				s.Release()
			}
		}()
	}
	wg.Wait()
	if c := counter.Load(); c != n*50 {
		t.Fatalf("counter = %d, want %d", c, n*50)
	}
	if c := s.Count(); c != max {
		t.Fatalf("Count = %d, want %d", c, max)
	}
}

package dining

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llxisdsh/synxkit"
)

// Actor is one participant of the ring. It alternates between thinking
// (non-critical) and eating (critical, holding units Left and Right).
type Actor struct {
	ID    int
	Left  int
	Right int

	arb *Arbitrator
	// forks are the per-unit mutexes for Left and Right, nil when unit locks
	// are disabled. They are taken together with synxkit.LockBoth.
	forks  [2]*sync.Mutex
	cfg    *config
	onMeal func(id int)
	log    *zap.Logger
}

// Run loops think, request, eat, release until the context is cancelled or
// the configured number of meals is reached.
//
// It returns ctx.Err() on cancellation and nil when the meal limit is hit.
// Cancellation is observed while thinking or eating; a goroutine blocked in
// the arbitrator stays there until its pair is granted.
func (a *Actor) Run(ctx context.Context) error {
	for n := 0; a.cfg.meals <= 0 || n < a.cfg.meals; n++ {
		a.log.Debug("thinking")
		if err := pause(ctx, a.cfg.think); err != nil {
			return err
		}

		start := a.cfg.metrics.startWait()
		a.arb.Request(a.Left, a.Right)
		a.cfg.metrics.endWait(start)

		err := a.eat(ctx)
		a.arb.Release(a.Left, a.Right)
		if err != nil {
			return err
		}

		a.cfg.metrics.meal(a.ID)
		if a.onMeal != nil {
			a.onMeal(a.ID)
		}
	}
	return nil
}

func (a *Actor) eat(ctx context.Context) error {
	if a.forks[0] != nil {
		synxkit.LockBoth(a.forks[0], a.forks[1])
		defer synxkit.UnlockBoth(a.forks[0], a.forks[1])
	}
	a.log.Debug("eating")
	if err := pause(ctx, a.cfg.eat); err != nil {
		return err
	}
	a.log.Debug("finished eating")
	return nil
}

// pause sleeps for a random duration in s, returning early with ctx.Err()
// if the context is cancelled.
func pause(ctx context.Context, s Span) error {
	d := s.Min
	if s.Max > s.Min {
		d += rand.N(s.Max - s.Min + 1)
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

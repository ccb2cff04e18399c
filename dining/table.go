package dining

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/llxisdsh/pb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Table wires N actors, N per-unit mutexes and one Arbitrator into a ring.
//
// Usage:
//
//	t := dining.NewTable(5, dining.WithMeals(10))
//	if err := t.Run(ctx); err != nil { ... }
//	fmt.Println(t.Meals(0))
type Table struct {
	arb    *Arbitrator
	forks  []sync.Mutex
	actors []*Actor
	cfg    config
	// meals is filled in NewTable and never written afterwards; actors only
	// Add to the counters it holds.
	meals pb.MapOf[int, *atomic.Uint64]
}

// NewTable creates a table of n actors sharing n units.
//
// panic if n < 2.
func NewTable(n int, opts ...Option) *Table {
	t := &Table{
		arb:   NewArbitrator(n),
		forks: make([]sync.Mutex, n),
		cfg:   defaultConfig(),
	}
	for _, o := range opts {
		o(&t.cfg)
	}

	t.actors = make([]*Actor, n)
	for i := range n {
		meals := new(atomic.Uint64)
		t.meals.Store(i, meals)
		a := &Actor{
			ID:     i,
			Left:   i,
			Right:  (i + 1) % n,
			arb:    t.arb,
			cfg:    &t.cfg,
			onMeal: func(int) { meals.Add(1) },
			log:    t.cfg.logger.With(zap.Int("actor", i)),
		}
		if t.cfg.unitLocks {
			a.forks = [2]*sync.Mutex{&t.forks[a.Left], &t.forks[a.Right]}
		}
		t.actors[i] = a
	}
	return t
}

// Arbitrator returns the table's arbitrator.
func (t *Table) Arbitrator() *Arbitrator {
	return t.arb
}

// Actors returns the ring participants, indexed by ID.
func (t *Table) Actors() []*Actor {
	return t.actors
}

// Run starts every actor and waits for all of them to stop.
//
// With a meal limit, Run returns nil once every actor has eaten that many
// times. Otherwise it runs until ctx is cancelled and returns ctx.Err().
func (t *Table) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range t.actors {
		g.Go(func() error {
			return a.Run(ctx)
		})
	}
	err := g.Wait()
	t.cfg.logger.Info("table stopped", zap.Uint64s("meals", t.AllMeals()), zap.Error(err))
	return err
}

// Meals returns how many full cycles actor id has completed, 0 for an
// unknown id.
func (t *Table) Meals(id int) uint64 {
	if c, ok := t.meals.Load(id); ok {
		return c.Load()
	}
	return 0
}

// AllMeals returns the completed cycles of every actor, indexed by ID.
func (t *Table) AllMeals() []uint64 {
	out := make([]uint64, len(t.actors))
	t.meals.Range(func(id int, c *atomic.Uint64) bool {
		out[id] = c.Load()
		return true
	})
	return out
}

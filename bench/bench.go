// Package bench times the synxkit primitives under a fixed workload.
//
// Every run spawns a fixed number of workers. Each worker produces one random
// printable ASCII byte per iteration, passes through the primitive under test
// and appends the byte to a shared Collection guarded by its own mutex. The
// wall-clock time of the whole run is reported.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/llxisdsh/synxkit"
)

// Primitive names accepted by Measure and Config.Primitives.
const (
	Mutex     = "mutex"
	Semaphore = "semaphore"
	Slim      = "slim"
	Barrier   = "barrier"
	Monitor   = "monitor"
	Spin      = "spin"
	Yield     = "yield"
	Weighted  = "weighted"
)

// ErrUnknownPrimitive is returned for a primitive name Measure does not know.
var ErrUnknownPrimitive = errors.New("bench: unknown primitive")

// Names lists every primitive in reporting order.
func Names() []string {
	return []string{Mutex, Semaphore, Slim, Barrier, Monitor, Spin, Yield, Weighted}
}

// Config drives Run.
type Config struct {
	Workers    int
	Iterations int
	Primitives []string
	Logger     *zap.Logger
}

// DefaultConfig returns four workers doing 500 iterations over every primitive.
func DefaultConfig() Config {
	return Config{
		Workers:    4,
		Iterations: 500,
		Primitives: Names(),
	}
}

// Result is the outcome of one timed run.
type Result struct {
	Primitive string
	Workers   int
	Elapsed   time.Duration
	Items     int
}

// Collection is the shared sink every worker appends to.
type Collection struct {
	mu    sync.Mutex
	items []byte
}

// Append adds b to the collection.
func (c *Collection) Append(b byte) {
	c.mu.Lock()
	c.items = append(c.items, b)
	c.mu.Unlock()
}

// Len returns how many bytes have been appended.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// step is one iteration of a worker: pass the primitive, record b.
type step func(ctx context.Context, c *Collection, b byte) error

func gated(l sync.Locker) step {
	return func(_ context.Context, c *Collection, b byte) error {
		l.Lock()
		c.Append(b)
		l.Unlock()
		return nil
	}
}

func newStep(name string, workers int) (step, error) {
	switch name {
	case Mutex:
		return gated(&sync.Mutex{}), nil
	case Semaphore:
		s := synxkit.NewSemaphore(int64(workers))
		return func(_ context.Context, c *Collection, b byte) error {
			s.Acquire()
			c.Append(b)
			s.Release()
			return nil
		}, nil
	case Slim:
		s := synxkit.NewSlimSemaphore(workers, workers)
		return func(_ context.Context, c *Collection, b byte) error {
			s.Acquire()
			c.Append(b)
			s.Release()
			return nil
		}, nil
	case Barrier:
		br := synxkit.NewBarrier(workers)
		return func(_ context.Context, c *Collection, b byte) error {
			br.Wait()
			c.Append(b)
			return nil
		}, nil
	case Monitor:
		return gated(synxkit.NewMonitor()), nil
	case Spin:
		return gated(synxkit.NewSpinner(synxkit.Busy)), nil
	case Yield:
		return gated(synxkit.NewSpinner(synxkit.Yielding)), nil
	case Weighted:
		w := semaphore.NewWeighted(int64(workers))
		return func(ctx context.Context, c *Collection, b byte) error {
			if err := w.Acquire(ctx, 1); err != nil {
				return err
			}
			c.Append(b)
			w.Release(1)
			return nil
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
}

// randomChar returns a printable ASCII byte in [32, 126].
func randomChar() byte {
	return byte(32 + rand.IntN(95))
}

// Measure runs workers goroutines, each doing iterations steps against one
// shared instance of the named primitive, and times the run.
//
// panic if workers or iterations is not positive.
func Measure(ctx context.Context, name string, workers, iterations int) (Result, error) {
	if workers <= 0 || iterations <= 0 {
		panic("bench: workers and iterations must be positive")
	}
	st, err := newStep(name, workers)
	if err != nil {
		return Result{}, err
	}

	var c Collection
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for range iterations {
				if err := st(gctx, &c, randomChar()); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("bench %s: %w", name, err)
	}
	return Result{
		Primitive: name,
		Workers:   workers,
		Elapsed:   time.Since(start),
		Items:     c.Len(),
	}, nil
}

// Run measures every primitive in cfg, one after another.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	names := cfg.Primitives
	if len(names) == 0 {
		names = Names()
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := Measure(ctx, name, cfg.Workers, cfg.Iterations)
		if err != nil {
			return results, err
		}
		log.Info("benchmark finished",
			zap.String("primitive", r.Primitive),
			zap.Int("workers", r.Workers),
			zap.Duration("elapsed", r.Elapsed),
			zap.Int("items", r.Items),
		)
		results = append(results, r)
	}
	return results, nil
}

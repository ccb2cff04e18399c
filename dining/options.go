package dining

import (
	"time"

	"go.uber.org/zap"
)

// Span is a closed range of durations that activity delays are drawn from.
type Span struct {
	Min, Max time.Duration
}

// DefaultSpan matches the classic simulation: one to two seconds.
var DefaultSpan = Span{Min: time.Second, Max: 2 * time.Second}

type config struct {
	think     Span
	eat       Span
	meals     int
	unitLocks bool
	logger    *zap.Logger
	metrics   *Metrics
}

func defaultConfig() config {
	return config{
		think:     DefaultSpan,
		eat:       DefaultSpan,
		unitLocks: true,
		logger:    zap.NewNop(),
	}
}

// Option configures a Table.
type Option func(*config)

// WithThink sets the range of the non-critical activity delay.
func WithThink(s Span) Option {
	return func(c *config) {
		c.think = s
	}
}

// WithEat sets the range of the critical activity delay.
func WithEat(s Span) Option {
	return func(c *config) {
		c.eat = s
	}
}

// WithMeals stops each actor after n completed cycles. Zero or a negative
// value means run until the context is cancelled.
func WithMeals(n int) Option {
	return func(c *config) {
		c.meals = n
	}
}

// WithUnitLocks controls whether actors also take the two per-unit mutexes
// while eating. On by default.
func WithUnitLocks(on bool) Option {
	return func(c *config) {
		c.unitLocks = on
	}
}

// WithLogger sets the logger used for activity narration. A nil logger
// discards output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		} else {
			c.logger = zap.NewNop()
		}
	}
}

// WithMetrics records activity into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

package dining

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Names of the instruments created by NewMetrics.
const (
	// MealsCounter counts completed cycles, labelled by actor.
	MealsCounter = "dining_meals_total"
	// WaitingGauge is the number of actors blocked in Request.
	WaitingGauge = "dining_waiting_actors"
	// WaitSecondsHisto is the time from Request to grant.
	WaitSecondsHisto = "dining_request_wait_seconds"
)

// Metrics holds the instruments a Table reports into.
type Metrics struct {
	Meals       *prometheus.CounterVec
	Waiting     prometheus.Gauge
	WaitSeconds prometheus.Histogram
}

// NewMetrics creates the dining instruments and registers them with r.
// A nil Registerer leaves them unregistered, which is handy for tests.
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Meals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MealsCounter,
			Help: "Completed request/eat/release cycles per actor.",
		}, []string{"actor"}),
		Waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: WaitingGauge,
			Help: "Actors currently blocked in the arbitrator.",
		}),
		WaitSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    WaitSecondsHisto,
			Help:    "Time spent waiting for a unit pair to be granted.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	if r == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Meals, m.Waiting, m.WaitSeconds} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) startWait() time.Time {
	if m == nil {
		return time.Time{}
	}
	m.Waiting.Inc()
	return time.Now()
}

func (m *Metrics) endWait(start time.Time) {
	if m == nil {
		return
	}
	m.Waiting.Dec()
	m.WaitSeconds.Observe(time.Since(start).Seconds())
}

func (m *Metrics) meal(id int) {
	if m == nil {
		return
	}
	m.Meals.WithLabelValues(strconv.Itoa(id)).Inc()
}

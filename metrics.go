package loom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters and histograms the executor records against.
// A nil *Metrics (the zero value of *Metrics is never used directly; use
// NewNopMetrics) no-ops every call, so instrumenting a World never forces a
// /metrics endpoint on an embedder.
type Metrics struct {
	ticksRun         prometheus.Counter
	systemsExecuted  prometheus.Counter
	systemsSkipped   *prometheus.CounterVec
	systemsPanicked  prometheus.Counter
	tickDuration     prometheus.Histogram
}

// NewMetrics registers loom's collectors against reg and returns a Metrics
// ready to pass to a Schedule.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ticksRun: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loom",
			Name:      "ticks_total",
			Help:      "Number of scheduler ticks run.",
		}),
		systemsExecuted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loom",
			Name:      "systems_executed_total",
			Help:      "Number of systems executed across all ticks.",
		}),
		systemsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loom",
			Name:      "systems_skipped_total",
			Help:      "Number of systems skipped across all ticks, by reason.",
		}, []string{"reason"}),
		systemsPanicked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loom",
			Name:      "systems_panicked_total",
			Help:      "Number of systems recovered from a panic.",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "loom",
			Name:      "tick_duration_seconds",
			Help:      "Wall time of a single Schedule.Run call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// NewNopMetrics returns a Metrics whose recordings are all discarded.
func NewNopMetrics() *Metrics {
	return &Metrics{
		ticksRun:        prometheus.NewCounter(prometheus.CounterOpts{Name: "nop"}),
		systemsExecuted: prometheus.NewCounter(prometheus.CounterOpts{Name: "nop"}),
		systemsSkipped:  prometheus.NewCounterVec(prometheus.CounterOpts{Name: "nop"}, []string{"reason"}),
		systemsPanicked: prometheus.NewCounter(prometheus.CounterOpts{Name: "nop"}),
		tickDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Name: "nop"}),
	}
}

func (m *Metrics) recordSkip(reason string) {
	if m == nil {
		return
	}
	m.systemsSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) recordPanic() {
	if m == nil {
		return
	}
	m.systemsPanicked.Inc()
}

func (m *Metrics) recordExecuted() {
	if m == nil {
		return
	}
	m.systemsExecuted.Inc()
}

func (m *Metrics) recordTick(seconds float64) {
	if m == nil {
		return
	}
	m.ticksRun.Inc()
	m.tickDuration.Observe(seconds)
}

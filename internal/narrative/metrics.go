package narrative

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report orchestrator activity.
// A nil *Metrics records nothing.
type Metrics struct {
	attempts    prometheus.Counter
	retries     prometheus.Counter
	outcomes    *prometheus.CounterVec
	runDuration prometheus.Histogram
}

// MustNewMetrics constructs and registers the collectors on reg. Registration
// errors panic, mirroring promauto. Pass a fresh registry in tests.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vibe",
			Subsystem: "narrative",
			Name:      "attempts_total",
			Help:      "Collaborator calls made, including retries.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vibe",
			Subsystem: "narrative",
			Name:      "retries_total",
			Help:      "Retries scheduled after a transient collaborator failure.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vibe",
			Subsystem: "narrative",
			Name:      "runs_total",
			Help:      "Completed orchestrator runs by final state.",
		}, []string{"state"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vibe",
			Subsystem: "narrative",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock run duration including the minimum-duration floor.",
			Buckets:   []float64{1, 2, 4, 6, 8, 12, 16, 24},
		}),
	}
	reg.MustRegister(m.attempts, m.retries, m.outcomes, m.runDuration)
	return m
}

func (m *Metrics) observeAttempt() {
	if m == nil {
		return
	}
	m.attempts.Inc()
}

func (m *Metrics) observeRetry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

func (m *Metrics) observeRun(final State, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(string(final)).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

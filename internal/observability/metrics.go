// File: internal/observability/metrics.go
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "webpilot"

// Metrics groups the collectors shared by the registry, the action facade
// and the screenshot writer. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsStarted *prometheus.CounterVec
	SessionsEnded   prometheus.Counter
	LaunchFailures  *prometheus.CounterVec
	Actions         *prometheus.CounterVec
	Screenshots     *prometheus.CounterVec
	WaitDuration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.NewRegistry()
// in tests to keep them isolated from the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_started_total",
			Help:      "Browser sessions started, by browser kind.",
		}, []string{"kind"}),
		SessionsEnded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_ended_total",
			Help:      "Browser sessions released.",
		}),
		LaunchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "session_launch_failures_total",
			Help:      "Session launches that failed, by browser kind.",
		}, []string{"kind"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_total",
			Help:      "Facade operations, by verb and outcome.",
		}, []string{"verb", "outcome"}),
		Screenshots: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "screenshots_total",
			Help:      "Screenshot captures, by outcome.",
		}, []string{"outcome"}),
		WaitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "wait_duration_seconds",
			Help:      "Time spent in explicit waits, by predicate and outcome.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 40},
		}, []string{"predicate", "outcome"}),
	}
}

// SessionStarted counts a launched session of the given kind.
func (m *Metrics) SessionStarted(kind string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(kind).Inc()
}

// SessionEnded counts a session that was quit.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.SessionsEnded.Inc()
}

// LaunchFailed counts a session that could not be launched or prepared.
func (m *Metrics) LaunchFailed(kind string) {
	if m == nil {
		return
	}
	m.LaunchFailures.WithLabelValues(kind).Inc()
}

// Action records a facade verb; outcome is "ok", "error" or "swallowed".
func (m *Metrics) Action(verb, outcome string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(verb, outcome).Inc()
}

// Screenshot records a capture; outcome is "ok" or "error".
func (m *Metrics) Screenshot(outcome string) {
	if m == nil {
		return
	}
	m.Screenshots.WithLabelValues(outcome).Inc()
}

// ObserveWait records how long a wait on predicate took and how it ended.
func (m *Metrics) ObserveWait(predicate, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.WaitDuration.WithLabelValues(predicate, outcome).Observe(d.Seconds())
}

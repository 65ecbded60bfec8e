package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rnd"

// Notification dispatch results.
const (
	ResultSent    = "sent"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	stageTransitions   *prometheus.CounterVec
	stageTargetUpdates prometheus.Counter
	requestsCreated    *prometheus.CounterVec
	notifications      *prometheus.CounterVec
}

// New registers every collector on a fresh registry, so parallel tests and
// multiple containers never collide on the global one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		stageTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_transitions_total",
			Help:      "Committed stage transitions by from/to stage.",
		}, []string{"from", "to"}),
		stageTargetUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_target_updates_total",
			Help:      "Committed stage target upserts.",
		}),
		requestsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_created_total",
			Help:      "Requests created by product area.",
		}, []string{"product_area"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification dispatch attempts by event type and result.",
		}, []string{"event_type", "result"}),
	}
}

func (m *Metrics) StageTransition(from, to string) {
	m.stageTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) StageTargetUpdated() {
	m.stageTargetUpdates.Inc()
}

func (m *Metrics) RequestCreated(productArea string) {
	m.requestsCreated.WithLabelValues(productArea).Inc()
}

func (m *Metrics) Notification(eventType, result string) {
	m.notifications.WithLabelValues(eventType, result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

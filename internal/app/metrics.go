package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts use case outcomes. A nil *Metrics records nothing.
type Metrics struct {
	created            prometheus.Counter
	validationFailures *prometheus.CounterVec
	published          *prometheus.CounterVec
	publishFailures    prometheus.Counter
}

// NewMetrics registers the application metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "examples_created_total",
			Help: "Examples persisted by the create use case.",
		}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "example_validation_failures_total",
			Help: "Write use cases rejected by example validation rules.",
		}, []string{"operation"}),
		published: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_events_published_total",
			Help: "Domain events handed to the event publisher.",
		}, []string{"event"}),
		publishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "domain_event_publish_failures_total",
			Help: "Publish calls that returned an error.",
		}),
	}
}

func (m *Metrics) exampleCreated() {
	if m == nil {
		return
	}

	m.created.Inc()
}

func (m *Metrics) validationFailed(operation string) {
	if m == nil {
		return
	}

	m.validationFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) eventPublished(name string) {
	if m == nil {
		return
	}

	m.published.WithLabelValues(name).Inc()
}

func (m *Metrics) publishFailed() {
	if m == nil {
		return
	}

	m.publishFailures.Inc()
}

// Package metrics exposes Prometheus collectors for route scoring and
// navigation. Collectors are registered on a private registry so tests and
// multiple fx apps never collide on the default one.
package metrics

import (
	"net/http"
	"time"

	"saferoute/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "saferoute"

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	routesScored      prometheus.Counter
	scoringDuration   prometheus.Histogram
	routeRisk         prometheus.Histogram
	providerFailures  *prometheus.CounterVec
	navigationEvents  *prometheus.CounterVec
	reroutes          *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	positionsReceived *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		routesScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_scored_total",
			Help:      "Routes scored for risk",
		}),
		scoringDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Time to score one request's routes, including traffic lookups",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		}),
		routeRisk: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_risk",
			Help:      "Aggregate risk of scored routes",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		providerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_failures_total",
			Help:      "External provider calls that failed and were replaced by defaults",
		}, []string{"provider"}),
		navigationEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_events_total",
			Help:      "Navigation events by type",
		}, []string{"type"}),
		reroutes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reroutes_total",
			Help:      "Reroute outcomes",
		}, []string{"outcome"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "navigation_sessions_active",
			Help:      "Navigation sessions currently registered",
		}),
		positionsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "positions_received_total",
			Help:      "Position fixes received by source",
		}, []string{"source"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// ObserveScoring records one scoring request.
func (m *Metrics) ObserveScoring(routes []entity.Route, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.scoringDuration.Observe(elapsed.Seconds())
	m.routesScored.Add(float64(len(routes)))
	for i := range routes {
		m.routeRisk.Observe(routes[i].AggregateRisk())
	}
}

// ProviderFailed counts a provider failure that degraded to a default.
func (m *Metrics) ProviderFailed(provider string) {
	if m == nil {
		return
	}
	m.providerFailures.WithLabelValues(provider).Inc()
}

// NavigationEvent counts a navigation event.
func (m *Metrics) NavigationEvent(eventType entity.NavigationEventType) {
	if m == nil {
		return
	}
	m.navigationEvents.WithLabelValues(string(eventType)).Inc()
	switch eventType {
	case entity.EventRerouted:
		m.reroutes.WithLabelValues("success").Inc()
	case entity.EventRerouteFailed:
		m.reroutes.WithLabelValues("failure").Inc()
	}
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// PositionReceived counts a fix from source (http, mqtt).
func (m *Metrics) PositionReceived(source string) {
	if m == nil {
		return
	}
	m.positionsReceived.WithLabelValues(source).Inc()
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)

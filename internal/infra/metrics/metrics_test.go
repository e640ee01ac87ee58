package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saferoute/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	return rec.Body.String()
}

func TestMetrics_Exposition(t *testing.T) {
	m := New()

	route := entity.NewRoute(nil, []entity.Segment{{LengthMeters: 10, RiskScore: 0.4}}, entity.RouteSummary{})
	m.ObserveScoring([]entity.Route{*route, *route}, 20*time.Millisecond)
	m.ProviderFailed("traffic")
	m.ProviderFailed("traffic")
	m.NavigationEvent(entity.EventRerouted)
	m.NavigationEvent(entity.EventRerouteFailed)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.PositionReceived("mqtt")

	body := scrape(t, m)

	for _, line := range []string{
		`saferoute_routes_scored_total 2`,
		`saferoute_provider_failures_total{provider="traffic"} 2`,
		`saferoute_reroutes_total{outcome="success"} 1`,
		`saferoute_reroutes_total{outcome="failure"} 1`,
		`saferoute_navigation_events_total{type="rerouted"} 1`,
		`saferoute_navigation_sessions_active 1`,
		`saferoute_positions_received_total{source="mqtt"} 1`,
		`saferoute_scoring_duration_seconds_count 1`,
		`saferoute_route_risk_count 2`,
	} {
		assert.Contains(t, body, line)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveScoring(nil, time.Second)
		m.ProviderFailed("pois")
		m.NavigationEvent(entity.EventSessionStarted)
		m.SessionOpened()
		m.SessionClosed()
		m.PositionReceived("http")
	})
	assert.Nil(t, m.Registry())
	assert.NotNil(t, m.Handler())
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	first, second := New(), New()
	first.ProviderFailed("pois")

	assert.Contains(t, scrape(t, first), `saferoute_provider_failures_total{provider="pois"} 1`)
	assert.NotContains(t, scrape(t, second), `provider="pois"`)
}

package provider

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"saferoute/config"
	"saferoute/internal/geo"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonServer(t *testing.T, handler func(r *http.Request) (int, any)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, body := handler(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestOSRMRouter_FetchRoutes(t *testing.T) {
	codec := polyline.Codec{Dim: 2, Scale: 1e6}
	primary := string(codec.EncodeCoords(nil, [][]float64{{25.033, 121.5654}, {25.034, 121.5664}}))
	alternative := string(codec.EncodeCoords(nil, [][]float64{{25.033, 121.5654}, {25.035, 121.5655}, {25.034, 121.5664}}))

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent string
	server := jsonServer(t, func(r *http.Request) (int, any) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")

		return http.StatusOK, map[string]any{
			"code": "Ok",
			"routes": []map[string]any{
				{"distance": 150.5, "duration": 110.0, "geometry": primary},
				{"distance": 320.0, "duration": 240.0, "geometry": alternative},
			},
		}
	})

	router := NewOSRMRouter(server.URL, "", WithUserAgent("saferoute-test"))
	routes, err := router.FetchRoutes(context.Background(),
		geo.Point{Lat: 25.033, Lon: 121.5654},
		geo.Point{Lat: 25.034, Lon: 121.5664},
	)
	require.NoError(t, err)

	assert.Equal(t, "/route/v1/foot/121.565400,25.033000;121.566400,25.034000", gotPath)
	assert.Equal(t, "true", gotQuery.Get("alternatives"))
	assert.Equal(t, "polyline6", gotQuery.Get("geometries"))
	assert.Equal(t, "saferoute-test", gotUserAgent)

	require.Len(t, routes, 2)
	assert.InDelta(t, 150.5, routes[0].DistanceMeters, 1e-9)
	assert.InDelta(t, 110.0, routes[0].DurationSeconds, 1e-9)

	points := geo.Normalize(routes[1].Geometry)
	require.Len(t, points, 3)
	assert.InDelta(t, 25.035, points[1].Lat, 1e-6)
	assert.InDelta(t, 121.5655, points[1].Lon, 1e-6)
}

func TestOSRMRouter_FetchRoutes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		errMsg string
	}{
		{
			name:   "no route",
			status: http.StatusOK,
			body:   map[string]any{"code": "NoRoute", "message": "Impossible route"},
			errMsg: "NoRoute",
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   map[string]any{"message": "upstream"},
			errMsg: "unexpected status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, func(*http.Request) (int, any) {
				return tt.status, tt.body
			})

			routes, err := NewOSRMRouter(server.URL, "car").FetchRoutes(context.Background(), geo.Point{}, geo.Point{Lat: 1, Lon: 1})

			require.Error(t, err)
			assert.Nil(t, routes)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestOSRMRouter_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	router := NewOSRMRouter(server.URL, "foot", WithTimeout(20*time.Millisecond))
	_, err := router.FetchRoutes(context.Background(), geo.Point{}, geo.Point{Lat: 1, Lon: 1})

	require.Error(t, err)
}

func TestStraightRouter_FetchRoutes(t *testing.T) {
	origin := geo.Point{Lat: 0, Lon: 0}
	destination := geo.Point{Lat: 0, Lon: 0.01}

	routes, err := NewStraightRouter(3.6).FetchRoutes(context.Background(), origin, destination)
	require.NoError(t, err)
	require.Len(t, routes, 1)

	distance := geo.Distance(origin, destination)
	assert.InDelta(t, distance, routes[0].DistanceMeters, 1e-9)
	// 3.6 km/h is 1 m/s
	assert.InDelta(t, distance, routes[0].DurationSeconds, 1e-6)
	assert.Equal(t, []geo.Point{origin, destination}, routes[0].Geometry)
}

func TestStraightRouter_FetchRoutes_Errors(t *testing.T) {
	router := NewStraightRouter(0)
	assert.InDelta(t, defaultSpeedKmh, router.speedKmh, 1e-9)

	_, err := router.FetchRoutes(context.Background(), geo.Point{Lat: 95}, geo.Point{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = router.FetchRoutes(ctx, geo.Point{}, geo.Point{Lat: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOverpassPOISearch_FetchPOIs(t *testing.T) {
	var query string
	server := jsonServer(t, func(r *http.Request) (int, any) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		query = r.PostForm.Get("data")

		return http.StatusOK, map[string]any{
			"elements": []map[string]any{
				{"type": "node", "lat": 25.0331, "lon": 121.5651, "tags": map[string]string{"amenity": "cafe", "name": "Corner Cafe"}},
				{"type": "node", "lat": 25.0332, "lon": 121.5652, "tags": map[string]string{"shop": "convenience"}},
				{"type": "way", "lat": 25.0333, "lon": 121.5653},
				{"type": "node", "lat": 125, "lon": 121.5653},
			},
		}
	})

	pois, err := NewOverpassPOISearch(server.URL).FetchPOIs(context.Background(), geo.Point{Lat: 25.033, Lon: 121.565}, 300)
	require.NoError(t, err)

	assert.True(t, strings.Contains(query, "around:300,25.033000,121.565000"), query)
	require.Len(t, pois, 2)
	assert.Equal(t, "cafe", pois[0].Category)
	assert.Equal(t, "Corner Cafe", pois[0].Name)
	assert.Equal(t, "shop", pois[1].Category)
}

func TestTomTomTrafficFlow_FetchTrafficFlow(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		expected bool
	}{
		{
			name: "flow segment present",
			body: map[string]any{
				"flowSegmentData": map[string]any{"currentSpeed": 18.0, "freeFlowSpeed": 45.0},
			},
			expected: true,
		},
		{
			name:     "no segment",
			body:     map[string]any{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var query url.Values
			server := jsonServer(t, func(r *http.Request) (int, any) {
				query = r.URL.Query()

				return http.StatusOK, tt.body
			})

			sample, err := NewTomTomTrafficFlow(server.URL, "secret").FetchTrafficFlow(context.Background(), geo.Point{Lat: 10, Lon: 20})
			require.NoError(t, err)

			assert.Equal(t, "secret", query.Get("key"))
			assert.Equal(t, "10.000000,20.000000", query.Get("point"))
			if !tt.expected {
				assert.Nil(t, sample)

				return
			}
			require.NotNil(t, sample)
			assert.InDelta(t, 18.0, sample.CurrentSpeed, 1e-9)
			assert.InDelta(t, 45.0, sample.FreeFlowSpeed, 1e-9)
		})
	}
}

func TestJSONIncidentFeed_FetchIncidents(t *testing.T) {
	var bbox string
	server := jsonServer(t, func(r *http.Request) (int, any) {
		bbox = r.URL.Query().Get("bbox")

		return http.StatusOK, map[string]any{
			"incidents": []map[string]any{
				{"id": "a", "lat": 1.0, "lon": 2.0, "severity": 3, "category": "theft"},
				{"id": "b", "lat": 91.0, "lon": 2.0, "severity": 2},
				{"id": "c", "lat": 1.5, "lon": 2.5, "severity": 9},
			},
		}
	})

	bound := orb.Bound{Min: orb.Point{2, 1}, Max: orb.Point{3, 2}}
	incidents, err := NewJSONIncidentFeed(server.URL).FetchIncidents(context.Background(), bound)
	require.NoError(t, err)

	assert.Equal(t, "2.000000,1.000000,3.000000,2.000000", bbox)
	require.Len(t, incidents, 2)
	assert.Equal(t, "a", incidents[0].ID)
	assert.Equal(t, "theft", incidents[0].Category)
	assert.Equal(t, 9, incidents[1].Severity)
	assert.Equal(t, 4, incidents[1].ClampedSeverity())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		providers *config.ProvidersConfig
		check     func(t *testing.T, result Result)
		errMsg    string
	}{
		{
			name:      "everything disabled",
			providers: &config.ProvidersConfig{},
			check: func(t *testing.T, result Result) {
				assert.IsType(t, &StraightRouter{}, result.Routing)
				assert.IsType(t, disabledIncidentFeed{}, result.Incidents)
				assert.IsType(t, disabledPOISearch{}, result.POIs)
				assert.Nil(t, result.Traffic)
			},
		},
		{
			name: "everything enabled",
			providers: &config.ProvidersConfig{
				Timeout:   time.Second,
				Routing:   config.RoutingProviderConfig{Enabled: true, BaseURL: "http://osrm"},
				Incidents: config.IncidentFeedConfig{Enabled: true, BaseURL: "http://incidents"},
				POIs:      config.POISearchConfig{Enabled: true, BaseURL: "http://overpass"},
				Traffic:   config.TrafficFlowConfig{Enabled: true, BaseURL: "http://tomtom", APIKey: "k"},
			},
			check: func(t *testing.T, result Result) {
				assert.IsType(t, &OSRMRouter{}, result.Routing)
				assert.IsType(t, &JSONIncidentFeed{}, result.Incidents)
				assert.IsType(t, &OverpassPOISearch{}, result.POIs)
				assert.IsType(t, &TomTomTrafficFlow{}, result.Traffic)
			},
		},
		{
			name: "routing without base URL",
			providers: &config.ProvidersConfig{
				Routing: config.RoutingProviderConfig{Enabled: true},
			},
			errMsg: "base URL is required",
		},
		{
			name: "traffic without API key",
			providers: &config.ProvidersConfig{
				Traffic: config.TrafficFlowConfig{Enabled: true, BaseURL: "http://tomtom"},
			},
			errMsg: "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(Params{
				Config: &config.Config{Providers: tt.providers},
				Logger: testLogger(),
			})

			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)

				return
			}
			require.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestDisabledProviders(t *testing.T) {
	incidents, err := disabledIncidentFeed{}.FetchIncidents(context.Background(), orb.Bound{})
	require.NoError(t, err)
	assert.Empty(t, incidents)

	pois, err := disabledPOISearch{}.FetchPOIs(context.Background(), geo.Point{}, 100)
	require.NoError(t, err)
	assert.Empty(t, pois)
}

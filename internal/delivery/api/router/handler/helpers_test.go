package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"saferoute/internal/delivery/api/validator"
	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta *struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

const testSessionID = "7b0f9a56-3c1e-4d2a-9f0e-2a6c5d8e1b34"

func newTestEcho(routes *RouteHandler, nav *NavigationHandler) *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	if routes != nil {
		e.POST("/routes/score", routes.ScoreRoutes)
		e.POST("/routes/safe", routes.PlanSafeRoutes)
	}
	if nav != nil {
		e.POST("/navigation/sessions", nav.StartSession)
		e.GET("/navigation/sessions/:id", nav.GetSession)
		e.DELETE("/navigation/sessions/:id", nav.StopSession)
		e.POST("/navigation/sessions/:id/position", nav.UpdatePosition)
		e.POST("/navigation/sessions/:id/error", nav.ReportGPSError)
		e.POST("/navigation/sessions/:id/reroute", nav.RetryReroute)
	}

	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

// scoredRoute is a three-point northward route with two segments of equal
// length scoring 0.2 and 0.6.
func scoredRoute() entity.Route {
	points := []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0.0005, Lon: 0}, {Lat: 0.001, Lon: 0}}
	length := geo.Distance(points[0], points[1])

	return *entity.NewRoute(points, []entity.Segment{
		{
			Start: points[0], End: points[1], LengthMeters: length, RiskScore: 0.2,
			StartIndex: 0, EndIndex: 1, Features: &entity.FeatureScores{Lighting: 1, POISafety: 1},
		},
		{
			Start: points[1], End: points[2], LengthMeters: length, RiskScore: 0.6,
			StartIndex: 1, EndIndex: 2,
		},
	}, entity.RouteSummary{DistanceMeters: 2 * length, DurationSeconds: 80})
}

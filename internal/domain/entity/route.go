package entity

import (
	"encoding/json"

	"saferoute/internal/geo"
)

// RoutePoint is an immutable WGS84 position on a route.
type RoutePoint = geo.Point

// FeatureScores is the per-signal breakdown behind a segment risk, each in [0, 1].
type FeatureScores struct {
	Lighting  float64 `json:"lighting"`
	Incident  float64 `json:"incident"`
	POISafety float64 `json:"poiSafety"`
	Traffic   float64 `json:"traffic"`
	Isolation float64 `json:"isolation"`
	TimeOfDay float64 `json:"timeOfDay"`
}

// Segment is a ~50 m piece of a route and the unit of risk scoring.
// Consecutive segments share an endpoint.
type Segment struct {
	Start        RoutePoint     `json:"start"`
	End          RoutePoint     `json:"end"`
	LengthMeters float64        `json:"lengthMeters"`
	RiskScore    float64        `json:"riskScore"`
	Features     *FeatureScores `json:"features,omitempty"`

	// StartIndex and EndIndex address the route vertices the segment spans.
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// RouteSummary carries the provider's distance and duration.
type RouteSummary struct {
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
}

// Route is a scored route. Its aggregate risk is derived from the segments
// and recomputed by SetSegments; it cannot be assigned directly.
type Route struct {
	Points   []RoutePoint `json:"points"`
	Segments []Segment    `json:"segments"`
	Summary  RouteSummary `json:"summary"`

	// ProviderIndex is the route's position in the provider response and
	// breaks ties when ranking.
	ProviderIndex int `json:"providerIndex"`

	aggregateRisk float64
}

// NewRoute builds a route over points and computes its aggregate risk.
func NewRoute(points []RoutePoint, segments []Segment, summary RouteSummary) *Route {
	route := &Route{
		Points:  points,
		Summary: summary,
	}
	route.SetSegments(segments)

	return route
}

// SetSegments replaces the segments and recomputes the aggregate risk.
func (r *Route) SetSegments(segments []Segment) {
	r.Segments = segments
	r.aggregateRisk = LengthWeightedRisk(segments)
}

// AggregateRisk returns the length-weighted route risk in [0, 1].
func (r *Route) AggregateRisk() float64 {
	return r.aggregateRisk
}

// Destination returns the last route point.
func (r *Route) Destination() (RoutePoint, bool) {
	if len(r.Points) == 0 {
		return RoutePoint{}, false
	}

	return r.Points[len(r.Points)-1], true
}

// MarshalJSON includes the derived aggregate risk.
func (r Route) MarshalJSON() ([]byte, error) {
	type plain Route

	return json.Marshal(struct {
		plain
		AggregateRisk float64 `json:"aggregateRisk"`
	}{
		plain:         plain(r),
		AggregateRisk: r.aggregateRisk,
	})
}

// LengthWeightedRisk is Σ(risk × length) / Σ(length). A route with no
// segments or zero total length is maximally risky, so an unscoreable route
// never ranks as safe.
func LengthWeightedRisk(segments []Segment) float64 {
	var weighted, total float64
	for _, seg := range segments {
		weighted += seg.RiskScore * seg.LengthMeters
		total += seg.LengthMeters
	}

	if total <= 0 {
		return 1.0
	}

	return clamp01(weighted / total)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// RawRoute is a provider route before scoring. Geometry may be any shape
// accepted by geo.Normalize.
type RawRoute struct {
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
	Geometry        any     `json:"geometry"`
}

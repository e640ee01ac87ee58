package risk

import (
	"sort"

	"saferoute/internal/domain/entity"
)

// Weights are the coefficients of the linear segment risk model.
type Weights struct {
	Lighting  float64 `json:"lighting" yaml:"lighting"`
	Incident  float64 `json:"incident" yaml:"incident"`
	POISafety float64 `json:"poiSafety" yaml:"poiSafety"`
	Traffic   float64 `json:"traffic" yaml:"traffic"`
	Isolation float64 `json:"isolation" yaml:"isolation"`
	TimeOfDay float64 `json:"timeOfDay" yaml:"timeOfDay"`
}

// DefaultWeights returns the standard weights. They sum to 1.
func DefaultWeights() Weights {
	return Weights{
		Lighting:  0.25,
		Incident:  0.25,
		POISafety: 0.20,
		Traffic:   0.15,
		Isolation: 0.10,
		TimeOfDay: 0.05,
	}
}

// IsZero reports whether no weight is set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// SegmentRisk combines feature scores into a risk in [0, 1]. Lighting and POI
// safety lower risk, so they enter inverted.
func SegmentRisk(f entity.FeatureScores, w Weights) float64 {
	risk := w.Lighting*(1-f.Lighting) +
		w.Incident*f.Incident +
		w.POISafety*(1-f.POISafety) +
		w.Traffic*f.Traffic +
		w.Isolation*f.Isolation +
		w.TimeOfDay*f.TimeOfDay

	return clamp01(risk)
}

// RouteRisk is the length-weighted mean segment risk; see entity.LengthWeightedRisk.
func RouteRisk(segments []entity.Segment) float64 {
	return entity.LengthWeightedRisk(segments)
}

// Rank sorts routes by ascending aggregate risk in place. Ties keep their
// provider order.
func Rank(routes []entity.Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].AggregateRisk() < routes[j].AggregateRisk()
	})
}

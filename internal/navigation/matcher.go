package navigation

import (
	"math"

	"saferoute/internal/geo"
)

// MatchResult is a live position snapped onto a route.
type MatchResult struct {
	// Distance is meters from the position to Point.
	Distance float64 `json:"distance"`
	// SegmentIndex addresses the route edge [points[i], points[i+1]].
	SegmentIndex int       `json:"segmentIndex"`
	Point        geo.Point `json:"matchedPoint"`
	// Fraction is how far along the matched edge Point lies, in [0, 1].
	Fraction float64 `json:"fraction"`
	// Progress is (SegmentIndex + Fraction) / (N - 1), clamped to [0, 1].
	Progress float64 `json:"progress"`
}

// Match projects p onto every edge of the route and keeps the closest
// projection. The first edge wins ties. ok is false when the route has fewer
// than two points.
func Match(points []geo.Point, p geo.Point) (MatchResult, bool) {
	if len(points) < 2 {
		return MatchResult{}, false
	}

	best := MatchResult{Distance: math.Inf(1)}
	for i := 0; i < len(points)-1; i++ {
		proj := geo.ProjectOntoSegment(p, points[i], points[i+1])
		if proj.Distance < best.Distance {
			best = MatchResult{
				Distance:     proj.Distance,
				SegmentIndex: i,
				Point:        proj.Point,
				Fraction:     proj.Fraction,
			}
		}
	}

	edges := float64(len(points) - 1)
	best.Progress = math.Max(0, math.Min(1, (float64(best.SegmentIndex)+best.Fraction)/edges))

	return best, true
}

package handler

import (
	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RoutesFeatureCollection renders ranked routes as one FeatureCollection with
// a LineString per scored segment. A route without segments is drawn whole.
// Every feature carries its route rank (0 is safest) and risk.
func RoutesFeatureCollection(routes []entity.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for rank := range routes {
		route := &routes[rank]

		if len(route.Segments) == 0 {
			if len(route.Points) < 2 {
				continue
			}
			feature := geojson.NewFeature(lineString(route.Points))
			feature.Properties["rank"] = rank
			feature.Properties["risk"] = route.AggregateRisk()
			feature.Properties["aggregateRisk"] = route.AggregateRisk()
			fc.Append(feature)

			continue
		}

		for i, seg := range route.Segments {
			feature := geojson.NewFeature(segmentLine(route.Points, seg))
			feature.Properties["rank"] = rank
			feature.Properties["segment"] = i
			feature.Properties["risk"] = seg.RiskScore
			feature.Properties["aggregateRisk"] = route.AggregateRisk()
			feature.Properties["lengthMeters"] = seg.LengthMeters
			if seg.Features != nil {
				feature.Properties["features"] = seg.Features
			}
			fc.Append(feature)
		}
	}

	return fc
}

// segmentLine follows the route vertices a segment spans, falling back to
// its endpoints when the indexes do not address points.
func segmentLine(points []geo.Point, seg entity.Segment) orb.LineString {
	if seg.StartIndex >= 0 && seg.StartIndex < seg.EndIndex && seg.EndIndex < len(points) {
		return lineString(points[seg.StartIndex : seg.EndIndex+1])
	}

	return orb.LineString{seg.Start.Orb(), seg.End.Orb()}
}

func lineString(points []geo.Point) orb.LineString {
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		line = append(line, p.Orb())
	}

	return line
}

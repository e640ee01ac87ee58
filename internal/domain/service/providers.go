package service

import (
	"context"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"

	"github.com/paulmach/orb"
)

// RoutingProvider returns candidate routes between two points, in provider order.
type RoutingProvider interface {
	FetchRoutes(ctx context.Context, origin, destination geo.Point) ([]entity.RawRoute, error)
}

// IncidentFeed returns incidents inside a bounding box.
type IncidentFeed interface {
	FetchIncidents(ctx context.Context, bbox orb.Bound) ([]entity.Incident, error)
}

// POISearch returns points of interest within radiusMeters of center.
type POISearch interface {
	FetchPOIs(ctx context.Context, center geo.Point, radiusMeters float64) ([]entity.POI, error)
}

// TrafficFlowProvider returns the traffic flow near a location.
// A nil sample with a nil error means no flow data is available there.
type TrafficFlowProvider interface {
	FetchTrafficFlow(ctx context.Context, position geo.Point) (*entity.TrafficFlowSample, error)
}

package provider

import (
	"context"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/errors"
	"saferoute/internal/geo"
)

// fallback walking speed when config is missing or invalid
const defaultSpeedKmh = 5.0

// StraightRouter is the routing fallback used when no routing service is
// configured: a single great-circle route from origin to destination, with
// duration estimated from a constant speed.
type StraightRouter struct {
	speedKmh float64
}

var _ service.RoutingProvider = (*StraightRouter)(nil)

// NewStraightRouter creates a fallback router travelling at speedKmh.
func NewStraightRouter(speedKmh float64) *StraightRouter {
	if speedKmh <= 0 {
		speedKmh = defaultSpeedKmh
	}

	return &StraightRouter{speedKmh: speedKmh}
}

// FetchRoutes returns exactly one two-point route.
func (r *StraightRouter) FetchRoutes(ctx context.Context, origin, destination geo.Point) ([]entity.RawRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "straight route canceled")
	}
	if !origin.Valid() || !destination.Valid() {
		return nil, errors.New("straight route: invalid coordinate")
	}

	distance := geo.Distance(origin, destination)
	speedMps := r.speedKmh * 1000 / 3600

	return []entity.RawRoute{{
		DistanceMeters:  distance,
		DurationSeconds: distance / speedMps,
		Geometry:        []geo.Point{origin, destination},
	}}, nil
}

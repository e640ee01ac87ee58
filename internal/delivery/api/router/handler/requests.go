package handler

import (
	"encoding/json"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
)

// Output formats for ranked routes
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
)

// PointRequest is a WGS84 position
type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

func (p *PointRequest) point() geo.Point {
	return geo.Point{Lat: *p.Lat, Lon: *p.Lon}
}

func (p *PointRequest) pointPtr() *geo.Point {
	if p == nil {
		return nil
	}
	point := p.point()

	return &point
}

// RawRouteRequest is an unscored route. Geometry may be an encoded
// polyline, a coordinate array or a GeoJSON LineString.
type RawRouteRequest struct {
	Distance float64         `json:"distance" validate:"min=0"`
	Duration float64         `json:"duration" validate:"min=0"`
	Geometry json.RawMessage `json:"geometry" validate:"required"`
}

func (r *RawRouteRequest) rawRoute() entity.RawRoute {
	return entity.RawRoute{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Geometry:        r.Geometry,
	}
}

// IncidentRequest is a reported incident. Severity is clamped to 1..4.
type IncidentRequest struct {
	ID       string   `json:"id"`
	Lat      *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon      *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Severity int      `json:"severity"`
	Category string   `json:"category"`
}

// POIRequest is a point of interest near the routes
type POIRequest struct {
	Lat      *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon      *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
}

// ScoreRoutesRequest represents the request body for scoring caller-supplied routes
type ScoreRoutesRequest struct {
	Routes    []RawRouteRequest `json:"routes" validate:"required,min=1,dive"`
	Incidents []IncidentRequest `json:"incidents" validate:"dive"`
	POIs      []POIRequest      `json:"pois" validate:"dive"`
	Format    string            `json:"format" validate:"omitempty,oneof=json geojson"`
}

// PlanSafeRoutesRequest represents the request body for planning safe routes
type PlanSafeRoutesRequest struct {
	Origin      *PointRequest `json:"origin" validate:"required"`
	Destination *PointRequest `json:"destination" validate:"required"`
	Format      string        `json:"format" validate:"omitempty,oneof=json geojson"`
}

// StartNavigationRequest starts a session on Route, or on the safest route
// from Origin to Destination when Route is absent
type StartNavigationRequest struct {
	Origin      *PointRequest    `json:"origin" validate:"omitempty"`
	Destination *PointRequest    `json:"destination" validate:"omitempty"`
	Route       *RawRouteRequest `json:"route" validate:"omitempty"`
}

// GPSErrorRequest reports why position fixes stopped
type GPSErrorRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func incidents(reqs []IncidentRequest) []entity.Incident {
	out := make([]entity.Incident, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, entity.Incident{
			ID:       req.ID,
			Position: geo.Point{Lat: *req.Lat, Lon: *req.Lon},
			Severity: req.Severity,
			Category: req.Category,
		})
	}

	return out
}

func pois(reqs []POIRequest) []entity.POI {
	out := make([]entity.POI, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, entity.POI{
			Position: geo.Point{Lat: *req.Lat, Lon: *req.Lon},
			Category: req.Category,
			Name:     req.Name,
		})
	}

	return out
}

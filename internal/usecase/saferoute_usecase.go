// Package usecase defines the application's business operations.
package usecase

import (
	"context"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
)

// ScoreRoutesInput carries candidate routes and the context data to score them against
type ScoreRoutesInput struct {
	Routes    []entity.RawRoute
	Incidents []entity.Incident
	POIs      []entity.POI
}

// PlanSafeRoutesInput is an origin/destination pair to route and score
type PlanSafeRoutesInput struct {
	Origin      geo.Point
	Destination geo.Point
}

// SafeRouteUsecase defines the interface for route risk scoring use cases
type SafeRouteUsecase interface {
	// ScoreRoutes scores caller-supplied routes and returns them ranked safest first
	ScoreRoutes(ctx context.Context, input *ScoreRoutesInput) ([]entity.Route, error)

	// PlanSafeRoutes fetches alternatives from the routing provider, gathers
	// incidents and POIs around them, and returns them ranked safest first
	PlanSafeRoutes(ctx context.Context, input *PlanSafeRoutesInput) ([]entity.Route, error)
}

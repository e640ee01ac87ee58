// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"saferoute/config"
	"saferoute/internal/domain/entity"
	domainerrors "saferoute/internal/domain/errors"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"
	"saferoute/internal/infra/metrics"
	"saferoute/internal/risk"
	"saferoute/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// fallback paddings to keep planning functional when config is missing/invalid
const (
	defaultPOISearchPaddingMeters    = 200.0
	defaultIncidentBBoxPaddingMeters = 100.0
)

// Collaborator names used in logs and the provider failure metric
const (
	collaboratorRouting   = "routing"
	collaboratorIncidents = "incidents"
	collaboratorPOIs      = "pois"
)

// SafeRouteServiceParams holds dependencies for the safe route service, injected by Fx
type SafeRouteServiceParams struct {
	fx.In

	Config    *config.Config
	Routing   service.RoutingProvider
	Incidents service.IncidentFeed
	POIs      service.POISearch
	Traffic   service.TrafficFlowProvider `optional:"true"`
	Metrics   *metrics.Metrics            `optional:"true"`
	Logger    *slog.Logger
}

type safeRouteService struct {
	scorer    *risk.Scorer
	routing   service.RoutingProvider
	incidents service.IncidentFeed
	pois      service.POISearch
	metrics   *metrics.Metrics
	logger    *slog.Logger

	poiPadding      float64
	incidentPadding float64
}

// NewSafeRouteService creates a new safe route service instance
func NewSafeRouteService(params SafeRouteServiceParams) usecase.SafeRouteUsecase {
	return newSafeRouteService(params)
}

func newSafeRouteService(params SafeRouteServiceParams, opts ...risk.Option) *safeRouteService {
	scoring := params.Config.Scoring
	if scoring == nil {
		scoring = &config.ScoringConfig{}
	}

	poiPadding := scoring.POISearchPaddingMeters
	if poiPadding <= 0 {
		poiPadding = defaultPOISearchPaddingMeters
	}
	incidentPadding := scoring.IncidentBBoxPaddingMeters
	if incidentPadding <= 0 {
		incidentPadding = defaultIncidentBBoxPaddingMeters
	}

	return &safeRouteService{
		scorer:          risk.NewScorer(riskConfig(scoring), params.Traffic, params.Logger, opts...),
		routing:         params.Routing,
		incidents:       params.Incidents,
		pois:            params.POIs,
		metrics:         params.Metrics,
		logger:          params.Logger,
		poiPadding:      poiPadding,
		incidentPadding: incidentPadding,
	}
}

// riskConfig maps the scoring section onto the risk model. Unset values keep
// the model defaults.
func riskConfig(cfg *config.ScoringConfig) risk.Config {
	out := risk.DefaultConfig()

	if cfg.SegmentLengthMeters > 0 {
		out.SegmentLengthMeters = cfg.SegmentLengthMeters
	}
	if cfg.POIRadiusMeters > 0 {
		out.Features.POIRadiusMeters = cfg.POIRadiusMeters
	}
	if cfg.IncidentRadiusMeters > 0 {
		out.Features.IncidentRadiusMeters = cfg.IncidentRadiusMeters
	}
	if cfg.POISaturationCount > 0 {
		out.Features.POISaturationCount = cfg.POISaturationCount
	}
	if cfg.TrafficDefault != nil {
		out.Features.TrafficDefault = *cfg.TrafficDefault
	}
	if cfg.NightStartHour != nil {
		out.Features.NightStartHour = *cfg.NightStartHour
	}
	if cfg.NightEndHour != nil {
		out.Features.NightEndHour = *cfg.NightEndHour
	}
	if cfg.FlowFetchWorkers > 0 {
		out.FlowFetchWorkers = cfg.FlowFetchWorkers
	}

	weights := risk.Weights(cfg.Weights)
	if !weights.IsZero() {
		out.Weights = weights
	}

	return out
}

// ScoreRoutes scores caller-supplied routes against caller-supplied context data
func (srv *safeRouteService) ScoreRoutes(ctx context.Context, input *usecase.ScoreRoutesInput) ([]entity.Route, error) {
	if input == nil || len(input.Routes) == 0 {
		return nil, errors.Wrap(domainerrors.ErrNoRoutes, "no routes to score")
	}

	return srv.score(ctx, input.Routes, input.Incidents, input.POIs), nil
}

// PlanSafeRoutes routes origin to destination and scores every alternative
func (srv *safeRouteService) PlanSafeRoutes(ctx context.Context, input *usecase.PlanSafeRoutesInput) ([]entity.Route, error) {
	if input == nil || !input.Origin.Valid() || !input.Destination.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCoordinate, "origin and destination must be valid coordinates")
	}

	raws, err := srv.routing.FetchRoutes(ctx, input.Origin, input.Destination)
	if err != nil {
		srv.collaboratorFailed(collaboratorRouting, err)

		return nil, errors.Wrap(domainerrors.ErrNoRoutes, err.Error())
	}
	if len(raws) == 0 {
		return nil, errors.Wrap(domainerrors.ErrNoRoutes, "routing provider returned no routes")
	}

	incidents, pois := srv.gatherContext(ctx, raws)

	return srv.score(ctx, raws, incidents, pois), nil
}

// gatherContext fetches incidents for the padded bbox of every candidate and
// POIs around its centre. Failures degrade to empty data.
func (srv *safeRouteService) gatherContext(ctx context.Context, raws []entity.RawRoute) ([]entity.Incident, []entity.POI) {
	lines := make([][]geo.Point, 0, len(raws))
	for _, raw := range raws {
		lines = append(lines, geo.Normalize(raw.Geometry))
	}

	bound, ok := geo.Bounds(lines...)
	if !ok {
		return nil, nil
	}

	var (
		incidents []entity.Incident
		pois      []entity.POI
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		fetched, err := srv.incidents.FetchIncidents(groupCtx, geo.PadBounds(bound, srv.incidentPadding))
		if err != nil {
			srv.collaboratorFailed(collaboratorIncidents, err)

			return nil
		}
		incidents = fetched

		return nil
	})

	group.Go(func() error {
		center := geo.BoundsCenter(bound)
		radius := geo.BoundsRadius(bound) + srv.poiPadding

		fetched, err := srv.pois.FetchPOIs(groupCtx, center, radius)
		if err != nil {
			srv.collaboratorFailed(collaboratorPOIs, err)

			return nil
		}
		pois = fetched

		return nil
	})

	// Fetchers never return errors; failures already degraded to empty data.
	_ = group.Wait()

	return incidents, pois
}

func (srv *safeRouteService) score(ctx context.Context, raws []entity.RawRoute, incidents []entity.Incident, pois []entity.POI) []entity.Route {
	started := time.Now()
	routes := srv.scorer.ScoreRoutes(ctx, raws, incidents, pois)
	srv.metrics.ObserveScoring(routes, time.Since(started))

	srv.logger.Info("Routes scored",
		slog.Int("routes", len(routes)),
		slog.Float64("best_risk", routes[0].AggregateRisk()),
		slog.Duration("elapsed", time.Since(started)),
	)

	return routes
}

func (srv *safeRouteService) collaboratorFailed(name string, err error) {
	srv.logger.Warn("Collaborator failed, using default",
		slog.String("collaborator", name),
		slog.Any("error", err),
	)
	srv.metrics.ProviderFailed(name)
}

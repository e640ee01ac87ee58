package provider

import (
	"context"
	"log/slog"

	"saferoute/config"
	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// disabledIncidentFeed reports no incidents
type disabledIncidentFeed struct{}

func (disabledIncidentFeed) FetchIncidents(context.Context, orb.Bound) ([]entity.Incident, error) {
	return nil, nil
}

// disabledPOISearch reports no POIs
type disabledPOISearch struct{}

func (disabledPOISearch) FetchPOIs(context.Context, geo.Point, float64) ([]entity.POI, error) {
	return nil, nil
}

// Params holds dependencies for the provider constructors, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Result exposes every collaborator to the Fx graph
type Result struct {
	fx.Out

	Routing   service.RoutingProvider
	Incidents service.IncidentFeed
	POIs      service.POISearch
	Traffic   service.TrafficFlowProvider
}

func clientOptions(cfg *config.ProvidersConfig) []Option {
	return []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
	}
}

// New builds the configured collaborators. Disabled collaborators are
// replaced by implementations that return no data, except routing which falls
// back to a straight great-circle route and traffic which is left nil so the
// scorer applies its default without lookups.
func New(params Params) (Result, error) {
	cfg := params.Config.Providers
	if cfg == nil {
		cfg = &config.ProvidersConfig{}
	}
	logger := params.Logger
	opts := clientOptions(cfg)

	var result Result

	if cfg.Routing.Enabled {
		if cfg.Routing.BaseURL == "" {
			return Result{}, errors.New("base URL is required for routing provider")
		}
		logger.Info("Using OSRM routing provider",
			slog.String("base_url", cfg.Routing.BaseURL),
			slog.String("profile", cfg.Routing.Profile),
		)
		result.Routing = NewOSRMRouter(cfg.Routing.BaseURL, cfg.Routing.Profile, opts...)
	} else {
		logger.Info("Routing provider disabled, using straight-line fallback")
		result.Routing = NewStraightRouter(cfg.Routing.DefaultSpeedKmh)
	}

	if cfg.Incidents.Enabled && cfg.Incidents.BaseURL != "" {
		result.Incidents = NewJSONIncidentFeed(cfg.Incidents.BaseURL, opts...)
	} else {
		logger.Info("Incident feed disabled")
		result.Incidents = disabledIncidentFeed{}
	}

	if cfg.POIs.Enabled && cfg.POIs.BaseURL != "" {
		result.POIs = NewOverpassPOISearch(cfg.POIs.BaseURL, opts...)
	} else {
		logger.Info("POI search disabled")
		result.POIs = disabledPOISearch{}
	}

	if cfg.Traffic.Enabled {
		if cfg.Traffic.APIKey == "" {
			return Result{}, errors.New("API key is required for traffic provider")
		}
		result.Traffic = NewTomTomTrafficFlow(cfg.Traffic.BaseURL, cfg.Traffic.APIKey, opts...)
	} else {
		logger.Info("Traffic flow disabled, using default traffic score")
	}

	return result, nil
}

// Module provides the external collaborators FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)

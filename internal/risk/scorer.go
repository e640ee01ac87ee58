// Package risk scores routes for personal safety. A route is normalised,
// cut into ~50 m segments, each segment is scored from ambient signals
// (incidents, POI density, traffic flow, time of day) with a transparent
// linear model, and the route risk is the length-weighted mean.
package risk

import (
	"context"
	"log/slog"
	"time"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"

	"golang.org/x/sync/errgroup"
)

const defaultFlowFetchWorkers = 8

// Config tunes the scoring pipeline.
type Config struct {
	SegmentLengthMeters float64
	Features            FeatureParams
	Weights             Weights
	// FlowFetchWorkers bounds concurrent traffic flow fetches per request.
	FlowFetchWorkers int
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		SegmentLengthMeters: DefaultSegmentLengthMeters,
		Features:            DefaultFeatureParams(),
		Weights:             DefaultWeights(),
		FlowFetchWorkers:    defaultFlowFetchWorkers,
	}
}

// Scorer runs the scoring pipeline. It holds no per-request state and is safe
// for concurrent use.
type Scorer struct {
	cfg     Config
	traffic service.TrafficFlowProvider
	logger  *slog.Logger
	now     func() time.Time
}

// Option customises a Scorer.
type Option func(*Scorer)

// WithClock overrides the wall clock used for the time-of-day feature.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// NewScorer creates a scorer. traffic may be nil, in which case every segment
// uses the default traffic score.
func NewScorer(cfg Config, traffic service.TrafficFlowProvider, logger *slog.Logger, opts ...Option) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SegmentLengthMeters <= 0 {
		cfg.SegmentLengthMeters = DefaultSegmentLengthMeters
	}
	if cfg.Features == (FeatureParams{}) {
		cfg.Features = DefaultFeatureParams()
	}
	if cfg.Weights.IsZero() {
		cfg.Weights = DefaultWeights()
	}
	if cfg.FlowFetchWorkers <= 0 {
		cfg.FlowFetchWorkers = defaultFlowFetchWorkers
	}

	s := &Scorer{
		cfg:     cfg,
		traffic: traffic,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ScoreRoutes scores every raw route and returns them ranked by ascending
// aggregate risk, ties in provider order. Routes whose geometry cannot be
// normalised get no segments and therefore maximum risk. ScoreRoutes never
// fails; collaborator problems degrade to feature defaults.
func (s *Scorer) ScoreRoutes(ctx context.Context, raws []entity.RawRoute, incidents []entity.Incident, pois []entity.POI) []entity.Route {
	cache := NewFlowCache(s.traffic, s.logger)
	hour := s.now().Hour()

	routes := make([]entity.Route, 0, len(raws))
	for idx, raw := range raws {
		route := s.scoreRoute(ctx, cache, raw, incidents, pois, hour)
		route.ProviderIndex = idx
		routes = append(routes, *route)
	}

	Rank(routes)

	s.logger.Debug("Scored routes",
		slog.Int("routes", len(routes)),
		slog.Int("incidents", len(incidents)),
		slog.Int("pois", len(pois)),
		slog.Int("flow_fetches", cache.Fetches()),
	)

	return routes
}

// ScoreGeometry scores a single route geometry on its own request-scoped cache.
func (s *Scorer) ScoreGeometry(ctx context.Context, raw entity.RawRoute, incidents []entity.Incident, pois []entity.POI) *entity.Route {
	return s.scoreRoute(ctx, NewFlowCache(s.traffic, s.logger), raw, incidents, pois, s.now().Hour())
}

func (s *Scorer) scoreRoute(
	ctx context.Context,
	cache *FlowCache,
	raw entity.RawRoute,
	incidents []entity.Incident,
	pois []entity.POI,
	hour int,
) *entity.Route {
	points := geo.Normalize(raw.Geometry)
	segments := BuildSegments(points, s.cfg.SegmentLengthMeters)
	flows := s.fetchFlows(ctx, cache, segments)

	for i := range segments {
		features := ExtractFeatures(segments[i], SegmentContext{
			Incidents: incidents,
			POIs:      pois,
			Flow:      flows[i],
			Hour:      hour,
		}, s.cfg.Features)

		segments[i].Features = &features
		segments[i].RiskScore = SegmentRisk(features, s.cfg.Weights)
	}

	summary := entity.RouteSummary{
		DistanceMeters:  raw.DistanceMeters,
		DurationSeconds: raw.DurationSeconds,
	}
	if summary.DistanceMeters <= 0 {
		summary.DistanceMeters = geo.PathLength(points)
	}

	return entity.NewRoute(points, segments, summary)
}

// fetchFlows looks up the traffic flow at every segment midpoint in parallel.
func (s *Scorer) fetchFlows(ctx context.Context, cache *FlowCache, segments []entity.Segment) []*entity.TrafficFlowSample {
	flows := make([]*entity.TrafficFlowSample, len(segments))
	if s.traffic == nil || len(segments) == 0 {
		return flows
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.FlowFetchWorkers)

	for i, seg := range segments {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			flows[i] = cache.Get(groupCtx, geo.Midpoint(seg.Start, seg.End))

			return nil
		})
	}

	// Workers never return errors; failures already degraded to defaults.
	_ = group.Wait()

	return flows
}

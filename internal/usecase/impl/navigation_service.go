package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"saferoute/config"
	"saferoute/internal/domain/entity"
	domainerrors "saferoute/internal/domain/errors"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"
	"saferoute/internal/infra/metrics"
	"saferoute/internal/navigation"
	"saferoute/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultSessionIdleTTL = 30 * time.Minute

	// Events are relayed to the publisher per session; a full buffer drops
	// events rather than stall the session loop.
	eventBufferSize = 64
	publishTimeout  = 5 * time.Second

	minReapInterval = time.Second
	maxReapInterval = time.Minute
)

// NavigationServiceParams holds dependencies for the navigation service, injected by Fx
type NavigationServiceParams struct {
	fx.In

	Lc         fx.Lifecycle
	Config     *config.Config
	SafeRoutes usecase.SafeRouteUsecase
	Publisher  service.EventPublisher
	Metrics    *metrics.Metrics `optional:"true"`
	Logger     *slog.Logger
}

type navigationSession struct {
	id        string
	session   *navigation.Session
	startedAt time.Time

	// unix nanoseconds of the last caller interaction
	lastActive atomic.Int64

	// owned by the session loop, written only from callbacks
	state entity.NavigationState

	events    chan *entity.NavigationEvent
	relayDone chan struct{}
}

func (s *navigationSession) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

type navigationService struct {
	cfg        navigation.Config
	idleTTL    time.Duration
	safeRoutes usecase.SafeRouteUsecase
	publisher  service.EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*navigationSession
}

// NewNavigationService creates a new navigation service instance and ties the
// session reaper to the application lifecycle
func NewNavigationService(params NavigationServiceParams) usecase.NavigationUsecase {
	srv := newNavigationService(params.Config, params.SafeRoutes, params.Publisher, params.Metrics, params.Logger)

	reaperCtx, cancelReaper := context.WithCancel(context.Background())
	reaperDone := make(chan struct{})

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(reaperDone)
				srv.runReaper(reaperCtx)
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancelReaper()
			<-reaperDone
			srv.stopAll()

			return nil
		},
	})

	return srv
}

func newNavigationService(
	cfg *config.Config,
	safeRoutes usecase.SafeRouteUsecase,
	publisher service.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *navigationService {
	nav := cfg.Navigation
	if nav == nil {
		nav = &config.NavigationConfig{}
	}

	idleTTL := nav.SessionIdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultSessionIdleTTL
	}

	return &navigationService{
		cfg:        navigationConfig(nav),
		idleTTL:    idleTTL,
		safeRoutes: safeRoutes,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]*navigationSession),
	}
}

// navigationConfig maps the navigation section onto the engine config. Zero
// values are filled with engine defaults by the engine itself.
func navigationConfig(cfg *config.NavigationConfig) navigation.Config {
	return navigation.Config{
		ArrivalThresholdMeters:   cfg.ArrivalThresholdMeters,
		DeviationThresholdMeters: cfg.DeviationThresholdMeters,
		LeniencyMeters:           cfg.LeniencyMeters,
		Turn: navigation.TurnThresholds{
			StraightDeg: cfg.StraightAngleDeg,
			UTurnDeg:    cfg.UTurnAngleDeg,
		},
		RerouteDebounce:    cfg.RerouteDebounce,
		MaxRerouteAttempts: cfg.MaxRerouteAttempts,
		RerouteTimeout:     cfg.RerouteTimeout,
	}
}

// StartSession resolves the route to follow and starts a session on it
func (srv *navigationService) StartSession(ctx context.Context, input *usecase.StartNavigationInput) (*usecase.NavigationSession, error) {
	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "missing input")
	}
	if input.Destination != nil && !input.Destination.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCoordinate, "destination")
	}

	route, err := srv.resolveRoute(ctx, input)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	entry := &navigationSession{
		id:        id,
		startedAt: srv.now(),
		state:     entity.NavigationIdle,
		events:    make(chan *entity.NavigationEvent, eventBufferSize),
		relayDone: make(chan struct{}),
	}
	entry.touch(entry.startedAt)

	session, err := navigation.StartSession(navigation.SessionParams{
		Route:       route,
		Destination: input.Destination,
		Config:      srv.cfg,
		Reroute:     srv.routeSource,
		Callbacks:   srv.callbacks(entry),
		Logger:      srv.logger.With(slog.String("session_id", id)),
	})
	if err != nil {
		return nil, mapNavigationError(err)
	}
	entry.session = session

	go srv.relay(entry)
	srv.emit(entry, &entity.NavigationEvent{Type: entity.EventSessionStarted, State: entity.NavigationIdle})

	srv.mu.Lock()
	srv.sessions[id] = entry
	srv.mu.Unlock()

	srv.metrics.SessionOpened()

	srv.logger.Info("Navigation session started",
		slog.String("session_id", id),
		slog.Int("route_points", len(route)),
	)

	return srv.view(ctx, entry)
}

// resolveRoute uses the caller's route when given, otherwise the safest
// planned route from origin to destination
func (srv *navigationService) resolveRoute(ctx context.Context, input *usecase.StartNavigationInput) ([]geo.Point, error) {
	if input.Route != nil {
		points := geo.Normalize(input.Route.Geometry)
		if len(points) < 2 {
			return nil, errors.Wrap(domainerrors.ErrInvalidGeometry, "route needs at least two valid points")
		}

		return points, nil
	}

	if input.Origin == nil || input.Destination == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "either route or origin and destination are required")
	}

	routes, err := srv.safeRoutes.PlanSafeRoutes(ctx, &usecase.PlanSafeRoutesInput{
		Origin:      *input.Origin,
		Destination: *input.Destination,
	})
	if err != nil {
		return nil, err
	}

	return safestGeometry(routes)
}

// routeSource is the reroute collaborator handed to every session
func (srv *navigationService) routeSource(ctx context.Context, origin, destination geo.Point) ([]geo.Point, error) {
	routes, err := srv.safeRoutes.PlanSafeRoutes(ctx, &usecase.PlanSafeRoutesInput{
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		return nil, err
	}

	return safestGeometry(routes)
}

// safestGeometry returns the first usable geometry of ranked routes
func safestGeometry(routes []entity.Route) ([]geo.Point, error) {
	for _, route := range routes {
		if len(route.Points) >= 2 {
			return route.Points, nil
		}
	}

	return nil, errors.Wrap(domainerrors.ErrNoRoutes, "no route with usable geometry")
}

func (srv *navigationService) callbacks(entry *navigationSession) navigation.Callbacks {
	return navigation.Callbacks{
		OnStateChange: func(from, to entity.NavigationState) {
			entry.state = to
			srv.emit(entry, &entity.NavigationEvent{
				Type:      entity.EventStateChanged,
				State:     to,
				FromState: from,
			})
		},
		OnInstructionChange: func(instruction entity.Instruction) {
			srv.emit(entry, &entity.NavigationEvent{
				Type:        entity.EventInstructionChanged,
				State:       entry.state,
				Instruction: &instruction,
			})
		},
		OnRerouted: func([]geo.Point, []entity.Instruction) {
			srv.emit(entry, &entity.NavigationEvent{
				Type:  entity.EventRerouted,
				State: entry.state,
			})
		},
		OnRerouteFailed: func(attempt int, err error) {
			if errors.Is(err, navigation.ErrRerouteExhausted) {
				srv.logger.Warn("Reroute attempts exhausted",
					slog.String("session_id", entry.id),
					slog.Int("attempts", attempt),
				)
			}
			srv.emit(entry, &entity.NavigationEvent{
				Type:   entity.EventRerouteFailed,
				State:  entry.state,
				Reason: err.Error(),
			})
		},
	}
}

// emit queues an event for publishing without blocking the caller
func (srv *navigationService) emit(entry *navigationSession, event *entity.NavigationEvent) {
	event.SessionID = entry.id
	event.OccurredAt = srv.now()
	srv.metrics.NavigationEvent(event.Type)

	select {
	case entry.events <- event:
	default:
		srv.logger.Warn("Navigation event buffer full, dropping event",
			slog.String("session_id", entry.id),
			slog.String("event_type", string(event.Type)),
		)
	}
}

// relay publishes one session's events in order until the session is closed
func (srv *navigationService) relay(entry *navigationSession) {
	defer close(entry.relayDone)

	for event := range entry.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := srv.publisher.PublishNavigationEvent(ctx, event); err != nil {
			srv.logger.Warn("Failed to publish navigation event",
				slog.String("session_id", event.SessionID),
				slog.String("event_type", string(event.Type)),
				slog.Any("error", err),
			)
		}
		cancel()
	}
}

func (srv *navigationService) lookup(sessionID string) (*navigationSession, error) {
	srv.mu.RLock()
	entry, ok := srv.sessions[sessionID]
	srv.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrSessionNotFound, "session %s", sessionID)
	}
	entry.touch(srv.now())

	return entry, nil
}

// UpdatePosition feeds one GPS fix to a session
func (srv *navigationService) UpdatePosition(ctx context.Context, input *usecase.UpdatePositionInput) (*navigation.Update, error) {
	entry, err := srv.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	update, err := entry.session.UpdatePosition(ctx, input.Position.Lat, input.Position.Lon)
	if err != nil {
		return nil, mapNavigationError(err)
	}
	srv.metrics.PositionReceived(input.Source)

	return &update, nil
}

// ReportGPSError moves a session to ERROR
func (srv *navigationService) ReportGPSError(ctx context.Context, sessionID, reason string) (*usecase.NavigationSession, error) {
	gpsReason, err := navigation.ParseGPSErrorReason(reason)
	if err != nil {
		return nil, mapNavigationError(err)
	}

	entry, err := srv.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if err := entry.session.ReportError(ctx, gpsReason); err != nil {
		return nil, mapNavigationError(err)
	}

	return srv.view(ctx, entry)
}

// RetryReroute resets the attempt counter and reroutes immediately
func (srv *navigationService) RetryReroute(ctx context.Context, sessionID string) error {
	entry, err := srv.lookup(sessionID)
	if err != nil {
		return err
	}

	if err := entry.session.RetryReroute(ctx); err != nil {
		return mapNavigationError(err)
	}

	return nil
}

// GetSession returns the current view of a session
func (srv *navigationService) GetSession(ctx context.Context, sessionID string) (*usecase.NavigationSession, error) {
	entry, err := srv.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return srv.view(ctx, entry)
}

// StopSession stops and forgets a session
func (srv *navigationService) StopSession(_ context.Context, sessionID string) error {
	srv.mu.Lock()
	entry, ok := srv.sessions[sessionID]
	delete(srv.sessions, sessionID)
	srv.mu.Unlock()

	if !ok {
		return errors.Wrapf(domainerrors.ErrSessionNotFound, "session %s", sessionID)
	}

	srv.close(entry)

	return nil
}

func (srv *navigationService) view(ctx context.Context, entry *navigationSession) (*usecase.NavigationSession, error) {
	snapshot, err := entry.session.Snapshot(ctx)
	if err != nil {
		return nil, mapNavigationError(err)
	}

	out := &usecase.NavigationSession{
		ID:        entry.id,
		Snapshot:  snapshot,
		StartedAt: entry.startedAt,
	}
	if snapshot.State == entity.NavigationError {
		if appErr := gpsReasonError(navigation.GPSErrorReason(snapshot.Reason)); appErr != nil {
			out.ErrorCode = appErr.ErrorCode()
			out.ErrorMessage = appErr.Message()
		}
	}

	return out, nil
}

// close stops a session that is no longer registered and drains its events
func (srv *navigationService) close(entry *navigationSession) {
	entry.session.Stop()

	// The loop has exited, so no callback can emit any more.
	srv.emit(entry, &entity.NavigationEvent{Type: entity.EventSessionStopped, State: entry.state})
	close(entry.events)
	<-entry.relayDone

	srv.metrics.SessionClosed()
	srv.logger.Info("Navigation session stopped", slog.String("session_id", entry.id))
}

func (srv *navigationService) reapInterval() time.Duration {
	return min(max(srv.idleTTL/2, minReapInterval), maxReapInterval)
}

func (srv *navigationService) runReaper(ctx context.Context) {
	ticker := time.NewTicker(srv.reapInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			srv.reapExpired(srv.now())
		}
	}
}

// reapExpired stops sessions nobody has interacted with for the idle TTL
func (srv *navigationService) reapExpired(now time.Time) int {
	deadline := now.Add(-srv.idleTTL).UnixNano()

	var expired []*navigationSession

	srv.mu.Lock()
	for id, entry := range srv.sessions {
		if entry.lastActive.Load() < deadline {
			expired = append(expired, entry)
			delete(srv.sessions, id)
		}
	}
	srv.mu.Unlock()

	for _, entry := range expired {
		srv.logger.Info("Reaping idle navigation session", slog.String("session_id", entry.id))
		srv.close(entry)
	}

	return len(expired)
}

func (srv *navigationService) stopAll() {
	srv.mu.Lock()
	entries := make([]*navigationSession, 0, len(srv.sessions))
	for id, entry := range srv.sessions {
		entries = append(entries, entry)
		delete(srv.sessions, id)
	}
	srv.mu.Unlock()

	for _, entry := range entries {
		srv.close(entry)
	}
}

// gpsReasonError maps a GPS failure reason to its domain error
func gpsReasonError(reason navigation.GPSErrorReason) domainerrors.AppError {
	switch reason {
	case navigation.GPSPermissionDenied:
		return domainerrors.ErrGPSPermissionDenied
	case navigation.GPSPositionUnavailable:
		return domainerrors.ErrGPSPositionUnavailable
	case navigation.GPSTimeout:
		return domainerrors.ErrGPSTimeout
	default:
		return nil
	}
}

// mapNavigationError translates engine errors into domain errors
func mapNavigationError(err error) error {
	switch {
	case errors.Is(err, navigation.ErrInvalidRoute):
		return errors.Wrap(domainerrors.ErrInvalidGeometry, err.Error())
	case errors.Is(err, navigation.ErrInvalidPosition):
		return errors.Wrap(domainerrors.ErrInvalidCoordinate, err.Error())
	case errors.Is(err, navigation.ErrSessionStopped):
		return errors.Wrap(domainerrors.ErrSessionNotFound, err.Error())
	case errors.Is(err, navigation.ErrTerminalState):
		return errors.Wrap(domainerrors.ErrSessionTerminated, err.Error())
	case errors.Is(err, navigation.ErrRerouteInProgress):
		return errors.Wrap(domainerrors.ErrRerouteInProgress, err.Error())
	case errors.Is(err, navigation.ErrRerouteExhausted):
		return errors.Wrap(domainerrors.ErrRerouteExhausted, err.Error())
	case errors.Is(err, navigation.ErrUnknownGPSReason):
		return errors.Wrap(domainerrors.ErrUnknownGPSReason, err.Error())
	default:
		return errors.Wrap(err, "navigation failed")
	}
}

package navigation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"saferoute/internal/domain/entity"
	"saferoute/internal/errors"
	"saferoute/internal/geo"
)

// RouteSource fetches a fresh route geometry from origin to destination.
type RouteSource func(ctx context.Context, origin, destination geo.Point) ([]geo.Point, error)

// Callbacks observe a session. They run on the session loop in event order
// and must not call back into the session.
type Callbacks struct {
	OnStateChange       func(from, to entity.NavigationState)
	OnInstructionChange func(instruction entity.Instruction)
	OnRerouted          func(route []geo.Point, instructions []entity.Instruction)
	// OnRerouteFailed receives the consecutive failure count. err wraps
	// ErrRerouteExhausted once the attempt cap is reached.
	OnRerouteFailed func(attempt int, err error)
}

// SessionParams configures StartSession.
type SessionParams struct {
	Route []geo.Point
	// Destination defaults to the last route point.
	Destination *geo.Point
	Config      Config
	Reroute     RouteSource
	Callbacks   Callbacks
	Logger      *slog.Logger
}

// Snapshot is a consistent view of a session.
type Snapshot struct {
	Update
	Destination      geo.Point            `json:"destination"`
	Route            []geo.Point          `json:"route"`
	Instructions     []entity.Instruction `json:"instructions"`
	RerouteFailures  int                  `json:"rerouteFailures"`
	RerouteExhausted bool                 `json:"rerouteExhausted"`
	Rerouting        bool                 `json:"rerouting"`
}

// Session runs one navigation. Every operation is executed on a single loop
// goroutine, so position fixes are applied one at a time in submission order
// and never race with reroute results or the debounce timer.
type Session struct {
	cfg         Config
	destination geo.Point
	reroute     RouteSource
	callbacks   Callbacks
	logger      *slog.Logger

	commands chan func()
	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	// Owned by the loop goroutine.
	tracker         *Tracker
	debounce        *time.Timer
	debounceGen     uint64
	rerouting       bool
	rerouteGen      uint64
	rerouteCancel   context.CancelFunc
	failures        int
	exhausted       bool
	lastInstruction *entity.Instruction
}

// StartSession validates the route and starts the session loop in IDLE.
func StartSession(params SessionParams) (*Session, error) {
	cfg := params.Config.withDefaults()

	tracker, err := NewTracker(params.Route, cfg)
	if err != nil {
		return nil, err
	}

	destination := params.Route[len(params.Route)-1]
	if params.Destination != nil {
		if !params.Destination.Valid() {
			return nil, errors.Wrap(ErrInvalidPosition, "destination")
		}
		destination = *params.Destination
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		cfg:         cfg,
		destination: destination,
		reroute:     params.Reroute,
		callbacks:   params.Callbacks,
		logger:      logger,
		commands:    make(chan func()),
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
		tracker:     tracker,
	}

	go s.run()

	return s, nil
}

func (s *Session) run() {
	defer close(s.stopped)
	defer s.shutdown()

	for {
		select {
		case <-s.stop:
			return
		case cmd := <-s.commands:
			select {
			case <-s.stop:
				return
			default:
			}
			cmd()
		}
	}
}

func (s *Session) shutdown() {
	s.cancelDebounce()
	s.abandonReroute()
}

// submit runs cmd on the loop and waits for it to finish.
func (s *Session) submit(ctx context.Context, cmd func()) error {
	select {
	case <-s.stop:
		return ErrSessionStopped
	default:
	}

	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		cmd()
	}

	select {
	case s.commands <- wrapped:
	case <-s.stop:
		return ErrSessionStopped
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}

	select {
	case <-done:
		return nil
	case <-s.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrSessionStopped
		}
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// post hands cmd to the loop without waiting. It is dropped once the session stops.
func (s *Session) post(cmd func()) {
	select {
	case s.commands <- cmd:
	case <-s.stop:
	}
}

// UpdatePosition applies one position fix and returns the resulting update.
// Fixes after ARRIVED or ERROR return the final update unchanged.
func (s *Session) UpdatePosition(ctx context.Context, lat, lon float64) (Update, error) {
	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return Update{}, errors.Wrapf(ErrInvalidPosition, "lat=%v lon=%v", lat, lon)
	}

	var update Update
	err := s.submit(ctx, func() {
		update = s.handleFix(p)
	})

	return update, err
}

// ReportError moves the session to ERROR for a GPS failure. Any pending
// reroute is abandoned.
func (s *Session) ReportError(ctx context.Context, reason GPSErrorReason) error {
	var result error
	err := s.submit(ctx, func() {
		prev := s.tracker.State()
		if !s.tracker.Fail(reason) {
			result = ErrTerminalState

			return
		}
		s.cancelDebounce()
		s.abandonReroute()
		s.logger.Warn("Navigation stopped by GPS error", slog.String("reason", string(reason)))
		s.notifyState(prev)
	})
	if err != nil {
		return err
	}

	return result
}

// RetryReroute resets the attempt counter and requests a new route from the
// last known position immediately.
func (s *Session) RetryReroute(ctx context.Context) error {
	var result error
	err := s.submit(ctx, func() {
		switch state := s.tracker.State(); {
		case state.Terminal():
			result = ErrTerminalState
		case s.rerouting:
			result = ErrRerouteInProgress
		case state == entity.NavigationIdle:
			result = errors.Wrap(ErrInvalidPosition, "no position fix yet")
		default:
			s.failures = 0
			s.exhausted = false
			s.cancelDebounce()
			s.startReroute(s.tracker.Last().Position)
		}
	})
	if err != nil {
		return err
	}

	return result
}

// Snapshot returns the current session view.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.submit(ctx, func() {
		snap = Snapshot{
			Update:           s.tracker.Last(),
			Destination:      s.destination,
			Route:            s.tracker.Route(),
			Instructions:     s.tracker.Instructions(),
			RerouteFailures:  s.failures,
			RerouteExhausted: s.exhausted,
			Rerouting:        s.rerouting,
		}
	})

	return snap, err
}

// Stop ends the session. Pending debounce timers and in-flight reroute
// results are discarded. Stop is idempotent and waits for the loop to exit,
// so it must not be called from a callback.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.stopped
}

// Done is closed once the session loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.stopped
}

func (s *Session) handleFix(p geo.Point) Update {
	prev := s.tracker.State()
	start := s.tracker.Last().Instruction
	update := s.tracker.Update(p)

	s.notifyState(prev)
	if prev == entity.NavigationIdle {
		// The start instruction is announced once, ahead of the first one
		// the traveler is heading for.
		s.notifyInstruction(start)
	}
	s.evaluate(update)
	s.notifyInstruction(update.Instruction)

	return update
}

// evaluate arms or cancels the reroute debounce for the latest update.
func (s *Session) evaluate(update Update) {
	switch {
	case update.State.Terminal():
		s.cancelDebounce()
	case s.rerouting:
		// One reroute at a time.
	case update.Deviated:
		if !s.exhausted && s.debounce == nil {
			s.armDebounce()
		}
	default:
		s.cancelDebounce()
		if update.DistanceFromRoute <= s.cfg.DeviationThresholdMeters {
			s.failures = 0
			s.exhausted = false
		}
	}
}

func (s *Session) armDebounce() {
	s.debounceGen++
	gen := s.debounceGen
	s.debounce = time.AfterFunc(s.cfg.RerouteDebounce, func() {
		s.post(func() { s.debounceFired(gen) })
	})
}

func (s *Session) cancelDebounce() {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	// Invalidate a fire that is already queued.
	s.debounceGen++
}

func (s *Session) debounceFired(gen uint64) {
	if gen != s.debounceGen || s.debounce == nil {
		return
	}
	s.debounce = nil

	last := s.tracker.Last()
	if s.tracker.State().Terminal() || s.rerouting || !last.Deviated {
		return
	}

	s.startReroute(last.Position)
}

func (s *Session) startReroute(origin geo.Point) {
	if s.reroute == nil {
		s.rerouteFailed(ErrNoRouteSource)

		return
	}

	prev := s.tracker.State()
	s.tracker.SetState(entity.NavigationRerouting)
	s.notifyState(prev)

	s.rerouting = true
	s.rerouteGen++
	gen := s.rerouteGen

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RerouteTimeout)
	s.rerouteCancel = cancel

	s.logger.Info("Rerouting",
		slog.Float64("origin_lat", origin.Lat),
		slog.Float64("origin_lon", origin.Lon),
		slog.Int("attempt", s.failures+1),
	)

	source, destination := s.reroute, s.destination
	go func() {
		route, err := source(ctx, origin, destination)
		s.post(func() { s.rerouteDone(gen, route, err) })
	}()
}

// abandonReroute drops the effect of an in-flight reroute.
func (s *Session) abandonReroute() {
	if s.rerouteCancel != nil {
		s.rerouteCancel()
		s.rerouteCancel = nil
	}
	s.rerouteGen++
	s.rerouting = false
}

func (s *Session) rerouteDone(gen uint64, route []geo.Point, err error) {
	if gen != s.rerouteGen {
		return
	}
	s.abandonReroute()

	if s.tracker.State().Terminal() {
		return
	}
	if err == nil && len(route) < 2 {
		err = ErrInvalidRoute
	}
	if err != nil {
		s.rerouteFailed(err)

		return
	}

	prev := s.tracker.State()
	if setErr := s.tracker.SetRoute(route); setErr != nil {
		s.rerouteFailed(setErr)

		return
	}
	s.failures = 0
	s.exhausted = false

	s.logger.Info("Rerouted", slog.Int("points", len(route)))

	s.notifyState(prev)
	if s.callbacks.OnRerouted != nil {
		s.callbacks.OnRerouted(s.tracker.Route(), s.tracker.Instructions())
	}

	update := s.tracker.Last()
	s.evaluate(update)
	s.notifyInstruction(update.Instruction)
}

func (s *Session) rerouteFailed(cause error) {
	s.failures++
	attempt := s.failures

	prev := s.tracker.State()
	s.tracker.SetState(entity.NavigationNavigating)
	s.notifyState(prev)

	err := cause
	if s.failures >= s.cfg.MaxRerouteAttempts {
		s.exhausted = true
		err = errors.Join(ErrRerouteExhausted, cause)
	}

	s.logger.Warn("Reroute failed",
		slog.Int("attempt", attempt),
		slog.Bool("exhausted", s.exhausted),
		slog.Any("error", cause),
	)

	if s.callbacks.OnRerouteFailed != nil {
		s.callbacks.OnRerouteFailed(attempt, err)
	}

	if !s.exhausted && s.tracker.Last().Deviated {
		s.armDebounce()
	}
}

func (s *Session) notifyState(prev entity.NavigationState) {
	cur := s.tracker.State()
	if cur == prev || s.callbacks.OnStateChange == nil {
		return
	}
	s.callbacks.OnStateChange(prev, cur)
}

func (s *Session) notifyInstruction(instruction *entity.Instruction) {
	if instruction == nil {
		return
	}
	if s.lastInstruction != nil && *s.lastInstruction == *instruction {
		return
	}

	current := *instruction
	s.lastInstruction = &current
	if s.callbacks.OnInstructionChange != nil {
		s.callbacks.OnInstructionChange(current)
	}
}

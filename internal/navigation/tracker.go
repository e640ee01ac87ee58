package navigation

import (
	"time"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
)

// Config holds the navigation thresholds. Zero values fall back to defaults.
type Config struct {
	ArrivalThresholdMeters   float64
	DeviationThresholdMeters float64
	// LeniencyMeters suppresses deviation near the route start until the
	// traveler has been on the route once.
	LeniencyMeters     float64
	Turn               TurnThresholds
	RerouteDebounce    time.Duration
	MaxRerouteAttempts int
	RerouteTimeout     time.Duration
}

// DefaultConfig returns the standard navigation configuration.
func DefaultConfig() Config {
	return Config{
		ArrivalThresholdMeters:   30,
		DeviationThresholdMeters: 50,
		LeniencyMeters:           200,
		Turn:                     DefaultTurnThresholds(),
		RerouteDebounce:          2 * time.Second,
		MaxRerouteAttempts:       3,
		RerouteTimeout:           10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.ArrivalThresholdMeters <= 0 {
		c.ArrivalThresholdMeters = def.ArrivalThresholdMeters
	}
	if c.DeviationThresholdMeters <= 0 {
		c.DeviationThresholdMeters = def.DeviationThresholdMeters
	}
	if c.LeniencyMeters <= 0 {
		c.LeniencyMeters = def.LeniencyMeters
	}
	if c.Turn.StraightDeg <= 0 {
		c.Turn.StraightDeg = def.Turn.StraightDeg
	}
	if c.Turn.UTurnDeg <= 0 {
		c.Turn.UTurnDeg = def.Turn.UTurnDeg
	}
	if c.RerouteDebounce <= 0 {
		c.RerouteDebounce = def.RerouteDebounce
	}
	if c.MaxRerouteAttempts <= 0 {
		c.MaxRerouteAttempts = def.MaxRerouteAttempts
	}
	if c.RerouteTimeout <= 0 {
		c.RerouteTimeout = def.RerouteTimeout
	}

	return c
}

// Update is the outcome of processing one position fix.
type Update struct {
	State       entity.NavigationState `json:"state"`
	Instruction *entity.Instruction    `json:"instruction,omitempty"`
	// DistanceToInstruction is the along-route distance to the instruction anchor.
	DistanceToInstruction float64   `json:"distanceToInstruction"`
	DistanceRemaining     float64   `json:"distanceRemaining"`
	Progress              float64   `json:"progress"`
	Deviated              bool      `json:"deviated"`
	DistanceFromRoute     float64   `json:"distanceFromRoute"`
	Position              geo.Point `json:"position"`
	// Reason explains an ERROR state.
	Reason string `json:"reason,omitempty"`
}

// Tracker is the navigation state machine for one route. It is synchronous
// and not safe for concurrent use; Session serialises access to it.
type Tracker struct {
	cfg          Config
	points       []geo.Point
	cumulative   []float64
	instructions []entity.Instruction

	state       entity.NavigationState
	everOnRoute bool
	last        Update
}

// NewTracker creates an IDLE tracker for route.
func NewTracker(route []geo.Point, cfg Config) (*Tracker, error) {
	t := &Tracker{
		cfg:   cfg.withDefaults(),
		state: entity.NavigationIdle,
	}
	if err := t.load(route); err != nil {
		return nil, err
	}
	t.last = Update{State: t.state, Progress: 0}
	if len(t.instructions) > 0 {
		start := t.instructions[0]
		t.last.Instruction = &start
		t.last.DistanceRemaining = t.cumulative[len(t.cumulative)-1]
	}

	return t, nil
}

func (t *Tracker) load(route []geo.Point) error {
	if len(route) < 2 {
		return ErrInvalidRoute
	}

	points := make([]geo.Point, len(route))
	copy(points, route)

	t.points = points
	t.cumulative = geo.CumulativeLengths(points)
	t.instructions = GenerateInstructions(points, t.cfg.Turn)
	t.everOnRoute = false

	return nil
}

// State returns the current navigation state.
func (t *Tracker) State() entity.NavigationState {
	return t.state
}

// Last returns the most recent update.
func (t *Tracker) Last() Update {
	return t.last
}

// Route returns a copy of the active route.
func (t *Tracker) Route() []geo.Point {
	out := make([]geo.Point, len(t.points))
	copy(out, t.points)

	return out
}

// Instructions returns a copy of the active instruction list.
func (t *Tracker) Instructions() []entity.Instruction {
	out := make([]entity.Instruction, len(t.instructions))
	copy(out, t.instructions)

	return out
}

// Update processes one position fix. The first fix moves IDLE to NAVIGATING.
// A fix closer than the arrival threshold to the destination is ARRIVED.
// Terminal trackers ignore further fixes and return the last update.
func (t *Tracker) Update(p geo.Point) Update {
	if t.state.Terminal() {
		return t.last
	}
	if t.state == entity.NavigationIdle {
		t.state = entity.NavigationNavigating
	}

	lastIdx := len(t.points) - 1
	if toDestination := geo.Distance(p, t.points[lastIdx]); toDestination < t.cfg.ArrivalThresholdMeters {
		t.state = entity.NavigationArrived
		arrive := t.instructions[len(t.instructions)-1]
		t.last = Update{
			State:             t.state,
			Instruction:       &arrive,
			Progress:          1,
			DistanceFromRoute: toDestination,
			Position:          p,
		}

		return t.last
	}

	match, _ := Match(t.points, p)
	if match.Distance <= t.cfg.DeviationThresholdMeters {
		t.everOnRoute = true
	}
	deviated := match.Distance > t.cfg.DeviationThresholdMeters &&
		(t.everOnRoute || geo.Distance(p, t.points[0]) > t.cfg.LeniencyMeters)

	// Along-route distance from the matched point to vertex i.
	next := match.SegmentIndex + 1
	toNext := geo.Distance(match.Point, t.points[next])
	alongTo := func(i int) float64 {
		return toNext + t.cumulative[i] - t.cumulative[next]
	}

	update := Update{
		State:             t.state,
		DistanceRemaining: alongTo(lastIdx),
		Progress:          match.Progress,
		Deviated:          deviated,
		DistanceFromRoute: match.Distance,
		Position:          p,
	}
	if instruction, ok := t.instructionAhead(match.SegmentIndex); ok {
		update.Instruction = &instruction
		update.DistanceToInstruction = alongTo(instruction.AnchorIndex)
	}

	t.last = update

	return update
}

// instructionAhead returns the first instruction anchored beyond the edge.
func (t *Tracker) instructionAhead(segmentIndex int) (entity.Instruction, bool) {
	for _, instruction := range t.instructions {
		if instruction.AnchorIndex > segmentIndex {
			return instruction, true
		}
	}

	return entity.Instruction{}, false
}

// SetState moves a non-terminal tracker between NAVIGATING and REROUTING.
func (t *Tracker) SetState(state entity.NavigationState) bool {
	if t.state.Terminal() || state.Terminal() || state == entity.NavigationIdle {
		return false
	}
	t.state = state
	t.last.State = state

	return true
}

// SetRoute replaces the active route and regenerates its instructions. The
// last known position is re-matched against the new route. The traveler must
// reach the new route before deviation can fire again.
func (t *Tracker) SetRoute(route []geo.Point) error {
	if t.state.Terminal() {
		return ErrTerminalState
	}
	hadFix := t.state != entity.NavigationIdle
	if err := t.load(route); err != nil {
		return err
	}
	if !hadFix {
		return nil
	}

	t.state = entity.NavigationNavigating
	t.Update(t.last.Position)

	return nil
}

// Fail moves the tracker to ERROR.
func (t *Tracker) Fail(reason GPSErrorReason) bool {
	if t.state.Terminal() {
		return false
	}
	t.state = entity.NavigationError
	t.last.State = t.state
	t.last.Reason = string(reason)

	return true
}

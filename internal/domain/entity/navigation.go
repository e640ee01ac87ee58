package entity

import "time"

// NavigationState is the state of a navigation session.
type NavigationState string

const (
	NavigationIdle       NavigationState = "IDLE"
	NavigationNavigating NavigationState = "NAVIGATING"
	NavigationRerouting  NavigationState = "REROUTING"
	NavigationArrived    NavigationState = "ARRIVED"
	NavigationError      NavigationState = "ERROR"
)

// Terminal reports whether no further transitions can happen from s.
func (s NavigationState) Terminal() bool {
	return s == NavigationArrived || s == NavigationError
}

// InstructionType classifies a turn-by-turn instruction.
type InstructionType string

const (
	InstructionStart     InstructionType = "start"
	InstructionContinue  InstructionType = "continue"
	InstructionTurnLeft  InstructionType = "turn-left"
	InstructionTurnRight InstructionType = "turn-right"
	InstructionUTurn     InstructionType = "u-turn"
	InstructionArrive    InstructionType = "arrive"
)

// Instruction is a turn-by-turn instruction anchored on a route vertex.
// DistanceMeters is the great-circle distance from the previous anchor.
type Instruction struct {
	Type           InstructionType `json:"type"`
	AnchorPoint    RoutePoint      `json:"anchorPoint"`
	AnchorIndex    int             `json:"anchorIndex"`
	DistanceMeters float64         `json:"distanceMeters"`
	Text           string          `json:"text"`
}

// NavigationEventType names what happened in a navigation session.
type NavigationEventType string

const (
	EventSessionStarted     NavigationEventType = "session_started"
	EventStateChanged       NavigationEventType = "state_changed"
	EventInstructionChanged NavigationEventType = "instruction_changed"
	EventRerouted           NavigationEventType = "rerouted"
	EventRerouteFailed      NavigationEventType = "reroute_failed"
	EventSessionStopped     NavigationEventType = "session_stopped"
)

// NavigationEvent is published for downstream consumers (UI relays, alerting).
type NavigationEvent struct {
	RequestID   string              `json:"request_id,omitempty"`
	SessionID   string              `json:"session_id"`
	Type        NavigationEventType `json:"type"`
	State       NavigationState     `json:"state"`
	FromState   NavigationState     `json:"from_state,omitempty"`
	Instruction *Instruction        `json:"instruction,omitempty"`
	Position    *RoutePoint         `json:"position,omitempty"`
	Reason      string              `json:"reason,omitempty"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

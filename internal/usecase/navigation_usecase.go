package usecase

import (
	"context"
	"time"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
	"saferoute/internal/navigation"
)

// Position sources, used for metrics and logs
const (
	PositionSourceHTTP = "http"
	PositionSourceMQTT = "mqtt"
)

// StartNavigationInput starts a session either on a caller-supplied route or
// on the safest planned route from Origin to Destination
type StartNavigationInput struct {
	Origin      *geo.Point
	Destination *geo.Point
	Route       *entity.RawRoute
}

// UpdatePositionInput is one GPS fix for a session
type UpdatePositionInput struct {
	SessionID string
	Position  geo.Point
	Source    string
}

// NavigationSession is the externally visible state of a navigation session
type NavigationSession struct {
	ID string `json:"id"`
	navigation.Snapshot

	// ErrorCode and ErrorMessage describe why a session ended in ERROR
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`

	StartedAt time.Time `json:"startedAt"`
}

// NavigationUsecase defines the interface for live navigation use cases
type NavigationUsecase interface {
	// StartSession creates a session in IDLE
	StartSession(ctx context.Context, input *StartNavigationInput) (*NavigationSession, error)

	// UpdatePosition feeds one GPS fix to a session
	UpdatePosition(ctx context.Context, input *UpdatePositionInput) (*navigation.Update, error)

	// ReportGPSError moves a session to ERROR for a GPS failure reason
	ReportGPSError(ctx context.Context, sessionID, reason string) (*NavigationSession, error)

	// RetryReroute resets the reroute attempt counter and reroutes immediately
	RetryReroute(ctx context.Context, sessionID string) error

	// GetSession returns the current state of a session
	GetSession(ctx context.Context, sessionID string) (*NavigationSession, error)

	// StopSession ends a session and forgets it
	StopSession(ctx context.Context, sessionID string) error
}

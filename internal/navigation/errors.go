package navigation

import (
	"strings"

	"saferoute/internal/errors"
)

var (
	ErrInvalidRoute      = errors.New("navigation: route needs at least two points")
	ErrInvalidPosition   = errors.New("navigation: invalid position")
	ErrSessionStopped    = errors.New("navigation: session stopped")
	ErrTerminalState     = errors.New("navigation: session is in a terminal state")
	ErrRerouteExhausted  = errors.New("navigation: reroute attempts exhausted")
	ErrRerouteInProgress = errors.New("navigation: reroute already in progress")
	ErrNoRouteSource     = errors.New("navigation: no route source")
	ErrUnknownGPSReason  = errors.New("navigation: unknown gps error reason")
)

// GPSErrorReason says why position fixes stopped. Every reason is terminal.
type GPSErrorReason string

const (
	GPSPermissionDenied    GPSErrorReason = "permission_denied"
	GPSPositionUnavailable GPSErrorReason = "position_unavailable"
	GPSTimeout             GPSErrorReason = "timeout"
)

// ParseGPSErrorReason accepts the reason names case-insensitively, with
// hyphens or underscores.
func ParseGPSErrorReason(s string) (GPSErrorReason, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")

	switch reason := GPSErrorReason(normalized); reason {
	case GPSPermissionDenied, GPSPositionUnavailable, GPSTimeout:
		return reason, nil
	default:
		return "", errors.Wrapf(ErrUnknownGPSReason, "reason %q", s)
	}
}

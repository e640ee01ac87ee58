package entity

// Incident is a reported crime or safety incident. Severity runs from 1 (minor)
// to 4 (severe).
type Incident struct {
	ID       string     `json:"id,omitempty"`
	Position RoutePoint `json:"position"`
	Severity int        `json:"severity"`
	Category string     `json:"category,omitempty"`
}

// Severity bounds for incidents.
const (
	MinIncidentSeverity = 1
	MaxIncidentSeverity = 4
)

// ClampedSeverity returns the severity forced into [1, 4].
func (i Incident) ClampedSeverity() int {
	return min(max(i.Severity, MinIncidentSeverity), MaxIncidentSeverity)
}

// POI is a point of interest used as a proxy for lighting and activity.
type POI struct {
	Position RoutePoint `json:"position"`
	Category string     `json:"category"`
	Name     string     `json:"name,omitempty"`
}

// TrafficFlowSample is the observed speed against free-flow speed near a location.
type TrafficFlowSample struct {
	CurrentSpeed  float64 `json:"currentSpeed"`
	FreeFlowSpeed float64 `json:"freeFlowSpeed"`
}

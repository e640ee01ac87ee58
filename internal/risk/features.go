package risk

import (
	"math"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
)

// FeatureParams tunes the feature extractors.
type FeatureParams struct {
	POIRadiusMeters      float64
	IncidentRadiusMeters float64
	// POISaturationCount is the POI count at which lighting and POI safety saturate at 1.
	POISaturationCount float64
	// TrafficDefault is used when no flow sample is available.
	TrafficDefault float64
	// Night is hour > NightStartHour or hour < NightEndHour.
	NightStartHour int
	NightEndHour   int
	NightScore     float64
	DayScore       float64
}

// DefaultFeatureParams returns the standard extractor tuning.
func DefaultFeatureParams() FeatureParams {
	return FeatureParams{
		POIRadiusMeters:      200,
		IncidentRadiusMeters: 100,
		POISaturationCount:   10,
		TrafficDefault:       0.5,
		NightStartHour:       20,
		NightEndHour:         5,
		NightScore:           0.8,
		DayScore:             0.2,
	}
}

// nearEitherEndpoint reports whether p lies within radius of seg's start or end.
func nearEitherEndpoint(seg entity.Segment, p geo.Point, radius float64) bool {
	return geo.Distance(seg.Start, p) <= radius || geo.Distance(seg.End, p) <= radius
}

// NearbyPOICount counts POIs within the POI radius of either segment endpoint.
func NearbyPOICount(seg entity.Segment, pois []entity.POI, params FeatureParams) int {
	count := 0
	for _, poi := range pois {
		if nearEitherEndpoint(seg, poi.Position, params.POIRadiusMeters) {
			count++
		}
	}

	return count
}

// LightingScore uses nearby POI density as a proxy for street lighting:
// min(count/saturation, 1).
func LightingScore(seg entity.Segment, pois []entity.POI, params FeatureParams) float64 {
	return POISafetyScore(seg, pois, params)
}

// POISafetyScore is min(count/saturation, 1) over POIs near the segment.
func POISafetyScore(seg entity.Segment, pois []entity.POI, params FeatureParams) float64 {
	saturation := params.POISaturationCount
	if saturation <= 0 {
		saturation = DefaultFeatureParams().POISaturationCount
	}

	return math.Min(float64(NearbyPOICount(seg, pois, params))/saturation, 1)
}

// IncidentScore is the mean normalised severity of incidents within the
// incident radius of either endpoint: sum(severity)/(count×4). No nearby
// incidents scores 0.
func IncidentScore(seg entity.Segment, incidents []entity.Incident, params FeatureParams) float64 {
	sum, count := 0, 0
	for _, incident := range incidents {
		if !nearEitherEndpoint(seg, incident.Position, params.IncidentRadiusMeters) {
			continue
		}
		sum += incident.ClampedSeverity()
		count++
	}

	if count == 0 {
		return 0
	}

	return clamp01(float64(sum) / float64(count*entity.MaxIncidentSeverity))
}

// TrafficScore measures speed depression: max(0, 1 - current/freeFlow).
// Missing or unusable samples score the configured default.
func TrafficScore(flow *entity.TrafficFlowSample, params FeatureParams) float64 {
	if flow == nil || flow.FreeFlowSpeed <= 0 || flow.CurrentSpeed < 0 {
		return params.TrafficDefault
	}

	return clamp01(1 - flow.CurrentSpeed/flow.FreeFlowSpeed)
}

// IsolationScore is the inverse of POI safety.
func IsolationScore(poiSafety float64) float64 {
	return clamp01(1 - poiSafety)
}

// TimeOfDayScore scores night hours higher than day hours.
func TimeOfDayScore(hour int, params FeatureParams) float64 {
	if hour > params.NightStartHour || hour < params.NightEndHour {
		return params.NightScore
	}

	return params.DayScore
}

// SegmentContext is the external data a segment is scored against.
// Every field may be empty.
type SegmentContext struct {
	Incidents []entity.Incident
	POIs      []entity.POI
	Flow      *entity.TrafficFlowSample
	Hour      int
}

// ExtractFeatures runs every extractor for seg.
func ExtractFeatures(seg entity.Segment, sc SegmentContext, params FeatureParams) entity.FeatureScores {
	poiSafety := POISafetyScore(seg, sc.POIs, params)

	return entity.FeatureScores{
		Lighting:  poiSafety,
		Incident:  IncidentScore(seg, sc.Incidents, params),
		POISafety: poiSafety,
		Traffic:   TrafficScore(sc.Flow, params),
		Isolation: IsolationScore(poiSafety),
		TimeOfDay: TimeOfDayScore(sc.Hour, params),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

package provider

import (
	"context"
	"fmt"
	"net/url"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"

	"github.com/paulmach/orb"
)

// JSONIncidentFeed reads incidents from a JSON endpoint that accepts a
// bbox=minLon,minLat,maxLon,maxLat query and returns
// {"incidents":[{"id","lat","lon","severity","category"}]}.
type JSONIncidentFeed struct {
	http *httpClient
}

var _ service.IncidentFeed = (*JSONIncidentFeed)(nil)

// NewJSONIncidentFeed creates an incident feed client.
func NewJSONIncidentFeed(baseURL string, opts ...Option) *JSONIncidentFeed {
	return &JSONIncidentFeed{http: newHTTPClient("incidents", baseURL, opts...)}
}

type incidentFeedResponse struct {
	Incidents []struct {
		ID       string  `json:"id"`
		Lat      float64 `json:"lat"`
		Lon      float64 `json:"lon"`
		Severity int     `json:"severity"`
		Category string  `json:"category"`
	} `json:"incidents"`
}

// FetchIncidents returns incidents inside bbox. Entries with invalid positions
// are skipped; severities are kept as reported and clamped at scoring time.
func (f *JSONIncidentFeed) FetchIncidents(ctx context.Context, bbox orb.Bound) ([]entity.Incident, error) {
	target := f.http.endpoint("", url.Values{
		"bbox": {fmt.Sprintf("%f,%f,%f,%f", bbox.Min.Lon(), bbox.Min.Lat(), bbox.Max.Lon(), bbox.Max.Lat())},
	})

	var resp incidentFeedResponse
	if err := f.http.getJSON(ctx, target, &resp); err != nil {
		return nil, err
	}

	incidents := make([]entity.Incident, 0, len(resp.Incidents))
	for _, item := range resp.Incidents {
		position := geo.Point{Lat: item.Lat, Lon: item.Lon}
		if !position.Valid() {
			continue
		}
		incidents = append(incidents, entity.Incident{
			ID:       item.ID,
			Position: position,
			Severity: item.Severity,
			Category: item.Category,
		})
	}

	return incidents, nil
}

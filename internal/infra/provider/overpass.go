package provider

import (
	"context"
	"fmt"
	"net/url"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"
)

// Amenity and shop tags that signal a lit, staffed street frontage.
const overpassAmenities = "restaurant|cafe|bar|pub|fast_food|pharmacy|hospital|police|fuel|bank|cinema|theatre"

// OverpassPOISearch finds POIs through an Overpass API interpreter endpoint.
type OverpassPOISearch struct {
	http *httpClient
}

var _ service.POISearch = (*OverpassPOISearch)(nil)

// NewOverpassPOISearch creates a POI search against the interpreter at baseURL.
func NewOverpassPOISearch(baseURL string, opts ...Option) *OverpassPOISearch {
	return &OverpassPOISearch{http: newHTTPClient("overpass", baseURL, opts...)}
}

type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func overpassQuery(center geo.Point, radiusMeters float64) string {
	return fmt.Sprintf(
		`[out:json][timeout:10];(node(around:%.0f,%f,%f)[amenity~"^(%s)$"];node(around:%.0f,%f,%f)[shop];);out body;`,
		radiusMeters, center.Lat, center.Lon, overpassAmenities,
		radiusMeters, center.Lat, center.Lon,
	)
}

// FetchPOIs returns amenity and shop nodes within radiusMeters of center.
func (s *OverpassPOISearch) FetchPOIs(ctx context.Context, center geo.Point, radiusMeters float64) ([]entity.POI, error) {
	var resp overpassResponse
	form := url.Values{"data": {overpassQuery(center, radiusMeters)}}
	if err := s.http.postFormJSON(ctx, s.http.endpoint("", nil), form, &resp); err != nil {
		return nil, err
	}

	pois := make([]entity.POI, 0, len(resp.Elements))
	for _, element := range resp.Elements {
		if element.Type != "node" {
			continue
		}
		position := geo.Point{Lat: element.Lat, Lon: element.Lon}
		if !position.Valid() {
			continue
		}

		category := element.Tags["amenity"]
		if category == "" && element.Tags["shop"] != "" {
			category = "shop"
		}

		pois = append(pois, entity.POI{
			Position: position,
			Category: category,
			Name:     element.Tags["name"],
		})
	}

	return pois, nil
}

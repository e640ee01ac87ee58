package provider

import (
	"context"
	"fmt"
	"net/url"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/errors"
	"saferoute/internal/geo"
)

const defaultOSRMProfile = "foot"

// OSRMRouter fetches alternative routes from an OSRM-compatible /route service.
type OSRMRouter struct {
	http    *httpClient
	profile string
}

var _ service.RoutingProvider = (*OSRMRouter)(nil)

// NewOSRMRouter creates a router against baseURL using the given travel profile.
func NewOSRMRouter(baseURL, profile string, opts ...Option) *OSRMRouter {
	if profile == "" {
		profile = defaultOSRMProfile
	}

	return &OSRMRouter{
		http:    newHTTPClient("osrm", baseURL, opts...),
		profile: profile,
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// FetchRoutes returns the primary route followed by any alternatives, in the
// order OSRM ranks them. Geometry is a precision-6 encoded polyline.
func (r *OSRMRouter) FetchRoutes(ctx context.Context, origin, destination geo.Point) ([]entity.RawRoute, error) {
	coordinates := fmt.Sprintf("%f,%f;%f,%f", origin.Lon, origin.Lat, destination.Lon, destination.Lat)
	target := r.http.endpoint(
		"/route/v1/"+url.PathEscape(r.profile)+"/"+coordinates,
		url.Values{
			"alternatives": {"true"},
			"overview":     {"full"},
			"geometries":   {"polyline6"},
		},
	)

	var resp osrmResponse
	if err := r.http.getJSON(ctx, target, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "" && resp.Code != "Ok" {
		return nil, errors.Errorf("osrm: %s: %s", resp.Code, resp.Message)
	}

	routes := make([]entity.RawRoute, 0, len(resp.Routes))
	for _, route := range resp.Routes {
		routes = append(routes, entity.RawRoute{
			DistanceMeters:  route.Distance,
			DurationSeconds: route.Duration,
			Geometry:        geo.Polyline6(route.Geometry),
		})
	}

	return routes, nil
}

package provider

import (
	"context"
	"fmt"
	"net/url"

	"saferoute/internal/domain/entity"
	"saferoute/internal/domain/service"
	"saferoute/internal/geo"
)

// TomTomTrafficFlow reads flow segment data from the TomTom Traffic API.
type TomTomTrafficFlow struct {
	http   *httpClient
	apiKey string
}

var _ service.TrafficFlowProvider = (*TomTomTrafficFlow)(nil)

// NewTomTomTrafficFlow creates a traffic flow client.
func NewTomTomTrafficFlow(baseURL, apiKey string, opts ...Option) *TomTomTrafficFlow {
	return &TomTomTrafficFlow{
		http:   newHTTPClient("tomtom", baseURL, opts...),
		apiKey: apiKey,
	}
}

type tomtomFlowResponse struct {
	FlowSegmentData *struct {
		CurrentSpeed  float64 `json:"currentSpeed"`
		FreeFlowSpeed float64 `json:"freeFlowSpeed"`
	} `json:"flowSegmentData"`
}

// FetchTrafficFlow returns the flow of the road segment nearest position, or
// nil when TomTom has no segment there.
func (t *TomTomTrafficFlow) FetchTrafficFlow(ctx context.Context, position geo.Point) (*entity.TrafficFlowSample, error) {
	target := t.http.endpoint("/traffic/services/4/flowSegmentData/absolute/10/json", url.Values{
		"point": {fmt.Sprintf("%f,%f", position.Lat, position.Lon)},
		"unit":  {"KMPH"},
		"key":   {t.apiKey},
	})

	var resp tomtomFlowResponse
	if err := t.http.getJSON(ctx, target, &resp); err != nil {
		return nil, err
	}
	if resp.FlowSegmentData == nil {
		return nil, nil
	}

	return &entity.TrafficFlowSample{
		CurrentSpeed:  resp.FlowSegmentData.CurrentSpeed,
		FreeFlowSpeed: resp.FlowSegmentData.FreeFlowSpeed,
	}, nil
}

package risk

import (
	"context"
	"math"
	"sync"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"

	"github.com/pkg/errors"
)

const metersPerDegree = 111_319.490793

// eastLine returns n points spaced stepMeters apart heading east from start.
func eastLine(start geo.Point, n int, stepMeters float64) []geo.Point {
	stepDeg := stepMeters / (metersPerDegree * math.Cos(start.Lat*math.Pi/180))
	points := make([]geo.Point, n)
	for i := range points {
		points[i] = geo.Point{Lat: start.Lat, Lon: start.Lon + float64(i)*stepDeg}
	}

	return points
}

// offsetEast moves p by meters along its parallel (negative is west).
func offsetEast(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon + meters/(metersPerDegree*math.Cos(p.Lat*math.Pi/180))}
}

type fakeTraffic struct {
	mu     sync.Mutex
	calls  int
	sample *entity.TrafficFlowSample
	err    error
}

func (f *fakeTraffic) FetchTrafficFlow(_ context.Context, _ geo.Point) (*entity.TrafficFlowSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	return f.sample, f.err
}

func (f *fakeTraffic) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

var errFlowDown = errors.New("flow service unavailable")

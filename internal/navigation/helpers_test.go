package navigation

import (
	"math"

	"saferoute/internal/geo"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const metersPerDegree = 111_319.490793

func east(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon + meters/(metersPerDegree*math.Cos(p.Lat*math.Pi/180))}
}

func north(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat + meters/metersPerDegree, Lon: p.Lon}
}

// straightRoute returns n points stepMeters apart heading east along the equator.
func straightRoute(n int, stepMeters float64) []geo.Point {
	points := make([]geo.Point, n)
	for i := range points {
		points[i] = east(geo.Point{}, float64(i)*stepMeters)
	}

	return points
}

func atBearing(p geo.Point, bearing, meters float64) geo.Point {
	return geo.FromOrb(orbgeo.PointAtBearingAndDistance(orb.Point{p.Lon, p.Lat}, bearing, meters))
}

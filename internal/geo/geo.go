// Package geo holds the shared geometry primitives used by route scoring and
// navigation: great-circle distance, bearings, clamped segment projection and
// path lengths over WGS84 positions.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Point is a WGS84 position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Orb converts p to an orb.Point, which is ordered [lon, lat].
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// FromOrb converts an orb.Point ([lon, lat]) to a Point.
func FromOrb(p orb.Point) Point {
	return Point{Lat: p.Lat(), Lon: p.Lon()}
}

// Valid reports whether p is a finite coordinate within Earth bounds.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) ||
		math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}

	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	return orbgeo.DistanceHaversine(a.Orb(), b.Orb())
}

// Bearing returns the initial bearing from a to b in degrees, in [-180, 180].
func Bearing(a, b Point) float64 {
	return orbgeo.Bearing(a.Orb(), b.Orb())
}

// NormalizeAngle maps an angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}

	return deg
}

// Midpoint returns the point halfway between a and b by linear interpolation,
// which is accurate enough for the short segments this package deals with.
func Midpoint(a, b Point) Point {
	return Interpolate(a, b, 0.5)
}

// Interpolate returns the point at fraction t of the way from a to b.
func Interpolate(a, b Point, t float64) Point {
	return Point{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
	}
}

// Projection is the result of projecting a point onto a segment.
type Projection struct {
	Point    Point   // closest point on the segment
	Fraction float64 // position of Point along the segment, in [0, 1]
	Distance float64 // meters from the input point to Point
}

// ProjectOntoSegment projects p onto the segment [a, b], clamping to the
// endpoints. The projection is computed in a local equirectangular frame
// centred on p.
func ProjectOntoSegment(p, a, b Point) Projection {
	ax, ay := localXY(p, a)
	bx, by := localXY(p, b)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq > 0 {
		t = -(ax*dx + ay*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	closest := Interpolate(a, b, t)

	return Projection{
		Point:    closest,
		Fraction: t,
		Distance: Distance(p, closest),
	}
}

// localXY returns q's offset from origin in meters (x east, y north).
func localXY(origin, q Point) (float64, float64) {
	const rad = math.Pi / 180
	x := (q.Lon - origin.Lon) * rad * math.Cos(origin.Lat*rad) * orb.EarthRadius
	y := (q.Lat - origin.Lat) * rad * orb.EarthRadius

	return x, y
}

// PathLength returns the summed great-circle length of the polyline in meters.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}

	return total
}

// CumulativeLengths returns, for every vertex, the path length from the first
// vertex to it. The first entry is always 0.
func CumulativeLengths(points []Point) []float64 {
	if len(points) == 0 {
		return nil
	}

	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + Distance(points[i-1], points[i])
	}

	return cum
}

// Bounds returns the bounding box covering every point of every polyline.
// The second result is false when no points were given.
func Bounds(polylines ...[]Point) (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)

	for _, line := range polylines {
		for _, p := range line {
			if !found {
				bound = p.Orb().Bound()
				found = true

				continue
			}
			bound = bound.Extend(p.Orb())
		}
	}

	return bound, found
}

// PadBounds grows b by meters in every direction.
func PadBounds(b orb.Bound, meters float64) orb.Bound {
	if meters <= 0 {
		return b
	}

	return orbgeo.BoundPad(b, meters)
}

// BoundsCenter returns the centre of b.
func BoundsCenter(b orb.Bound) Point {
	return FromOrb(b.Center())
}

// BoundsRadius returns the distance from the centre of b to its farthest corner.
func BoundsRadius(b orb.Bound) float64 {
	center := BoundsCenter(b)

	return math.Max(
		Distance(center, FromOrb(b.Min)),
		Distance(center, FromOrb(b.Max)),
	)
}

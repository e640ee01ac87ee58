package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	d := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 111_319, d, 500)

	assert.Zero(t, Distance(Point{Lat: 25.03, Lon: 121.56}, Point{Lat: 25.03, Lon: 121.56}))
}

func TestBearing(t *testing.T) {
	origin := Point{Lat: 0, Lon: 0}

	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{name: "north", to: Point{Lat: 1, Lon: 0}, want: 0},
		{name: "east", to: Point{Lat: 0, Lon: 1}, want: 90},
		{name: "west", to: Point{Lat: 0, Lon: -1}, want: -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Bearing(origin, tt.to), 1e-6)
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0, want: 0},
		{in: 180, want: 180},
		{in: -180, want: 180},
		{in: 190, want: -170},
		{in: -190, want: 170},
		{in: 540, want: 180},
		{in: 359, want: -1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "NormalizeAngle(%v)", tt.in)
	}
}

func TestProjectOntoSegment(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 0.01}

	t.Run("midpoint is on the segment", func(t *testing.T) {
		mid := Midpoint(a, b)
		proj := ProjectOntoSegment(mid, a, b)
		assert.InDelta(t, 0, proj.Distance, 1e-6)
		assert.InDelta(t, 0.5, proj.Fraction, 1e-9)
	})

	t.Run("perpendicular offset", func(t *testing.T) {
		p := Point{Lat: 0.001, Lon: 0.005}
		proj := ProjectOntoSegment(p, a, b)
		assert.InDelta(t, 0.5, proj.Fraction, 1e-6)
		assert.InDelta(t, Distance(p, Point{Lat: 0, Lon: 0.005}), proj.Distance, 0.01)
	})

	t.Run("clamped before start", func(t *testing.T) {
		p := Point{Lat: 0, Lon: -0.001}
		proj := ProjectOntoSegment(p, a, b)
		assert.Zero(t, proj.Fraction)
		assert.Equal(t, a, proj.Point)
	})

	t.Run("clamped past end", func(t *testing.T) {
		p := Point{Lat: 0.0001, Lon: 0.02}
		proj := ProjectOntoSegment(p, a, b)
		assert.Equal(t, 1.0, proj.Fraction)
		assert.Equal(t, b, proj.Point)
	})

	t.Run("degenerate segment", func(t *testing.T) {
		p := Point{Lat: 0.001, Lon: 0}
		proj := ProjectOntoSegment(p, a, a)
		assert.Zero(t, proj.Fraction)
		assert.InDelta(t, Distance(p, a), proj.Distance, 1e-9)
	})
}

func TestLocalXY(t *testing.T) {
	origin := Point{Lat: 10, Lon: 20}

	x, y := localXY(origin, Point{Lat: 10.001, Lon: 20})
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, Distance(origin, Point{Lat: 10.001, Lon: 20}), y, 0.01)

	x, y = localXY(origin, Point{Lat: 10, Lon: 20.001})
	assert.InDelta(t, Distance(origin, Point{Lat: 10, Lon: 20.001}), x, 0.01)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestCumulativeLengths(t *testing.T) {
	points := []Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}, {Lat: 0, Lon: 0.002}}

	cum := CumulativeLengths(points)
	require.Len(t, cum, 3)
	assert.Zero(t, cum[0])
	assert.InDelta(t, PathLength(points), cum[2], 1e-9)
	assert.InDelta(t, cum[1]*2, cum[2], 1e-6)

	assert.Nil(t, CumulativeLengths(nil))
}

func TestBounds(t *testing.T) {
	_, ok := Bounds()
	assert.False(t, ok)

	bound, ok := Bounds(
		[]Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		[]Point{{Lat: -1, Lon: 5}},
	)
	require.True(t, ok)
	assert.Equal(t, -1.0, bound.Min.Lat())
	assert.Equal(t, 2.0, bound.Min.Lon())
	assert.Equal(t, 3.0, bound.Max.Lat())
	assert.Equal(t, 5.0, bound.Max.Lon())

	padded := PadBounds(bound, 1000)
	assert.Less(t, padded.Min.Lat(), bound.Min.Lat())
	assert.Greater(t, padded.Max.Lon(), bound.Max.Lon())
	assert.Equal(t, bound, PadBounds(bound, 0))

	assert.Greater(t, BoundsRadius(bound), 0.0)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: 45, Lon: 120}.Valid())
	assert.False(t, Point{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: -181}.Valid())
	assert.False(t, Point{Lat: math.NaN(), Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: math.Inf(1)}.Valid())
}

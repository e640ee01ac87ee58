package risk

import (
	"testing"

	"saferoute/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSegments_SparsePoints(t *testing.T) {
	points := eastLine(geo.Point{Lat: 0, Lon: 0}, 3, 100)

	segments := BuildSegments(points, DefaultSegmentLengthMeters)
	require.Len(t, segments, 2)

	for _, seg := range segments {
		assert.InDelta(t, 100, seg.LengthMeters, 0.01)
	}
	assert.Equal(t, segments[0].End, segments[1].Start)
	assert.Equal(t, points[0], segments[0].Start)
	assert.Equal(t, points[2], segments[1].End)
}

func TestBuildSegments_DensePoints(t *testing.T) {
	points := eastLine(geo.Point{Lat: 10, Lon: 20}, 10, 20)

	segments := BuildSegments(points, 50)
	require.Len(t, segments, 3)

	for i, seg := range segments {
		assert.InDelta(t, 60, seg.LengthMeters, 0.01)
		assert.Equal(t, i*3, seg.StartIndex)
		assert.Equal(t, i*3+3, seg.EndIndex)
		if i > 0 {
			assert.Equal(t, segments[i-1].End, seg.Start)
		}
	}
}

func TestBuildSegments_FinalPartialSegment(t *testing.T) {
	points := eastLine(geo.Point{Lat: 10, Lon: 20}, 5, 20)

	segments := BuildSegments(points, 50)
	require.Len(t, segments, 2)
	assert.InDelta(t, 60, segments[0].LengthMeters, 0.01)
	assert.InDelta(t, 20, segments[1].LengthMeters, 0.01)
}

func TestBuildSegments_Deterministic(t *testing.T) {
	points := eastLine(geo.Point{Lat: 48.85, Lon: 2.35}, 37, 13)

	first := BuildSegments(points, 50)
	second := BuildSegments(points, 50)
	assert.Equal(t, first, second)
}

func TestBuildSegments_TooFewPoints(t *testing.T) {
	assert.Empty(t, BuildSegments(nil, 50))
	assert.Empty(t, BuildSegments([]geo.Point{{Lat: 1, Lon: 1}}, 50))
}

func TestBuildSegments_NonPositiveTargetUsesDefault(t *testing.T) {
	points := eastLine(geo.Point{Lat: 0, Lon: 0}, 11, 10)

	assert.Equal(t, BuildSegments(points, DefaultSegmentLengthMeters), BuildSegments(points, 0))
}

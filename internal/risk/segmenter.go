package risk

import (
	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
)

// DefaultSegmentLengthMeters is the target length of a scoring segment.
const DefaultSegmentLengthMeters = 50.0

// BuildSegments walks points and closes a segment each time the accumulated
// great-circle length reaches targetMeters. Segments always end on an input
// vertex, so sparse input produces segments longer than the target rather
// than zero-length ones. The final partial segment is closed regardless of
// its length. Fewer than two points yields no segments.
func BuildSegments(points []geo.Point, targetMeters float64) []entity.Segment {
	if len(points) < 2 {
		return nil
	}
	if targetMeters <= 0 {
		targetMeters = DefaultSegmentLengthMeters
	}

	segments := make([]entity.Segment, 0, len(points)-1)
	start := 0
	length := 0.0

	for i := 1; i < len(points); i++ {
		length += geo.Distance(points[i-1], points[i])

		if length >= targetMeters || i == len(points)-1 {
			segments = append(segments, entity.Segment{
				Start:        points[start],
				End:          points[i],
				LengthMeters: length,
				StartIndex:   start,
				EndIndex:     i,
			})

			start = i
			length = 0
		}
	}

	return segments
}

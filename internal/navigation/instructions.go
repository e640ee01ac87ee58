package navigation

import (
	"math"

	"saferoute/internal/domain/entity"
	"saferoute/internal/geo"
)

// TurnThresholds classify the signed heading change at a route vertex.
type TurnThresholds struct {
	// StraightDeg is the largest |Δ| still considered straight ahead.
	StraightDeg float64
	// UTurnDeg is the smallest |Δ| considered a U-turn.
	UTurnDeg float64
}

// DefaultTurnThresholds returns 15° straight and 165° U-turn thresholds.
func DefaultTurnThresholds() TurnThresholds {
	return TurnThresholds{StraightDeg: 15, UTurnDeg: 165}
}

// Classify maps a signed heading change in degrees to an instruction type.
// Positive deltas turn clockwise (right). ok is false for straight ahead.
func (th TurnThresholds) Classify(delta float64) (entity.InstructionType, bool) {
	delta = geo.NormalizeAngle(delta)
	abs := math.Abs(delta)

	switch {
	case abs <= th.StraightDeg:
		return "", false
	case abs >= th.UTurnDeg:
		return entity.InstructionUTurn, true
	case delta > 0:
		return entity.InstructionTurnRight, true
	default:
		return entity.InstructionTurnLeft, true
	}
}

// GenerateInstructions builds the instruction list for a route: start on the
// first point, one instruction per turning vertex, arrive on the last point.
// Each DistanceMeters is the great-circle distance from the previous anchor.
func GenerateInstructions(points []geo.Point, th TurnThresholds) []entity.Instruction {
	if len(points) < 2 {
		return nil
	}

	instructions := []entity.Instruction{{
		Type:        entity.InstructionStart,
		AnchorPoint: points[0],
		AnchorIndex: 0,
		Text:        "Head " + compassDirection(geo.Bearing(points[0], points[1])),
	}}
	prev := points[0]

	for i := 1; i < len(points)-1; i++ {
		in := geo.Bearing(points[i-1], points[i])
		out := geo.Bearing(points[i], points[i+1])

		kind, ok := th.Classify(out - in)
		if !ok {
			continue
		}

		instructions = append(instructions, entity.Instruction{
			Type:           kind,
			AnchorPoint:    points[i],
			AnchorIndex:    i,
			DistanceMeters: geo.Distance(prev, points[i]),
			Text:           instructionText(kind),
		})
		prev = points[i]
	}

	last := len(points) - 1
	instructions = append(instructions, entity.Instruction{
		Type:           entity.InstructionArrive,
		AnchorPoint:    points[last],
		AnchorIndex:    last,
		DistanceMeters: geo.Distance(prev, points[last]),
		Text:           instructionText(entity.InstructionArrive),
	})

	return instructions
}

func instructionText(kind entity.InstructionType) string {
	switch kind {
	case entity.InstructionTurnLeft:
		return "Turn left"
	case entity.InstructionTurnRight:
		return "Turn right"
	case entity.InstructionUTurn:
		return "Make a U-turn"
	case entity.InstructionArrive:
		return "Arrive at your destination"
	case entity.InstructionContinue:
		return "Continue straight"
	default:
		return ""
	}
}

var compassPoints = [...]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

// compassDirection names the nearest of the eight compass points to a bearing.
func compassDirection(bearing float64) string {
	b := math.Mod(bearing+360, 360)
	idx := int(math.Round(b/45)) % len(compassPoints)

	return compassPoints[idx]
}

package world

import (
	"fmt"
	"math"

	"github.com/hordeloop/engine/internal/core/errs"
	"github.com/hordeloop/engine/internal/data"
)

// ShapeKind is the closed set of attack area kinds.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapeSector
	ShapeCapsule
	shapeKindCount
)

var shapeNames = [shapeKindCount]string{
	ShapeCircle:  "circle",
	ShapeBox:     "box",
	ShapeSector:  "sector",
	ShapeCapsule: "capsule",
}

func (k ShapeKind) String() string {
	if k < shapeKindCount {
		return shapeNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", k)
}

// AttackShape is a tagged union over attack areas. Kind decides which of the
// parameter fields are meaningful.
type AttackShape struct {
	Kind   ShapeKind
	Radius float64 // circle, sector, capsule
	Width  float64 // box
	Length float64 // box, capsule
	Angle  float64 // sector, degrees
	Offset float64 // forward offset from the owner
}

// reachTable holds the per-kind approximate radius, excluding offset.
var reachTable = [shapeKindCount]func(AttackShape) float64{
	ShapeCircle:  func(s AttackShape) float64 { return s.Radius },
	ShapeSector:  func(s AttackShape) float64 { return s.Radius },
	ShapeBox:     func(s AttackShape) float64 { return math.Hypot(s.Length, s.Width) / 2 },
	ShapeCapsule: func(s AttackShape) float64 { return math.Max(s.Radius, s.Length/2) },
}

// Reach is the distance from the owner that the shape can cover. Enemies
// stop approaching once their target is inside it.
func (s AttackShape) Reach() float64 {
	if s.Kind >= shapeKindCount {
		return 0
	}
	return reachTable[s.Kind](s) + math.Abs(s.Offset)
}

// ShapeFromSpec converts a YAML shape description. An empty kind yields a
// zero-radius circle, which means "walk onto the target".
func ShapeFromSpec(spec data.ShapeSpec) (AttackShape, error) {
	s := AttackShape{
		Radius: spec.Radius,
		Width:  spec.Width,
		Length: spec.Length,
		Angle:  spec.Angle,
		Offset: spec.Offset,
	}
	if spec.Kind == "" {
		return s, nil
	}
	for k, name := range shapeNames {
		if name == spec.Kind {
			s.Kind = ShapeKind(k)
			return s, nil
		}
	}
	return AttackShape{}, fmt.Errorf("%w: unknown attack shape %q", errs.ErrConfig, spec.Kind)
}

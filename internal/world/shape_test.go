package world

import (
	"errors"
	"math"
	"testing"

	"github.com/hordeloop/engine/internal/core/errs"
	"github.com/hordeloop/engine/internal/data"
	"github.com/stretchr/testify/require"
)

func TestShapeReach(t *testing.T) {
	tests := []struct {
		name  string
		shape AttackShape
		want  float64
	}{
		{"circle", AttackShape{Kind: ShapeCircle, Radius: 2}, 2},
		{"circle offset", AttackShape{Kind: ShapeCircle, Radius: 2, Offset: -1}, 3},
		{"sector", AttackShape{Kind: ShapeSector, Radius: 3, Angle: 90}, 3},
		{"box", AttackShape{Kind: ShapeBox, Width: 6, Length: 8}, 5},
		{"capsule long", AttackShape{Kind: ShapeCapsule, Radius: 1, Length: 6, Offset: 0.5}, 3.5},
		{"capsule fat", AttackShape{Kind: ShapeCapsule, Radius: 4, Length: 2}, 4},
		{"invalid kind", AttackShape{Kind: ShapeKind(42), Radius: 9}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, tt.shape.Reach(), 1e-9)
		})
	}
}

func TestShapeFromSpec(t *testing.T) {
	s, err := ShapeFromSpec(data.ShapeSpec{})
	require.NoError(t, err)
	require.Equal(t, ShapeCircle, s.Kind)
	require.Zero(t, s.Reach())

	s, err = ShapeFromSpec(data.ShapeSpec{Kind: "box", Width: 1, Length: 1})
	require.NoError(t, err)
	require.Equal(t, ShapeBox, s.Kind)
	require.InDelta(t, math.Sqrt2/2, s.Reach(), 1e-9)

	_, err = ShapeFromSpec(data.ShapeSpec{Kind: "cone"})
	require.True(t, errors.Is(err, errs.ErrConfig))

	require.Equal(t, "capsule", ShapeCapsule.String())
	require.Equal(t, "ShapeKind(7)", ShapeKind(7).String())
}

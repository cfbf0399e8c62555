package world

import (
	"fmt"
	"math"
)

// Vec2 is a 2D position or direction in world units.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2  { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64          { return math.Sqrt(v.LenSq()) }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) Dist(o Vec2) float64   { return v.Sub(o).Len() }

// Normalize returns the unit vector, or zero for a zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) String() string {
	return fmt.Sprintf("{%.2f, %.2f}", v.X, v.Y)
}

// Transform is the spatial component shared by every actor.
type Transform struct {
	Pos Vec2
	Vel Vec2 // world units per second
}

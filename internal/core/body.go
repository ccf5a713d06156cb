package core

import "math"

// Vec is a 2D vector in cell units.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the vector length.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Cell rounds the vector to the nearest grid cell.
func (v Vec) Cell() Point {
	return Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// BodyID identifies a body inside a physics world.
type BodyID uint64

// BodyKind describes how a body takes part in the simulation.
type BodyKind int

const (
	// BodyDynamic bodies are moved by gravity, forces and collisions.
	BodyDynamic BodyKind = iota
	// BodyStatic bodies never move.
	BodyStatic
	// BodyKinematic bodies are moved only by SetPosition and push dynamic bodies out of the way.
	BodyKinematic
)

// String returns the kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyDynamic:
		return "dynamic"
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// BodyDef describes a body to create. Pos is the top-left corner.
type BodyDef struct {
	Kind BodyKind
	Pos  Vec
	W, H float64
	Mass float64
	Tag  string
}

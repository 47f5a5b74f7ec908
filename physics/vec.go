// Package physics holds the collision model of the bounce simulation:
// axis-aligned boxes and half-planes that reflect particle velocities.
package physics

import "math"

// Vec2 is a 2D vector in screen coordinates (y grows downwards).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(u Vec2) Vec2 { return Vec2{v.X + u.X, v.Y + u.Y} }
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v.X - u.X, v.Y - u.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(u Vec2) float64 { return v.X*u.X + v.Y*u.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate turns v by theta radians about the origin.
func (v Vec2) Rotate(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Normalize returns v scaled to unit length, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

package main

import "math"

// Vector2 is a 2D vector in world units
type Vector2 struct {
	X, Y float64
}

// Vec is shorthand for Vector2{x, y}
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromPolar returns the vector with the given angle (radians) and magnitude
func FromPolar(angle, magnitude float64) Vector2 {
	return Vector2{
		X: math.Cos(angle) * magnitude,
		Y: math.Sin(angle) * magnitude,
	}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Perp returns v rotated by +90 degrees
func (v Vector2) Perp() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

func (v Vector2) SquaredLength() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns the direction of v in radians
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns the unit vector of v, or the zero vector when v is zero
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

// Clamp shortens v to maxLen if it is longer
func (v Vector2) Clamp(maxLen float64) Vector2 {
	l2 := v.SquaredLength()
	if l2 <= maxLen*maxLen || l2 == 0 {
		return v
	}
	return v.Scale(maxLen / math.Sqrt(l2))
}

// Equals compares both components within eps
func (v Vector2) Equals(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// SquaredDistance returns |a-b|^2
func SquaredDistance(a, b Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Distance returns |a-b|
func Distance(a, b Vector2) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}

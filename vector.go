package tilecore

import (
	"fmt"
	"math"
)

// Vector2D is a mutable single-precision 2D vector used for positions and
// velocities. Mutating methods use pointer receivers and work in place;
// assigning a Vector2D copies it, so two entities never share one.
type Vector2D struct {
	X, Y float32
}

// Zero returns the zero vector.
func Zero() Vector2D {
	return Vector2D{}
}

// Vec returns the vector (x, y).
func Vec(x, y float32) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add adds o to v in place.
func (v *Vector2D) Add(o Vector2D) {
	v.X += o.X
	v.Y += o.Y
}

// Sub subtracts o from v in place.
func (v *Vector2D) Sub(o Vector2D) {
	v.X -= o.X
	v.Y -= o.Y
}

// Scale multiplies both components by s in place.
func (v *Vector2D) Scale(s float32) {
	v.X *= s
	v.Y *= s
}

// Set overwrites both components.
func (v *Vector2D) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// Normalize scales v to unit length. The zero vector is left unchanged.
func (v *Vector2D) Normalize() {
	m := v.Length()
	if m == 0 {
		return
	}
	v.X /= m
	v.Y /= m
}

// Length returns the Euclidean magnitude of v.
func (v Vector2D) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vector2D) DistanceTo(o Vector2D) float32 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// Dot returns the dot product of v and o.
func (v Vector2D) Dot(o Vector2D) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Copy returns an independent copy of v.
func (v Vector2D) Copy() Vector2D {
	return v
}

// Plus returns v + o without modifying v.
func (v Vector2D) Plus(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("Vector2D(%.2f, %.2f)", v.X, v.Y)
}

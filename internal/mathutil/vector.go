package mathutil

import (
	"fmt"
	"math"
)

// Vector2D is a 2D floating point value used for positions, directions and
// ray math. All methods take and return values; nothing aliases.
type Vector2D struct {
	X, Y float64
}

// Vec is shorthand for Vector2D{x, y}.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns the component-wise sum of v and o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// AddScalar adds s to both components.
func (v Vector2D) AddScalar(s float64) Vector2D {
	return Vector2D{X: v.X + s, Y: v.Y + s}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Multiply returns the component-wise product of v and o.
func (v Vector2D) Multiply(o Vector2D) Vector2D {
	return Vector2D{X: v.X * o.X, Y: v.Y * o.Y}
}

// Scale multiplies both components by s.
func (v Vector2D) Scale(s float64) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Truncate floors both components, giving the grid cell a continuous
// position falls into.
func (v Vector2D) Truncate() Vector2D {
	return Vector2D{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// Cell returns the integer grid cell of v.
func (v Vector2D) Cell() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// Rotate rotates v by angle radians around the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perpendicular returns v rotated a quarter turn clockwise in screen
// coordinates (x right, y down).
func (v Vector2D) Perpendicular() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

// Length returns the euclidean length of v.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

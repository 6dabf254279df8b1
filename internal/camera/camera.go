package camera

import (
	"fmt"
	"math"

	"wolfcast/internal/mathutil"
)

// Camera is the viewer's pose. Direction is the forward vector; Plane is the
// half-width view-plane, perpendicular to Direction, whose length sets the
// field of view. Cameras are values: every command returns a new one.
type Camera struct {
	Position  mathutil.Vector2D
	Direction mathutil.Vector2D
	Plane     mathutil.Vector2D
}

// Default is the start-up pose: inside the first open cell, looking down +x
// with a 66° field of view.
func Default() Camera {
	return Camera{
		Position:  mathutil.Vec(1.5, 1.5),
		Direction: mathutil.Vec(1, 0),
		Plane:     mathutil.Vec(0, 0.66),
	}
}

// FOV returns the horizontal field of view in radians.
func (c Camera) FOV() float64 {
	return 2 * math.Atan2(c.Plane.Length(), c.Direction.Length())
}

// Determinant of the (plane, direction) basis. Zero means a degenerate pose.
func (c Camera) Determinant() float64 {
	return c.Plane.X*c.Direction.Y - c.Direction.X*c.Plane.Y
}

// Rotated turns both direction and plane by angle radians so the field of
// view is preserved.
func (c Camera) Rotated(angle float64) Camera {
	return Camera{
		Position:  c.Position,
		Direction: c.Direction.Rotate(angle),
		Plane:     c.Plane.Rotate(angle),
	}
}

// Moved returns the camera translated by offset, without collision checks.
func (c Camera) Moved(offset mathutil.Vector2D) Camera {
	c.Position = c.Position.Add(offset)
	return c
}

func (c Camera) String() string {
	return fmt.Sprintf("position: %v direction: %v plane: %v", c.Position, c.Direction, c.Plane)
}

package camera

import (
	"fmt"

	"wolfcast/internal/mathutil"
)

// Command is a discrete camera instruction produced by an input device.
type Command int

const (
	CommandNone Command = iota
	Forward
	Backward
	StrafeLeft
	StrafeRight
	RotateLeft
	RotateRight
)

var commandNames = map[Command]string{
	CommandNone: "none",
	Forward:     "forward",
	Backward:    "backward",
	StrafeLeft:  "strafe_left",
	StrafeRight: "strafe_right",
	RotateLeft:  "rotate_left",
	RotateRight: "rotate_right",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Grid is what movement needs from a map.
type Grid interface {
	Walkable(x, y int) bool
}

// Speeds are the per-command linear (units) and angular (radians) steps.
type Speeds struct {
	Move     float64
	Rotation float64
}

// DefaultSpeeds is 0.25 units and 0.25 radians per command.
func DefaultSpeeds() Speeds {
	return Speeds{Move: 0.25, Rotation: 0.25}
}

// Motion describes what a command did to the position.
type Motion struct {
	Attempted bool // the command asked for a translation
	BlockedX  bool
	BlockedY  bool
}

// Blocked reports whether any requested axis was refused.
func (m Motion) Blocked() bool {
	return m.Attempted && (m.BlockedX || m.BlockedY)
}

// Apply executes cmd against grid and returns the resulting camera. Movement
// is resolved per axis: each axis moves only if the cell it leads into is
// inside the grid and not solid, so a mover slides along walls.
func (c Camera) Apply(cmd Command, grid Grid, speeds Speeds) (Camera, Motion) {
	switch cmd {
	case Forward:
		return c.translate(c.Direction.Scale(speeds.Move), grid)
	case Backward:
		return c.translate(c.Direction.Scale(-speeds.Move), grid)
	case StrafeRight:
		return c.translate(c.Direction.Perpendicular().Scale(speeds.Move), grid)
	case StrafeLeft:
		return c.translate(c.Direction.Perpendicular().Scale(-speeds.Move), grid)
	case RotateLeft:
		return c.Rotated(-speeds.Rotation), Motion{}
	case RotateRight:
		return c.Rotated(speeds.Rotation), Motion{}
	default:
		return c, Motion{}
	}
}

func (c Camera) translate(offset mathutil.Vector2D, grid Grid) (Camera, Motion) {
	motion := Motion{Attempted: true}
	currentX, currentY := c.Position.Cell()
	expectedX, expectedY := c.Position.Add(offset).Cell()

	next := c
	if grid.Walkable(expectedX, currentY) {
		next.Position.X += offset.X
	} else {
		motion.BlockedX = offset.X != 0
	}
	if grid.Walkable(currentX, expectedY) {
		next.Position.Y += offset.Y
	} else {
		motion.BlockedY = offset.Y != 0
	}
	return next, motion
}

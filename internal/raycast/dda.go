// Package raycast turns a camera, a tile map and textures into wall strips,
// a per-column depth buffer and occlusion-tested sprite columns.
package raycast

import (
	"math"

	"wolfcast/internal/camera"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/texture"
)

// Grid is the map surface the raycaster walks.
type Grid interface {
	IsOutOf(x, y int) bool
	Collide(x, y int) bool
	BlockAt(x, y int) *texture.Texture
}

// Side tells which kind of grid line a ray crossed last.
type Side int

const (
	// SideX is a wall face perpendicular to the x axis (a vertical line in
	// the top-down view).
	SideX Side = 0
	// SideY is a wall face perpendicular to the y axis.
	SideY Side = 1
)

// Hit is the outcome of walking one ray through the grid.
type Hit struct {
	Hit          bool
	MapX, MapY   int
	Side         Side
	StepX, StepY int
	RayDirection mathutil.Vector2D
	// Distance is the perpendicular distance to the wall, measured along the
	// camera direction. +Inf when nothing was hit.
	Distance float64
	// WallX is the fractional position of the hit along the wall face.
	WallX float64
	Steps int
}

// CameraX maps screen column x to the view-plane coordinate in [-1, 1).
func CameraX(x, screenWidth int) float64 {
	return 2*float64(x)/float64(screenWidth) - 1
}

// RayDirection is the direction of the ray through screen column x.
func RayDirection(cam camera.Camera, x, screenWidth int) mathutil.Vector2D {
	return cam.Plane.Scale(CameraX(x, screenWidth)).Add(cam.Direction)
}

// Cast walks the grid from origin along rayDirection with a DDA until a solid
// tile is entered or the walk leaves the grid. Zero direction components give
// infinite deltas, which the comparisons below tolerate.
func Cast(origin, rayDirection mathutil.Vector2D, grid Grid) Hit {
	mapX, mapY := origin.Cell()

	deltaX := math.Abs(1 / rayDirection.X)
	deltaY := math.Abs(1 / rayDirection.Y)

	var stepX, stepY int
	var sideX, sideY float64
	if rayDirection.X < 0 {
		stepX = -1
		sideX = (origin.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - origin.X) * deltaX
	}
	if rayDirection.Y < 0 {
		stepY = -1
		sideY = (origin.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - origin.Y) * deltaY
	}

	h := Hit{
		StepX:        stepX,
		StepY:        stepY,
		RayDirection: rayDirection,
		Distance:     math.Inf(1),
	}

	for !h.Hit && !grid.IsOutOf(mapX, mapY) {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			h.Side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			h.Side = SideY
		}
		h.Steps++
		if grid.Collide(mapX, mapY) {
			h.Hit = true
		}
	}

	h.MapX, h.MapY = mapX, mapY
	if !h.Hit {
		return h
	}

	if h.Side == SideX {
		h.Distance = (float64(mapX) - origin.X + float64(1-stepX)/2) / rayDirection.X
		h.WallX = origin.Y + h.Distance*rayDirection.Y
	} else {
		h.Distance = (float64(mapY) - origin.Y + float64(1-stepY)/2) / rayDirection.Y
		h.WallX = origin.X + h.Distance*rayDirection.X
	}
	h.WallX -= math.Floor(h.WallX)
	return h
}

// CastColumn casts the ray for screen column x.
func CastColumn(cam camera.Camera, x, screenWidth int, grid Grid) Hit {
	return Cast(cam.Position, RayDirection(cam, x, screenWidth), grid)
}

// TextureColumn picks the texture column for a hit at fraction wallX of a
// face. Faces seen from the positive side are mirrored so textures never
// appear backwards.
func TextureColumn(side Side, rayDirection mathutil.Vector2D, wallX float64, textureWidth int) int {
	x := int(wallX * float64(textureWidth))
	if side == SideX && rayDirection.X > 0 {
		x = textureWidth - x - 1
	} else if side == SideY && rayDirection.Y < 0 {
		x = textureWidth - x - 1
	}
	return x
}

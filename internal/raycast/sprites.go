package raycast

import (
	"image"
	"math"

	"wolfcast/internal/camera"
	"wolfcast/internal/canvas"
	"wolfcast/internal/mathutil"
)

// SpriteProjection places a billboard sprite on screen.
type SpriteProjection struct {
	Visible bool
	// Transform is the sprite position in camera space: X is the lateral
	// offset, Y the depth along the view direction.
	Transform mathutil.Vector2D
	ScreenX   int
	Width     int
	Height    int
	// Top is the unclipped y of the sprite's first row; DrawStartY is Top
	// clamped to the screen.
	Top        int
	DrawStartY int
	DrawEndY   int
	DrawStartX int
	DrawEndX   int // exclusive
	left       float64
}

// ToCameraSpace expresses world position p in the camera basis using the
// inverse of the (plane, direction) matrix.
func ToCameraSpace(cam camera.Camera, p mathutil.Vector2D) mathutil.Vector2D {
	rel := p.Sub(cam.Position)
	invDet := 1 / cam.Determinant()
	return mathutil.Vector2D{
		X: invDet * (cam.Direction.Y*rel.X - cam.Direction.X*rel.Y),
		Y: invDet * (-cam.Plane.Y*rel.X + cam.Plane.X*rel.Y),
	}
}

// ProjectSprite computes the screen footprint of a sprite standing at world
// position p. Sprites at or behind the camera are not visible. Width and
// height both derive from the screen height so sprites scale like walls.
func ProjectSprite(cam camera.Camera, p mathutil.Vector2D, screenWidth, screenHeight int) SpriteProjection {
	t := ToCameraSpace(cam, p)
	proj := SpriteProjection{Transform: t}
	if !(t.Y > 0) {
		return proj
	}

	proj.ScreenX = int(float64(screenWidth) / 2 * (1 + t.X/t.Y))

	sizeF := math.Abs(float64(screenHeight) / t.Y)
	size := maxLineHeight
	if sizeF < maxLineHeight {
		size = int(sizeF)
	}
	proj.Width = size
	proj.Height = size

	proj.Top = (screenHeight - size) / 2
	proj.DrawStartY = max(proj.Top, 0)
	proj.DrawEndY = min(proj.Top+size, screenHeight)

	proj.left = float64(proj.ScreenX) - float64(size)/2
	proj.DrawStartX = max(int(proj.left), 0)
	proj.DrawEndX = min(int(float64(proj.ScreenX)+float64(size)/2), screenWidth)

	proj.Visible = size > 0 && proj.DrawStartX < proj.DrawEndX && proj.DrawStartY < proj.DrawEndY
	return proj
}

// TextureColumn returns the column of a frameWidth wide source that lands
// on screen column stripe.
func (p SpriteProjection) TextureColumn(stripe, frameWidth int) int {
	if p.Width <= 0 {
		return 0
	}
	x := int((float64(stripe) - p.left) * float64(frameWidth) / float64(p.Width))
	return min(max(x, 0), frameWidth-1)
}

// Occluded reports whether the wall recorded for stripe is at or in front
// of the sprite.
func (p SpriteProjection) Occluded(stripe int, depth DepthBuffer) bool {
	return !(p.Transform.Y < depth.At(stripe))
}

// DrawSprite draws the visible, unoccluded columns of the sprite using
// frame of src, and returns how many columns were drawn.
func DrawSprite(sink canvas.PixelSink, proj SpriteProjection, src image.Image, frame image.Rectangle, depth DepthBuffer) int {
	if !proj.Visible || frame.Empty() {
		return 0
	}

	// Rows cut off by the screen edges are cut from the source too, keeping
	// the vertical scale.
	frameHeight := frame.Dy()
	srcTop := frame.Min.Y + (proj.DrawStartY-proj.Top)*frameHeight/proj.Height
	srcBottom := frame.Min.Y + (proj.DrawEndY-proj.Top)*frameHeight/proj.Height
	if srcBottom <= srcTop {
		srcBottom = srcTop + 1
	}

	drawn := 0
	for stripe := proj.DrawStartX; stripe < proj.DrawEndX; stripe++ {
		if proj.Occluded(stripe, depth) {
			continue
		}
		texX := frame.Min.X + proj.TextureColumn(stripe, frame.Dx())
		sink.DrawImageRegion(src,
			image.Rect(texX, srcTop, texX+1, srcBottom),
			image.Rect(stripe, proj.DrawStartY, stripe+1, proj.DrawEndY),
		)
		drawn++
	}
	return drawn
}

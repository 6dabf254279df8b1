package raycast

import (
	"image"
	"image/color"
	"math"

	"wolfcast/internal/camera"
	"wolfcast/internal/canvas"
	"wolfcast/internal/threading/core"
)

// maxLineHeight bounds projected heights so a wall touching the camera
// cannot overflow int conversion.
const maxLineHeight = 1 << 24

// DepthBuffer holds, per screen column, the perpendicular distance of the
// nearest wall, or +Inf where the ray hit nothing.
type DepthBuffer []float64

// NewDepthBuffer returns a buffer of width columns, all +Inf.
func NewDepthBuffer(width int) DepthBuffer {
	d := make(DepthBuffer, width)
	for i := range d {
		d[i] = math.Inf(1)
	}
	return d
}

// At returns the depth of column x; columns outside the buffer are +Inf.
func (d DepthBuffer) At(x int) float64 {
	if x < 0 || x >= len(d) {
		return math.Inf(1)
	}
	return d[x]
}

// Strip is the on-screen placement and texture window of one wall column.
type Strip struct {
	LineHeight         int // full projected height, may exceed the screen
	LineHeightOnScreen int
	LowestPixel        int // top y of the drawn strip
	TextureX           int
	TextureYOffset     int
	TextureHeight      int // rows of the texture actually sampled
}

// ProjectStrip computes the strip for hit h on a screen screenHeight pixels
// tall, sampling a textureWidth x textureHeight texture.
func ProjectStrip(h Hit, screenHeight, textureWidth, textureHeight int) Strip {
	heightF := float64(screenHeight) / h.Distance
	lineHeight := maxLineHeight
	if heightF < maxLineHeight {
		lineHeight = int(heightF)
	}

	s := Strip{
		LineHeight:         lineHeight,
		LineHeightOnScreen: lineHeight,
		TextureHeight:      textureHeight,
	}

	// Walls taller than the screen sample only the visible middle part of
	// the texture.
	if lineHeight > screenHeight {
		s.LineHeightOnScreen = screenHeight
		delta := int(int64(lineHeight-screenHeight) * int64(textureHeight) / int64(lineHeight))
		s.TextureYOffset = delta / 2
		s.TextureHeight = textureHeight - delta
	}

	s.LowestPixel = (screenHeight - lineHeight) / 2
	if s.LowestPixel < 0 {
		s.LowestPixel = 0
	}

	s.TextureX = TextureColumn(h.Side, h.RayDirection, h.WallX, textureWidth)
	return s
}

// Untextured walls are drawn flat, darker on y faces.
var (
	flatWallX = color.RGBA{160, 160, 160, 255}
	flatWallY = color.RGBA{110, 110, 110, 255}
)

// WallCaster casts one ray per screen column. Columns are independent, so
// with a worker pool the casts run in parallel; drawing always happens on
// the calling goroutine, left to right.
type WallCaster struct {
	pool *core.WorkerPool
	hits []Hit
}

// NewWallCaster returns a caster. pool may be nil for a sequential cast.
func NewWallCaster(pool *core.WorkerPool) *WallCaster {
	return &WallCaster{pool: pool}
}

// Cast renders the walls seen by cam into sink and returns the depth buffer
// for this frame.
func (wc *WallCaster) Cast(sink canvas.PixelSink, cam camera.Camera, grid Grid) DepthBuffer {
	width, height := sink.Size()
	depth := NewDepthBuffer(width)

	if cap(wc.hits) < width {
		wc.hits = make([]Hit, width)
	}
	hits := wc.hits[:width]

	castOne := func(x int) {
		hits[x] = CastColumn(cam, x, width, grid)
	}
	if wc.pool != nil && width > 8 {
		wc.pool.ParallelFor(0, width, castOne)
	} else {
		for x := 0; x < width; x++ {
			castOne(x)
		}
	}

	for x, h := range hits {
		if !h.Hit {
			continue
		}
		depth[x] = h.Distance
		drawWallColumn(sink, grid, x, height, h)
	}
	return depth
}

func drawWallColumn(sink canvas.PixelSink, grid Grid, x, screenHeight int, h Hit) {
	tex := grid.BlockAt(h.MapX, h.MapY)
	if tex == nil || tex.Image() == nil {
		s := ProjectStrip(h, screenHeight, 1, 1)
		c := flatWallX
		if h.Side == SideY {
			c = flatWallY
		}
		sink.DrawRect(x, s.LowestPixel, 1, s.LineHeightOnScreen, c)
		return
	}

	s := ProjectStrip(h, screenHeight, tex.Width(), tex.Height())
	if s.LineHeightOnScreen <= 0 || s.TextureHeight <= 0 {
		return
	}
	sink.DrawImageRegion(tex.Image(),
		image.Rect(s.TextureX, s.TextureYOffset, s.TextureX+1, s.TextureYOffset+s.TextureHeight),
		image.Rect(x, s.LowestPixel, x+1, s.LowestPixel+s.LineHeightOnScreen),
	)
}

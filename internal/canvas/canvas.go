// Package canvas holds the pixel sinks the renderer draws into.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// PixelSink accepts drawn pixels. The renderer only ever talks to this
// interface; presenting the result is the sink owner's business.
type PixelSink interface {
	Size() (width, height int)
	Clear()
	DrawPixel(x, y int, c color.RGBA)
	DrawRect(x, y, w, h int, c color.RGBA)
	// DrawImageRegion scales the src region sr into the destination region
	// dr, compositing with alpha.
	DrawImageRegion(src image.Image, sr, dr image.Rectangle)
}

// Direct draws straight into an RGBA frame.
type Direct struct {
	frame      *image.RGBA
	clearColor color.RGBA
}

// NewDirect allocates a width x height frame cleared to black.
func NewDirect(width, height int) *Direct {
	d := &Direct{
		frame:      image.NewRGBA(image.Rect(0, 0, width, height)),
		clearColor: color.RGBA{0, 0, 0, 255},
	}
	d.Clear()
	return d
}

// Frame exposes the backing image for presentation.
func (d *Direct) Frame() *image.RGBA { return d.frame }

func (d *Direct) Size() (int, int) {
	return d.frame.Rect.Dx(), d.frame.Rect.Dy()
}

func (d *Direct) Clear() {
	draw.Draw(d.frame, d.frame.Rect, image.NewUniform(d.clearColor), image.Point{}, draw.Src)
}

func (d *Direct) DrawPixel(x, y int, c color.RGBA) {
	if !(image.Point{x, y}).In(d.frame.Rect) {
		return
	}
	d.frame.SetRGBA(x, y, c)
}

func (d *Direct) DrawRect(x, y, w, h int, c color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(d.frame.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(d.frame, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (d *Direct) DrawImageRegion(src image.Image, sr, dr image.Rectangle) {
	sr, dr, ok := clipSource(src.Bounds(), sr, dr)
	if !ok {
		return
	}
	xdraw.NearestNeighbor.Scale(d.frame, dr, src, sr, xdraw.Over, nil)
}

// clipSource trims sr to the source bounds and shrinks dr by the same
// proportion, so a partially out-of-range source keeps its scale.
func clipSource(bounds, sr, dr image.Rectangle) (image.Rectangle, image.Rectangle, bool) {
	if sr.Empty() || dr.Empty() {
		return sr, dr, false
	}
	clipped := sr.Intersect(bounds)
	if clipped.Empty() {
		return sr, dr, false
	}
	if clipped == sr {
		return sr, dr, true
	}

	sx := float64(dr.Dx()) / float64(sr.Dx())
	sy := float64(dr.Dy()) / float64(sr.Dy())
	out := image.Rect(
		dr.Min.X+int(float64(clipped.Min.X-sr.Min.X)*sx),
		dr.Min.Y+int(float64(clipped.Min.Y-sr.Min.Y)*sy),
		dr.Max.X-int(float64(sr.Max.X-clipped.Max.X)*sx),
		dr.Max.Y-int(float64(sr.Max.Y-clipped.Max.Y)*sy),
	)
	if out.Empty() {
		return clipped, out, false
	}
	return clipped, out, true
}

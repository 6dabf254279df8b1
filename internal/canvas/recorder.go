package canvas

import (
	"image"
	"image/color"
)

// Op names a PixelSink call.
type Op int

const (
	OpClear Op = iota
	OpPixel
	OpRect
	OpImageRegion
)

// Call is one recorded PixelSink call.
type Call struct {
	Op    Op
	Color color.RGBA
	Src   image.Image
	SR    image.Rectangle
	DR    image.Rectangle // for OpPixel a 1x1 rectangle
}

// Recorder logs every call and forwards it to an optional inner sink.
// Useful for instrumentation and for asserting on renderer output.
type Recorder struct {
	Inner  PixelSink
	Width  int
	Height int
	Calls  []Call
}

// NewRecorder records calls for a width x height surface without drawing.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// Wrap records calls made to inner.
func Wrap(inner PixelSink) *Recorder {
	w, h := inner.Size()
	return &Recorder{Inner: inner, Width: w, Height: h}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, Call{Op: OpClear})
	if r.Inner != nil {
		r.Inner.Clear()
	}
}

func (r *Recorder) DrawPixel(x, y int, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpPixel, Color: c, DR: image.Rect(x, y, x+1, y+1)})
	if r.Inner != nil {
		r.Inner.DrawPixel(x, y, c)
	}
}

func (r *Recorder) DrawRect(x, y, w, h int, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpRect, Color: c, DR: image.Rect(x, y, x+w, y+h)})
	if r.Inner != nil {
		r.Inner.DrawRect(x, y, w, h, c)
	}
}

func (r *Recorder) DrawImageRegion(src image.Image, sr, dr image.Rectangle) {
	r.Calls = append(r.Calls, Call{Op: OpImageRegion, Src: src, SR: sr, DR: dr})
	if r.Inner != nil {
		r.Inner.DrawImageRegion(src, sr, dr)
	}
}

// Regions returns the recorded image-region calls whose destination starts
// in column x.
func (r *Recorder) Regions(x int) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == OpImageRegion && c.DR.Min.X == x {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

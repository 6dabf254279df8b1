package canvas

import (
	"image"
	"image/color"
)

// Shadow is a double-buffered sink. Drawing goes to a back buffer; Present
// compares it with the last presented frame and hands only the changed
// pixels to the caller.
type Shadow struct {
	*Direct
	front *image.RGBA
	first bool
}

// NewShadow allocates both buffers. The first Present emits every pixel.
func NewShadow(width, height int) *Shadow {
	return &Shadow{
		Direct: NewDirect(width, height),
		front:  image.NewRGBA(image.Rect(0, 0, width, height)),
		first:  true,
	}
}

// Front returns the last presented frame.
func (s *Shadow) Front() *image.RGBA { return s.front }

// Present copies changed back-buffer pixels to the front buffer, calling emit
// for each one, and returns how many changed. emit may be nil.
func (s *Shadow) Present(emit func(x, y int, c color.RGBA)) int {
	back := s.Direct.frame
	width, height := back.Rect.Dx(), back.Rect.Dy()
	changed := 0

	for y := 0; y < height; y++ {
		row := y * back.Stride
		for x := 0; x < width; x++ {
			i := row + x*4
			if !s.first &&
				back.Pix[i] == s.front.Pix[i] &&
				back.Pix[i+1] == s.front.Pix[i+1] &&
				back.Pix[i+2] == s.front.Pix[i+2] &&
				back.Pix[i+3] == s.front.Pix[i+3] {
				continue
			}
			copy(s.front.Pix[i:i+4], back.Pix[i:i+4])
			changed++
			if emit != nil {
				emit(x, y, color.RGBA{back.Pix[i], back.Pix[i+1], back.Pix[i+2], back.Pix[i+3]})
			}
		}
	}
	s.first = false
	return changed
}

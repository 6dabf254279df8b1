package texture

import (
	"image"
	"image/color"
)

// DefaultPlaceholderSize matches the common 64px wall texture size.
const DefaultPlaceholderSize = 64

var (
	placeholderA = color.RGBA{255, 0, 220, 255} // magenta
	placeholderB = color.RGBA{0, 0, 0, 255}
)

// Placeholder builds the classic missing-texture checkerboard.
func Placeholder(size int) *image.RGBA {
	return Checker(size, size/8, placeholderA, placeholderB)
}

// Checker returns a size x size image of cell-sized squares alternating
// between a and b. The upper-left square is a.
func Checker(size, cell int, a, b color.RGBA) *image.RGBA {
	if cell <= 0 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Gradient returns a width x height image whose columns fade from a to b, so
// every column is distinguishable. Useful for verifying texture mapping.
func Gradient(width, height int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		c := color.RGBA{
			R: lerp(a.R, b.R, t),
			G: lerp(a.G, b.G, t),
			B: lerp(a.B, b.B, t),
			A: 255,
		}
		for y := 0; y < height; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

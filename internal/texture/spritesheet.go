package texture

import (
	"fmt"
	"image"
)

// SpriteSheet is a texture holding several sprite frames, addressed by name,
// plus named animations made of frame sequences.
type SpriteSheet struct {
	*Texture
	Frames     map[string]image.Rectangle
	Animations map[string][]string
}

// NewSpriteSheet wraps tex with the given frame and animation tables.
func NewSpriteSheet(tex *Texture, frames map[string]image.Rectangle, animations map[string][]string) *SpriteSheet {
	return &SpriteSheet{Texture: tex, Frames: frames, Animations: animations}
}

// Frame returns the source rectangle of the named frame.
func (s *SpriteSheet) Frame(name string) (image.Rectangle, error) {
	r, ok := s.Frames[name]
	if !ok {
		return image.Rectangle{}, fmt.Errorf("sprite frame %q not found", name)
	}
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("sprite frame %q is empty", name)
	}
	return r, nil
}

// AnimationFrame picks the frame of animation shown at tick, advancing every
// ticksPerFrame ticks. An unknown animation is treated as a frame name.
func (s *SpriteSheet) AnimationFrame(animation string, tick uint64, ticksPerFrame int) string {
	seq := s.Animations[animation]
	if len(seq) == 0 {
		return animation
	}
	if ticksPerFrame <= 0 {
		ticksPerFrame = 1
	}
	return seq[(tick/uint64(ticksPerFrame))%uint64(len(seq))]
}

// DogFrames is the frame table of the running dog sheet.
func DogFrames() map[string]image.Rectangle {
	return map[string]image.Rectangle{
		"RUNNING_045_00": image.Rect(66, 0, 66+62, 62),
		"RUNNING_045_01": image.Rect(65, 65, 65+64, 65+64),
		"RUNNING_045_02": image.Rect(65, 130, 65+64, 130+64),
		"RUNNING_045_03": image.Rect(65, 195, 65+64, 195+64),
	}
}

// DogAnimations lists the running dog animations.
func DogAnimations() map[string][]string {
	return map[string][]string{
		"RUNNING_045": {"RUNNING_045_00", "RUNNING_045_01", "RUNNING_045_02", "RUNNING_045_03"},
	}
}

// LoadSheet loads a sprite sheet image in the background. When the file is
// unavailable every frame is filled with the missing-texture checkerboard on
// an otherwise transparent sheet, so frame rectangles stay valid.
func LoadSheet(path string, frames map[string]image.Rectangle, animations map[string][]string) *SpriteSheet {
	tex := LoadWithFallback(path, func() image.Image {
		return PlaceholderSheet(frames)
	})
	return NewSpriteSheet(tex, frames, animations)
}

// PlaceholderSheet covers the union of frames; each frame holds a checkerboard.
func PlaceholderSheet(frames map[string]image.Rectangle) *image.RGBA {
	var bounds image.Rectangle
	for _, r := range frames {
		bounds = bounds.Union(r)
	}
	sheet := image.NewRGBA(image.Rect(0, 0, bounds.Max.X, bounds.Max.Y))
	for _, r := range frames {
		if r.Empty() {
			continue
		}
		cell := Checker(r.Dx(), r.Dx()/8, placeholderA, placeholderB)
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				if y < cell.Rect.Dy() {
					sheet.SetRGBA(r.Min.X+x, r.Min.Y+y, cell.RGBAAt(x, y))
				}
			}
		}
	}
	return sheet
}

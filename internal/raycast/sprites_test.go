package raycast

import (
	"image"
	"image/color"
	"math"
	"testing"

	"wolfcast/internal/camera"
	"wolfcast/internal/canvas"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/texture"
)

// viewer has a plane of length 0.5 so camera-space depths come out exact.
func viewer() camera.Camera {
	return camera.Camera{
		Position:  mathutil.Vec(1.5, 1.5),
		Direction: mathutil.Vec(1, 0),
		Plane:     mathutil.Vec(0, 0.5),
	}
}

func spriteImage() image.Image {
	return texture.Checker(32, 4, color.RGBA{200, 0, 0, 255}, color.RGBA{})
}

func TestToCameraSpace(t *testing.T) {
	cam := camera.Default()

	ahead := ToCameraSpace(cam, mathutil.Vec(5.5, 1.5))
	if math.Abs(ahead.X) > 1e-12 || math.Abs(ahead.Y-4) > 1e-12 {
		t.Errorf("sprite straight ahead at depth 4: got %v", ahead)
	}

	behind := ToCameraSpace(cam, mathutil.Vec(0.5, 1.5))
	if behind.Y >= 0 {
		t.Errorf("sprite behind the camera has depth %g", behind.Y)
	}

	side := ToCameraSpace(cam, mathutil.Vec(5.5, 3.5))
	if side.X == 0 {
		t.Error("sprite off axis should have a lateral offset")
	}
}

func TestProjectSpriteAhead(t *testing.T) {
	cam := viewer()
	p := ProjectSprite(cam, mathutil.Vec(5.5, 1.5), 300, 200)

	if !p.Visible {
		t.Fatal("sprite ahead should be visible")
	}
	if p.ScreenX != 150 {
		t.Errorf("ScreenX = %d, want 150", p.ScreenX)
	}
	if p.Height != 50 || p.Width != 50 {
		t.Errorf("size = %dx%d, want 50x50", p.Width, p.Height)
	}
	if p.DrawStartY != 75 || p.DrawEndY != 125 {
		t.Errorf("rows [%d,%d), want [75,125)", p.DrawStartY, p.DrawEndY)
	}
	if p.DrawStartX != 125 || p.DrawEndX != 175 {
		t.Errorf("columns [%d,%d), want [125,175)", p.DrawStartX, p.DrawEndX)
	}
}

func TestProjectSpriteBehindCamera(t *testing.T) {
	cam := viewer()
	for _, pos := range []mathutil.Vector2D{
		mathutil.Vec(0.5, 1.5),
		mathutil.Vec(1.5, 1.5), // exactly at the camera
	} {
		p := ProjectSprite(cam, pos, 300, 200)
		if p.Visible {
			t.Errorf("sprite at %v should not be visible", pos)
		}
		if n := DrawSprite(canvas.NewRecorder(300, 200), p, spriteImage(), image.Rect(0, 0, 32, 32), NewDepthBuffer(300)); n != 0 {
			t.Errorf("sprite at %v drew %d columns", pos, n)
		}
	}
}

func TestSpriteColumnsMapAcrossFrame(t *testing.T) {
	p := ProjectSprite(viewer(), mathutil.Vec(5.5, 1.5), 300, 200)

	if got := p.TextureColumn(p.DrawStartX, 32); got != 0 {
		t.Errorf("first column samples %d, want 0", got)
	}
	if got := p.TextureColumn(p.DrawEndX-1, 32); got != 31 {
		t.Errorf("last column samples %d, want 31", got)
	}
	prev := -1
	for stripe := p.DrawStartX; stripe < p.DrawEndX; stripe++ {
		c := p.TextureColumn(stripe, 32)
		if c < prev {
			t.Fatalf("texture columns go backwards at stripe %d", stripe)
		}
		prev = c
	}
}

func TestSpriteOcclusion(t *testing.T) {
	cam := viewer()
	p := ProjectSprite(cam, mathutil.Vec(5.5, 1.5), 300, 200)
	depth := NewDepthBuffer(300)

	// Left half of the sprite is behind a wall at depth 3, right half in
	// front of a wall at depth 5; column 160 has a wall at exactly the
	// sprite's depth.
	for x := p.DrawStartX; x < 150; x++ {
		depth[x] = 3
	}
	for x := 150; x < p.DrawEndX; x++ {
		depth[x] = 5
	}
	depth[160] = p.Transform.Y

	rec := canvas.NewRecorder(300, 200)
	n := DrawSprite(rec, p, spriteImage(), image.Rect(0, 0, 32, 32), depth)

	for x := p.DrawStartX; x < p.DrawEndX; x++ {
		drawn := len(rec.Regions(x)) == 1
		want := x >= 150 && x != 160
		if drawn != want {
			t.Errorf("column %d (depth %g): drawn = %v, want %v", x, depth[x], drawn, want)
		}
	}
	if n != p.DrawEndX-150-1 {
		t.Errorf("DrawSprite reported %d columns", n)
	}
}

func TestSpriteClippedVertically(t *testing.T) {
	cam := viewer()
	// Depth 0.5 gives a sprite twice the screen height.
	p := ProjectSprite(cam, mathutil.Vec(2, 1.5), 300, 200)
	if p.Height != 400 || p.Top != -100 {
		t.Fatalf("height %d top %d, want 400 and -100", p.Height, p.Top)
	}
	if p.DrawStartY != 0 || p.DrawEndY != 200 {
		t.Fatalf("rows [%d,%d), want [0,200)", p.DrawStartY, p.DrawEndY)
	}

	rec := canvas.NewRecorder(300, 200)
	frame := image.Rect(0, 0, 32, 32)
	DrawSprite(rec, p, spriteImage(), frame, NewDepthBuffer(300))

	regions := rec.Regions(150)
	if len(regions) != 1 {
		t.Fatalf("centre column drew %d regions", len(regions))
	}
	// Only the middle half of the frame is visible.
	if sr := regions[0].SR; sr.Min.Y != 8 || sr.Max.Y != 24 {
		t.Errorf("source rows [%d,%d), want [8,24)", sr.Min.Y, sr.Max.Y)
	}
}

func TestSpriteUsesFrameOffset(t *testing.T) {
	p := ProjectSprite(viewer(), mathutil.Vec(5.5, 1.5), 300, 200)
	frame := image.Rect(64, 32, 96, 64)
	rec := canvas.NewRecorder(300, 200)

	DrawSprite(rec, p, image.NewRGBA(image.Rect(0, 0, 128, 128)), frame, NewDepthBuffer(300))

	for _, c := range rec.Calls {
		if !c.SR.In(frame) {
			t.Fatalf("sampled %v outside frame %v", c.SR, frame)
		}
	}
	if len(rec.Calls) != p.DrawEndX-p.DrawStartX {
		t.Errorf("drew %d columns, want %d", len(rec.Calls), p.DrawEndX-p.DrawStartX)
	}
}

func TestSpritePartlyOffScreen(t *testing.T) {
	cam := viewer()
	// Far to the left of the view, only its right edge shows.
	p := ProjectSprite(cam, mathutil.Vec(3.5, 0.25), 300, 200)
	if !p.Visible {
		t.Fatal("sprite should be partly visible")
	}
	if p.DrawStartX != 0 {
		t.Errorf("DrawStartX = %d, want clamp to 0", p.DrawStartX)
	}
	if p.DrawEndX != 13 {
		t.Errorf("DrawEndX = %d, want 13", p.DrawEndX)
	}
	if first := p.TextureColumn(0, 32); first != 27 {
		t.Errorf("clipped sprite starts at frame column %d, want 27", first)
	}
}

package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
)

// ErrNotReady is returned when a texture is read before it finished loading.
var ErrNotReady = errors.New("texture not ready")

// Texture is an image resource that becomes ready once, asynchronously, and is
// read-only afterwards. Frames share textures by pointer.
type Texture struct {
	name  string
	img   *image.RGBA
	err   error
	ready chan struct{}
	once  sync.Once
}

// New returns a pending texture. It becomes ready on the first call to Resolve.
func New(name string) *Texture {
	return &Texture{name: name, ready: make(chan struct{})}
}

// FromImage returns a texture that is ready immediately.
func FromImage(name string, img image.Image) *Texture {
	t := New(name)
	t.Resolve(img, nil)
	return t
}

// Load decodes the image at path in the background. A file that cannot be
// opened or decoded resolves to a placeholder so rendering can still proceed;
// the cause stays available through Err.
func Load(path string) *Texture {
	return LoadWithFallback(path, func() image.Image {
		return Placeholder(DefaultPlaceholderSize)
	})
}

// LoadWithFallback is Load with a caller supplied placeholder.
func LoadWithFallback(path string, fallback func() image.Image) *Texture {
	t := New(path)
	go func() {
		img, err := decodeFile(path)
		if err != nil {
			log.Printf("Warning: texture %s unavailable, using placeholder: %v", path, err)
			t.Resolve(fallback(), err)
			return
		}
		t.Resolve(img, nil)
	}()
	return t
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

// Resolve stores the decoded pixels and signals readiness. Only the first
// call has any effect.
func (t *Texture) Resolve(img image.Image, err error) {
	t.once.Do(func() {
		t.img = toRGBA(img)
		t.err = err
		close(t.ready)
	})
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Name identifies the texture in logs.
func (t *Texture) Name() string { return t.name }

// Ready is closed once the texture has loaded.
func (t *Texture) Ready() <-chan struct{} { return t.ready }

// IsReady reports whether the texture has loaded, without blocking.
func (t *Texture) IsReady() bool {
	select {
	case <-t.ready:
		return true
	default:
		return false
	}
}

// Err returns the load error, if the texture fell back to a placeholder.
func (t *Texture) Err() error {
	if !t.IsReady() {
		return ErrNotReady
	}
	return t.err
}

// Width is zero until the texture is ready.
func (t *Texture) Width() int {
	if !t.IsReady() {
		return 0
	}
	return t.img.Rect.Dx()
}

// Height is zero until the texture is ready.
func (t *Texture) Height() int {
	if !t.IsReady() {
		return 0
	}
	return t.img.Rect.Dy()
}

// At returns the raw sample at pixel (x, y), or transparent black outside the
// image or before the texture is ready.
func (t *Texture) At(x, y int) color.RGBA {
	if !t.IsReady() {
		return color.RGBA{}
	}
	return t.img.RGBAAt(x, y)
}

// Image returns the backing surface used as a blit source. It is nil until
// the texture is ready.
func (t *Texture) Image() *image.RGBA {
	if !t.IsReady() {
		return nil
	}
	return t.img
}

// WaitAll blocks until every texture is ready or ctx is done.
func WaitAll(ctx context.Context, textures ...*Texture) error {
	for _, t := range textures {
		if t == nil {
			continue
		}
		select {
		case <-t.Ready():
		case <-ctx.Done():
			return fmt.Errorf("waiting for texture %s: %w", t.name, ctx.Err())
		}
	}
	return nil
}

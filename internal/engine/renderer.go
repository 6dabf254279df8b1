package engine

import (
	"fmt"
	"image/color"
	"time"

	"wolfcast/internal/camera"
	"wolfcast/internal/canvas"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/raycast"
	"wolfcast/internal/texture"
	"wolfcast/internal/threading/core"
	"wolfcast/internal/threading/monitoring"
)

// Sprite is an animated billboard standing in the world.
type Sprite struct {
	Position      mathutil.Vector2D
	Sheet         *texture.SpriteSheet
	Animation     string
	TicksPerFrame int
}

// Options configures a Renderer. Zero values give a black ceiling and floor,
// a sequential cast and a private monitor.
type Options struct {
	Ceiling color.RGBA
	Floor   color.RGBA
	Pool    *core.WorkerPool
	Monitor *monitoring.PerformanceMonitor
	Sprites []Sprite
}

// FrameStats describes one call to Frame.
type FrameStats struct {
	Rendered      bool
	Frame         uint64 // index of this frame among rendered frames
	Duration      time.Duration
	Raycast       time.Duration
	SpriteRender  time.Duration
	SpriteColumns int
}

// Renderer draws frames of a State into a PixelSink.
type Renderer struct {
	state   *State
	walls   *raycast.WallCaster
	sprites []Sprite
	ceiling color.RGBA
	floor   color.RGBA
	monitor *monitoring.PerformanceMonitor
	frames  *core.SafeCounter
	depth   raycast.DepthBuffer
}

// NewRenderer returns a renderer for state.
func NewRenderer(state *State, opts Options) *Renderer {
	monitor := opts.Monitor
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor(0)
	}
	return &Renderer{
		state:   state,
		walls:   raycast.NewWallCaster(opts.Pool),
		sprites: append([]Sprite(nil), opts.Sprites...),
		ceiling: opts.Ceiling,
		floor:   opts.Floor,
		monitor: monitor,
		frames:  core.NewSafeCounter(),
	}
}

// Monitor returns the performance monitor frames are recorded in.
func (r *Renderer) Monitor() *monitoring.PerformanceMonitor {
	return r.monitor
}

// Depth returns the depth buffer of the last rendered frame.
func (r *Renderer) Depth() raycast.DepthBuffer {
	return r.depth
}

// Textures lists every texture a frame may sample: the map's tiles and
// fallback plus the sprite sheets.
func (r *Renderer) Textures() []*texture.Texture {
	textures := r.state.Map().Textures()
	for _, s := range r.sprites {
		if s.Sheet != nil {
			textures = append(textures, s.Sheet.Texture)
		}
	}
	return textures
}

// Frame renders one frame into sink. While paused it does nothing and the
// sink keeps the previous frame. It panics if a texture is still loading;
// call WaitReady first.
func (r *Renderer) Frame(sink canvas.PixelSink) FrameStats {
	if r.state.Paused() {
		r.monitor.SkipFrame()
		return FrameStats{}
	}

	timer := r.monitor.StartFrame()
	cam, m := r.state.Snapshot()

	for _, t := range r.Textures() {
		if !t.IsReady() {
			panic(fmt.Sprintf("engine: texture %q is not loaded; wait for textures before rendering", t.Name()))
		}
	}

	stats := FrameStats{Rendered: true, Frame: uint64(r.frames.Increment() - 1)}

	sink.Clear()
	w, h := sink.Size()
	sink.DrawRect(0, 0, w, h/2, r.ceiling)
	sink.DrawRect(0, h/2, w, h-h/2, r.floor)

	stats.Raycast = r.monitor.ProfiledFunction(monitoring.PhaseRaycast, func() {
		r.depth = r.walls.Cast(sink, cam, m)
	})
	stats.SpriteRender = r.monitor.ProfiledFunction(monitoring.PhaseSprite, func() {
		stats.SpriteColumns = r.drawSprites(sink, cam, stats.Frame)
	})

	stats.Duration = timer.EndFrame()
	return stats
}

// drawSprites draws the sprites in configuration order. Each is occluded by
// walls only, not by other sprites.
func (r *Renderer) drawSprites(sink canvas.PixelSink, cam camera.Camera, frame uint64) int {
	w, h := sink.Size()
	columns := 0
	for _, s := range r.sprites {
		if s.Sheet == nil {
			continue
		}
		p := raycast.ProjectSprite(cam, s.Position, w, h)
		if !p.Visible {
			continue
		}
		rect, err := s.Sheet.Frame(s.Sheet.AnimationFrame(s.Animation, frame, s.TicksPerFrame))
		if err != nil {
			continue
		}
		columns += raycast.DrawSprite(sink, p, s.Sheet.Image(), rect, r.depth)
	}
	return columns
}

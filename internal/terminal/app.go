package terminal

import (
	"context"
	"errors"
	"image/color"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"wolfcast/internal/canvas"
	"wolfcast/internal/engine"
)

// statusRows is the number of terminal rows kept below the view.
const statusRows = 1

// Bumper plays feedback when movement is blocked.
type Bumper interface {
	Bump()
}

// Options configures an App.
type Options struct {
	Bumper       Bumper
	MapPath      string
	Floor        color.RGBA
	DoubleBuffer bool
	ShowStats    bool
}

// App runs the renderer inside a terminal.
type App struct {
	screen   tcell.Screen
	state    *engine.State
	renderer *engine.Renderer
	opts     Options
	status   tcell.Style

	mu        sync.Mutex // guards the sinks and presenter
	direct    *canvas.Direct
	shadow    *canvas.Shadow
	presenter *Presenter
	cols      int
	rows      int

	resized   atomic.Bool
	showStats atomic.Bool
}

// NewApp binds a renderer to an initialised screen.
func NewApp(screen tcell.Screen, state *engine.State, renderer *engine.Renderer, opts Options) *App {
	a := &App{
		screen:   screen,
		state:    state,
		renderer: renderer,
		opts:     opts,
		status:   StatusStyle(opts.Floor),
	}
	a.showStats.Store(opts.ShowStats)
	a.resized.Store(true)
	return a
}

// HandleEvent applies one terminal event and reports whether the app should
// quit. It may be called concurrently with Tick.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resized.Store(true)
	case *tcell.EventKey:
		action, cmd := Translate(ev)
		switch action {
		case ActionQuit:
			return true
		case ActionMove:
			if m := a.state.Apply(cmd); m.Blocked() && a.opts.Bumper != nil {
				a.opts.Bumper.Bump()
			}
		case ActionPause:
			a.state.TogglePaused()
		case ActionStats:
			a.showStats.Store(!a.showStats.Load())
		case ActionReload:
			if a.opts.MapPath == "" {
				log.Printf("Warning: no map file configured, nothing to reload")
				break
			}
			if err := a.state.ReloadMap(a.opts.MapPath); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}
	return false
}

// Tick renders a frame and pushes it to the screen. It returns the number of
// cells written for the view.
func (a *App) Tick() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.resized.Swap(false) {
		a.resize()
	}

	var sink canvas.PixelSink = a.direct
	if a.shadow != nil {
		sink = a.shadow
	}
	stats := a.renderer.Frame(sink)

	cells := 0
	if stats.Rendered {
		if a.shadow != nil {
			a.shadow.Present(a.presenter.MarkPixel)
			cells = a.presenter.FlushDirty(a.shadow.Front())
		} else {
			cells = a.presenter.DrawFrame(a.direct.Frame())
		}
		a.renderer.Monitor().AddPresented(cells)
	}

	text := ""
	if a.showStats.Load() || a.state.Paused() {
		text = StatusText(a.renderer.Monitor().GetSnapshot(), a.state.Paused())
	}
	drawText(a.screen, a.rows-statusRows, a.cols, a.status, text)

	a.screen.Show()
	return cells
}

// resize reallocates the frame to fit the terminal.
func (a *App) resize() {
	a.cols, a.rows = a.screen.Size()
	w, h := FrameSize(a.cols, a.rows, statusRows)
	if a.opts.DoubleBuffer {
		a.shadow = canvas.NewShadow(w, h)
		a.direct = nil
	} else {
		a.direct = canvas.NewDirect(w, h)
		a.shadow = nil
	}
	a.presenter = NewPresenter(a.screen, 0)
	a.screen.Clear()
}

// FrameSize returns the current frame size in pixels.
func (a *App) FrameSize() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return FrameSize(a.cols, a.rows, statusRows)
}

// Run polls events on a separate goroutine and renders every interval until
// ctx is cancelled or a quit key arrives.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			if a.HandleEvent(ev) {
				cancel()
				return
			}
		}
	}()

	err := engine.Run(ctx, interval, func() { a.Tick() })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Package game is the windowed frontend: it feeds keyboard input to the
// engine state and shows rendered frames through ebiten.
package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/canvas"
	"wolfcast/internal/config"
	"wolfcast/internal/engine"
)

// Bumper is told when a move command is blocked by a wall.
type Bumper interface {
	Bump()
}

// Game implements ebiten.Game around an engine.Renderer.
type Game struct {
	config   *config.Config
	state    *engine.State
	renderer *engine.Renderer
	bumper   Bumper

	// Exactly one of direct and shadow is set.
	direct *canvas.Direct
	shadow *canvas.Shadow
	view   *ebiten.Image

	loop *GameLoop

	mapPath       string
	lastStats     engine.FrameStats
	pendingUpload bool
	showStats     bool
}

// NewGame wires a renderer to the window. bumper may be nil.
func NewGame(cfg *config.Config, state *engine.State, renderer *engine.Renderer, bumper Bumper) *Game {
	w, h := cfg.GetScreenWidth(), cfg.GetScreenHeight()
	g := &Game{
		config:    cfg,
		state:     state,
		renderer:  renderer,
		bumper:    bumper,
		view:      ebiten.NewImage(w, h),
		mapPath:   cfg.ResolvePath(cfg.Map.File),
		showStats: cfg.Display.ShowStats,
	}
	if cfg.Graphics.DoubleBuffer {
		g.shadow = canvas.NewShadow(w, h)
	} else {
		g.direct = canvas.NewDirect(w, h)
	}
	g.loop = NewGameLoop(g)
	return g
}

// Update handles input and renders one frame.
func (g *Game) Update() error {
	return g.loop.Update()
}

// Draw shows the last rendered frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.loop.Draw(screen)
}

// Layout keeps the logical screen at the configured frame size; ebiten
// scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.loop.Layout(outsideWidth, outsideHeight)
}

// reloadMap swaps in the map file from disk, keeping the current map when
// the file is missing or malformed.
func (g *Game) reloadMap() {
	if g.mapPath == "" {
		log.Printf("Warning: no map file configured, nothing to reload")
		return
	}
	if err := g.state.ReloadMap(g.mapPath); err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	log.Printf("Reloaded map %s", g.mapPath)
}

package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the update and render cycle
type GameLoop struct {
	game         *Game
	inputHandler *InputHandler
	ui           *UISystem
	perf         perfState
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
		ui:           NewUISystem(game),
	}
}

// Update handles input and renders one frame per tick, so the frame rate
// and sprite animation follow the configured TPS rather than the display's
// refresh rate.
func (gl *GameLoop) Update() error {
	gl.inputHandler.HandleInput()
	gl.renderFrame()
	gl.maybeLogPerfDrop()
	return nil
}

// Draw uploads the latest frame, if any, and shows it with the overlay
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	gl.uploadFrame()
	screen.DrawImage(gl.game.view, nil)
	gl.ui.Draw(screen)
}

// renderFrame renders into the sink. A paused frame leaves the sink
// untouched; with double buffering only frames that changed some pixel
// are marked for upload.
func (gl *GameLoop) renderFrame() {
	g := gl.game
	if g.shadow != nil {
		g.lastStats = g.renderer.Frame(g.shadow)
		if !g.lastStats.Rendered {
			return
		}
		changed := g.shadow.Present(nil)
		g.renderer.Monitor().AddPresented(changed)
		if changed > 0 {
			g.pendingUpload = true
		}
		return
	}

	g.lastStats = g.renderer.Frame(g.direct)
	if g.lastStats.Rendered {
		w, h := g.direct.Size()
		g.renderer.Monitor().AddPresented(w * h)
		g.pendingUpload = true
	}
}

// uploadFrame copies the last rendered frame into the view image.
func (gl *GameLoop) uploadFrame() {
	g := gl.game
	if !g.pendingUpload {
		return
	}
	g.pendingUpload = false
	if g.shadow != nil {
		g.view.WritePixels(g.shadow.Front().Pix)
		return
	}
	g.view.WritePixels(g.direct.Frame().Pix)
}

// Layout returns the frame dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}

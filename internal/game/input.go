package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/camera"
	"wolfcast/internal/game/keytracker"
)

// Binding maps a set of keys to one camera command.
type Binding struct {
	Keys    []ebiten.Key
	Command camera.Command
}

// DefaultBindings accepts both QWERTY (WASD) and AZERTY (ZQSD) layouts;
// arrow keys move forward and back and rotate.
func DefaultBindings() []Binding {
	return []Binding{
		{[]ebiten.Key{ebiten.KeyW, ebiten.KeyZ, ebiten.KeyArrowUp}, camera.Forward},
		{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, camera.Backward},
		{[]ebiten.Key{ebiten.KeyA, ebiten.KeyQ}, camera.StrafeLeft},
		{[]ebiten.Key{ebiten.KeyD}, camera.StrafeRight},
		{[]ebiten.Key{ebiten.KeyArrowLeft}, camera.RotateLeft},
		{[]ebiten.Key{ebiten.KeyArrowRight}, camera.RotateRight},
	}
}

// InputHandler turns held keys into camera commands with key repeat
type InputHandler struct {
	game      *Game
	bindings  []Binding
	repeaters []*keytracker.Repeater
	toggles   []toggle
	pressed   func(ebiten.Key) bool
}

// toggle fires its action once per press of key.
type toggle struct {
	key     ebiten.Key
	tracker keytracker.KeyStateTracker
	action  func(*Game)
}

func defaultToggles() []toggle {
	return []toggle{
		{key: ebiten.KeyP, action: func(g *Game) { g.state.TogglePaused() }},
		{key: ebiten.KeyR, action: (*Game).reloadMap},
		{key: ebiten.KeyTab, action: func(g *Game) { g.showStats = !g.showStats }},
	}
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *Game) *InputHandler {
	ih := &InputHandler{
		game:     game,
		bindings: DefaultBindings(),
		toggles:  defaultToggles(),
		pressed:  ebiten.IsKeyPressed,
	}
	delay, interval := 1, 3
	if game != nil && game.config != nil {
		delay, interval = game.config.Movement.KeyRepeatDelay, game.config.Movement.KeyRepeatInterval
	}
	for range ih.bindings {
		ih.repeaters = append(ih.repeaters, keytracker.NewRepeater(delay, interval))
	}
	return ih
}

// HandleInput processes all input for the current tick
func (ih *InputHandler) HandleInput() {
	ih.handleToggles()
	for _, cmd := range ih.Commands() {
		motion := ih.game.state.Apply(cmd)
		if motion.Blocked() && ih.game.bumper != nil {
			ih.game.bumper.Bump()
		}
	}
}

// Commands returns the commands that fire this tick, in binding order.
func (ih *InputHandler) Commands() []camera.Command {
	var cmds []camera.Command
	for i, b := range ih.bindings {
		down := false
		for _, k := range b.Keys {
			if ih.pressed(k) {
				down = true
				break
			}
		}
		if ih.repeaters[i].Update(down) {
			cmds = append(cmds, b.Command)
		}
	}
	return cmds
}

func (ih *InputHandler) handleToggles() {
	for i := range ih.toggles {
		t := &ih.toggles[i]
		if t.tracker.JustPressed(ih.pressed(t.key)) {
			t.action(ih.game)
		}
	}
}

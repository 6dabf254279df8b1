package game

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/camera"
	"wolfcast/internal/canvas"
	"wolfcast/internal/config"
	"wolfcast/internal/engine"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/threading/monitoring"
	"wolfcast/internal/world"
)

type countingBumper struct{ bumps int }

func (b *countingBumper) Bump() { b.bumps++ }

func testGame(t *testing.T) (*Game, *countingBumper) {
	t.Helper()
	cfg := config.Default()
	m, err := world.NewMap(world.DefaultContent(), engine.BuiltinAtlas())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	state := engine.NewState(cfg.GetStartCamera(), m, cfg.GetSpeeds())
	bumper := &countingBumper{}
	return &Game{config: cfg, state: state, bumper: bumper}, bumper
}

func keys(down ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, d := range down {
			if d == k {
				return true
			}
		}
		return false
	}
}

func TestCommandsFollowBindings(t *testing.T) {
	tests := []struct {
		name string
		down []ebiten.Key
		want []camera.Command
	}{
		{"nothing", nil, nil},
		{"qwerty forward", []ebiten.Key{ebiten.KeyW}, []camera.Command{camera.Forward}},
		{"azerty forward", []ebiten.Key{ebiten.KeyZ}, []camera.Command{camera.Forward}},
		{"azerty strafe", []ebiten.Key{ebiten.KeyQ}, []camera.Command{camera.StrafeLeft}},
		{"two keys one binding", []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, []camera.Command{camera.Forward}},
		{"move and turn", []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowRight}, []camera.Command{camera.Backward, camera.RotateRight}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ih := NewInputHandler(nil)
			ih.pressed = keys(tc.down...)
			got := ih.Commands()
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestHeldKeyRepeats(t *testing.T) {
	g, _ := testGame(t)
	g.config.Movement.KeyRepeatDelay = 2
	g.config.Movement.KeyRepeatInterval = 2
	ih := NewInputHandler(g)
	ih.pressed = keys(ebiten.KeyD)

	fired := 0
	for i := 0; i < 7; i++ {
		fired += len(ih.Commands())
	}
	// Ticks 0, 2, 4 and 6.
	if fired != 4 {
		t.Errorf("held key fired %d times in 7 ticks, want 4", fired)
	}
}

func TestHandleInputMovesCameraAndBumps(t *testing.T) {
	g, bumper := testGame(t)
	ih := NewInputHandler(g)

	ih.pressed = keys(ebiten.KeyW)
	ih.HandleInput()
	if got := g.state.Camera().Position; got != mathutil.Vec(1.75, 1.5) {
		t.Errorf("camera at %v after one step forward", got)
	}
	if bumper.bumps != 0 {
		t.Errorf("free step bumped %d times", bumper.bumps)
	}

	// Back into the wall at x = 0: two free steps, then blocked.
	g.config.Movement.KeyRepeatDelay = 0
	g.config.Movement.KeyRepeatInterval = 1
	ih = NewInputHandler(g)
	ih.pressed = keys(ebiten.KeyS)
	for i := 0; i < 10; i++ {
		ih.HandleInput()
	}
	if x := g.state.Camera().Position.X; x < 1 {
		t.Errorf("camera walked into the wall: x = %g", x)
	}
	if bumper.bumps == 0 {
		t.Error("blocked step did not bump")
	}
}

func TestToggleFiresOncePerPress(t *testing.T) {
	g, _ := testGame(t)
	ih := NewInputHandler(g)

	// Held for three ticks, released, then pressed again.
	held := [][]ebiten.Key{
		{ebiten.KeyP, ebiten.KeyTab},
		{ebiten.KeyP, ebiten.KeyTab},
		{ebiten.KeyP},
		nil,
		{ebiten.KeyP},
	}
	var paused []bool
	for _, down := range held {
		ih.pressed = keys(down...)
		ih.HandleInput()
		paused = append(paused, g.state.Paused())
	}

	want := []bool{true, true, true, true, false}
	for i := range want {
		if paused[i] != want[i] {
			t.Fatalf("paused after each tick = %v, want %v", paused, want)
		}
	}
	if !g.showStats {
		t.Error("Tab held for two ticks should toggle stats exactly once")
	}
}

func TestUpdateRendersOneFramePerTick(t *testing.T) {
	g, _ := testGame(t)
	g.renderer = engine.NewRenderer(g.state, engine.Options{})
	g.direct = canvas.NewDirect(32, 20)
	g.loop = NewGameLoop(g)
	g.loop.inputHandler.pressed = keys()

	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	if got := g.renderer.Monitor().GetSnapshot().Frames; got != 3 {
		t.Errorf("rendered %d frames in 3 ticks, want 3", got)
	}
	if g.lastStats.Frame != 2 {
		t.Errorf("last frame index = %d, want 2", g.lastStats.Frame)
	}
	if !g.pendingUpload {
		t.Error("rendered frame not marked for upload")
	}

	g.state.SetPaused(true)
	g.pendingUpload = false
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.pendingUpload {
		t.Error("paused tick marked a frame for upload")
	}
}

func TestPerfStateLogsAfterSustainedSlowness(t *testing.T) {
	var p perfState
	reports := 0
	report := func() { reports++ }
	start := time.Unix(0, 0)

	p.observe(start, true, report)
	p.observe(start.Add(time.Second), true, report)
	if reports != 0 {
		t.Fatal("reported before the slowness lasted long enough")
	}
	p.observe(start.Add(perfLowFpsDuration), true, report)
	if reports != 1 {
		t.Fatalf("reports = %d, want 1", reports)
	}
	p.observe(start.Add(perfLowFpsDuration+time.Second), true, report)
	if reports != 1 {
		t.Error("reported again inside the log interval")
	}
	p.observe(start.Add(perfLowFpsDuration+perfLogInterval), true, report)
	if reports != 2 {
		t.Errorf("reports = %d, want 2", reports)
	}

	p.observe(start.Add(time.Hour), false, report)
	p.observe(start.Add(time.Hour+time.Second), true, report)
	if reports != 2 {
		t.Error("recovery should restart the slowness window")
	}
}

func TestStatsLines(t *testing.T) {
	lines := StatsLines(monitoring.Snapshot{
		LastFrame:    2500 * time.Microsecond,
		AverageFrame: 3 * time.Millisecond,
	})
	if len(lines) != 4 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "render 2.50ms" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "avg100 3.00ms" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"wolfcast/internal/audio"
	"wolfcast/internal/config"
	"wolfcast/internal/engine"
	"wolfcast/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v; using built-in defaults", err)
		cfg = config.Default()
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = eng.Renderer.WaitReady(ctx)
	cancel()
	if err != nil {
		log.Fatalf("waiting for textures: %v", err)
	}

	var bumper game.Bumper
	if cfg.Audio.Enabled {
		b := audio.NewBumper(cfg.Audio.BumpFrequency, cfg.GetBumpDuration())
		if err := b.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		} else {
			defer b.Cleanup()
			bumper = b
		}
	}

	// Set window properties from config
	scale := max(cfg.Display.Scale, 1)
	ebiten.SetWindowSize(cfg.GetScreenWidth()*scale, cfg.GetScreenHeight()*scale)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	ebiten.SetTPS(cfg.Display.FPS)

	g := game.NewGame(cfg, eng.State, eng.Renderer, bumper)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

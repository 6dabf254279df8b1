// Command termcast runs the raycaster inside a terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"wolfcast/internal/audio"
	"wolfcast/internal/config"
	"wolfcast/internal/engine"
	"wolfcast/internal/terminal"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	logPath := flag.String("log", "", "write warnings to this file instead of discarding them")
	flag.Parse()

	// The screen owns the terminal, so log output goes to a file or nowhere.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("opening log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = eng.Renderer.WaitReady(waitCtx)
	cancel()
	if err != nil {
		log.Fatalf("waiting for textures: %v", err)
	}

	var bumper terminal.Bumper
	if cfg.Audio.Enabled {
		b := audio.NewBumper(cfg.Audio.BumpFrequency, cfg.GetBumpDuration())
		if err := b.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		} else {
			defer b.Cleanup()
			bumper = b
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	screen.HideCursor()

	if *logPath == "" {
		log.SetOutput(io.Discard)
	}

	app := terminal.NewApp(screen, eng.State, eng.Renderer, terminal.Options{
		Bumper:       bumper,
		MapPath:      cfg.ResolvePath(cfg.Map.File),
		Floor:        cfg.GetFloorColor(),
		DoubleBuffer: cfg.Graphics.DoubleBuffer,
		ShowStats:    cfg.Display.ShowStats,
	})
	err = app.Run(ctx, cfg.GetTickInterval())
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}


package engine

import (
	"wolfcast/internal/config"
	"wolfcast/internal/threading/core"
	"wolfcast/internal/threading/monitoring"
)

// Engine bundles the state and renderer built from a configuration.
type Engine struct {
	State    *State
	Renderer *Renderer
	pool     *core.WorkerPool
}

// New loads the world and textures named in cfg and builds a renderer for
// them. Textures keep loading in the background; call Renderer.WaitReady
// before the first frame. Close releases the worker pool.
func New(cfg *config.Config) (*Engine, error) {
	atlas := LoadAtlas(cfg)
	m, err := LoadWorld(cfg, atlas)
	if err != nil {
		return nil, err
	}

	state := NewState(cfg.GetStartCamera(), m, cfg.GetSpeeds())
	state.SetPaused(cfg.Display.StartPaused)

	var pool *core.WorkerPool
	if cfg.Graphics.Workers >= 0 {
		pool = core.NewStartedPool(cfg.Graphics.Workers)
	}

	renderer := NewRenderer(state, Options{
		Ceiling: cfg.GetCeilingColor(),
		Floor:   cfg.GetFloorColor(),
		Pool:    pool,
		Monitor: monitoring.NewPerformanceMonitor(float64(cfg.Display.FPS)),
		Sprites: LoadSprites(cfg),
	})
	return &Engine{State: state, Renderer: renderer, pool: pool}, nil
}

// Close stops the worker pool.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Stop()
	}
}

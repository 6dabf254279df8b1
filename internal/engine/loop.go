package engine

import (
	"context"
	"time"

	"wolfcast/internal/texture"
)

// WaitReady blocks until every texture the renderer needs has loaded or ctx
// is done.
func (r *Renderer) WaitReady(ctx context.Context) error {
	return texture.WaitAll(ctx, r.Textures()...)
}

// Run calls tick every interval until ctx is cancelled and returns ctx.Err().
// A tick that overruns the interval delays the next one; missed ticks are
// dropped rather than queued.
func Run(ctx context.Context, interval time.Duration, tick func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick()
		}
	}
}

package game

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsDuration = 3 * time.Second
	perfLogInterval    = 3 * time.Second
)

// perfState remembers when rendering started falling behind.
type perfState struct {
	lowSince time.Time
	lastLog  time.Time
}

// maybeLogPerfDrop logs a snapshot once rendering has stayed slower than
// the configured frame rate for a while, then at most every perfLogInterval.
func (gl *GameLoop) maybeLogPerfDrop() {
	gl.perf.observe(time.Now(), len(gl.game.renderer.Monitor().CheckPerformanceAlerts()) > 0, gl.logPerfSnapshot)
}

func (p *perfState) observe(now time.Time, slow bool, report func()) {
	if !slow {
		p.lowSince = time.Time{}
		p.lastLog = time.Time{}
		return
	}
	if p.lowSince.IsZero() {
		p.lowSince = now
		return
	}
	if now.Sub(p.lowSince) < perfLowFpsDuration {
		return
	}
	if !p.lastLog.IsZero() && now.Sub(p.lastLog) < perfLogInterval {
		return
	}
	p.lastLog = now
	report()
}

func (gl *GameLoop) logPerfSnapshot() {
	stats := gl.game.renderer.Monitor().GetDetailedStats()
	w, h := gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()

	var b strings.Builder
	fmt.Fprintf(&b, "Warning: rendering below target: fps=%.1f tps=%.1f frame=%dx%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), w, h)
	fmt.Fprintf(&b, " avg=%.2fms walls=%.2fms sprites=%.2fms",
		getPerfFloat(stats, "avg_frame_time_ms"),
		getPerfFloat(stats, "raycast_time_ms"),
		getPerfFloat(stats, "sprite_time_ms"))
	fmt.Fprintf(&b, " goroutines=%d gc=%d", getPerfInt(stats, "goroutines"), getPerfUint(stats, "gc_cycles"))
	log.Print(b.String())
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if v, ok := stats[key].(float64); ok {
		return v
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if v, ok := stats[key].(int); ok {
		return v
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	switch v := stats[key].(type) {
	case uint64:
		return v
	case uint32:
		return uint64(v)
	}
	return 0
}

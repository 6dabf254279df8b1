// Package monitoring records render timings: the last frame, a rolling
// average over recent frames and per-phase durations.
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// HistorySize is the number of frames the rolling average covers.
const HistorySize = 100

// Phase names accepted by ProfiledFunction.
const (
	PhaseRaycast = "raycast"
	PhaseSprite  = "sprite_render"
)

// PerformanceMonitor tracks render timings. It is safe for concurrent use.
type PerformanceMonitor struct {
	frameCount    atomic.Uint64
	skippedFrames atomic.Uint64
	frameTime     atomic.Uint64 // nanoseconds, last frame

	raycastTime      atomic.Uint64
	spriteRenderTime atomic.Uint64
	pixelsPresented  atomic.Uint64

	mutex     sync.RWMutex
	history   [HistorySize]time.Duration
	next      int
	filled    int
	total     time.Duration
	startTime time.Time

	targetFPS float64
}

// NewPerformanceMonitor creates a monitor that alerts when the frame rate
// drops below targetFPS. Zero disables the alert.
func NewPerformanceMonitor(targetFPS float64) *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
		targetFPS: targetFPS,
	}
}

// FrameTimer measures one frame.
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing.
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame records the frame and returns its duration.
func (ft *FrameTimer) EndFrame() time.Duration {
	d := time.Since(ft.startTime)
	ft.monitor.RecordFrame(d)
	return d
}

// RecordFrame adds a frame of duration d to the statistics.
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	pm.frameCount.Add(1)

	pm.mutex.Lock()
	if pm.filled == HistorySize {
		pm.total -= pm.history[pm.next]
	} else {
		pm.filled++
	}
	pm.history[pm.next] = d
	pm.total += d
	pm.next = (pm.next + 1) % HistorySize
	pm.mutex.Unlock()
}

// SkipFrame counts a tick that rendered nothing, such as while paused.
func (pm *PerformanceMonitor) SkipFrame() {
	pm.skippedFrames.Add(1)
}

// AddPresented counts pixels pushed to the display by a presenter.
func (pm *PerformanceMonitor) AddPresented(pixels int) {
	pm.pixelsPresented.Add(uint64(pixels))
}

// ProfiledFunction runs fn and stores its duration under name.
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case PhaseRaycast:
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case PhaseSprite:
		pm.spriteRenderTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// LastFrame returns the duration of the most recent frame.
func (pm *PerformanceMonitor) LastFrame() time.Duration {
	return time.Duration(pm.frameTime.Load())
}

// AverageFrame returns the mean duration of the last HistorySize frames.
func (pm *PerformanceMonitor) AverageFrame() time.Duration {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	if pm.filled == 0 {
		return 0
	}
	return pm.total / time.Duration(pm.filled)
}

// Snapshot is a consistent copy of the counters.
type Snapshot struct {
	Frames          uint64
	SkippedFrames   uint64
	LastFrame       time.Duration
	AverageFrame    time.Duration
	Raycast         time.Duration
	SpriteRender    time.Duration
	PixelsPresented uint64
	FramesPerSecond float64
}

// GetSnapshot returns the current counters.
func (pm *PerformanceMonitor) GetSnapshot() Snapshot {
	s := Snapshot{
		Frames:          pm.frameCount.Load(),
		SkippedFrames:   pm.skippedFrames.Load(),
		LastFrame:       pm.LastFrame(),
		AverageFrame:    pm.AverageFrame(),
		Raycast:         time.Duration(pm.raycastTime.Load()),
		SpriteRender:    time.Duration(pm.spriteRenderTime.Load()),
		PixelsPresented: pm.pixelsPresented.Load(),
	}
	if s.AverageFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AverageFrame)
	}
	return s
}

// GetDetailedStats returns the counters plus runtime figures, keyed for
// logging.
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	s := pm.GetSnapshot()

	pm.mutex.RLock()
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":    uptime.Seconds(),
		"frame_count":       s.Frames,
		"skipped_frames":    s.SkippedFrames,
		"last_frame_ms":     float64(s.LastFrame) / float64(time.Millisecond),
		"avg_frame_time_ms": float64(s.AverageFrame) / float64(time.Millisecond),
		"raycast_time_ms":   float64(s.Raycast) / float64(time.Millisecond),
		"sprite_time_ms":    float64(s.SpriteRender) / float64(time.Millisecond),
		"pixels_presented":  s.PixelsPresented,
		"render_fps":        s.FramesPerSecond,
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"gc_cycles":         memStats.NumGC,
		"cpu_cores":         runtime.NumCPU(),
		"goroutines":        runtime.NumGoroutine(),
	}
}

// PerformanceAlert is a performance warning.
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports when the average frame takes longer than
// the target frame rate allows.
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	if pm.targetFPS <= 0 {
		return alerts
	}

	avg := pm.AverageFrame()
	if avg <= 0 {
		return alerts
	}
	fps := float64(time.Second) / float64(avg)
	if fps < pm.targetFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_render",
			Message:   "Render time exceeds the frame budget",
			Value:     fps,
			Threshold: pm.targetFPS,
			Timestamp: time.Now(),
		})
	}
	return alerts
}

// Reset clears all counters and the frame history.
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.skippedFrames.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.pixelsPresented.Store(0)

	pm.mutex.Lock()
	pm.history = [HistorySize]time.Duration{}
	pm.next = 0
	pm.filled = 0
	pm.total = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

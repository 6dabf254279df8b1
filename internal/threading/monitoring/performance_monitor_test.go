package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor(60)

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}

	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}

	if pm.AverageFrame() != 0 || pm.LastFrame() != 0 {
		t.Error("Fresh monitor should report zero timings")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor(0)

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond)
	d := frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	if d < 10*time.Millisecond {
		t.Errorf("Expected frame time to be at least 10ms, got %v", d)
	}
	if pm.LastFrame() != d {
		t.Errorf("LastFrame = %v, want %v", pm.LastFrame(), d)
	}
}

func TestAverageCoversLastHundredFrames(t *testing.T) {
	pm := NewPerformanceMonitor(0)

	pm.RecordFrame(2 * time.Millisecond)
	pm.RecordFrame(4 * time.Millisecond)
	if avg := pm.AverageFrame(); avg != 3*time.Millisecond {
		t.Errorf("Expected average 3ms, got %v", avg)
	}

	// 100 slow frames push the fast ones out of the window.
	for i := 0; i < HistorySize; i++ {
		pm.RecordFrame(10 * time.Millisecond)
	}
	if avg := pm.AverageFrame(); avg != 10*time.Millisecond {
		t.Errorf("Expected average 10ms, got %v", avg)
	}

	pm.RecordFrame(110 * time.Millisecond)
	if avg := pm.AverageFrame(); avg != 11*time.Millisecond {
		t.Errorf("Expected average 11ms, got %v", avg)
	}
	if pm.LastFrame() != 110*time.Millisecond {
		t.Errorf("Expected last frame 110ms, got %v", pm.LastFrame())
	}
}

func TestProfiledFunction(t *testing.T) {
	pm := NewPerformanceMonitor(0)

	called := false
	d := pm.ProfiledFunction(PhaseRaycast, func() {
		called = true
		time.Sleep(time.Millisecond)
	})
	if !called {
		t.Fatal("ProfiledFunction did not run fn")
	}
	pm.ProfiledFunction(PhaseSprite, func() {})
	pm.ProfiledFunction("unknown", func() {})

	s := pm.GetSnapshot()
	if s.Raycast != d {
		t.Errorf("raycast time = %v, want %v", s.Raycast, d)
	}
	if s.SpriteRender > s.Raycast {
		t.Errorf("empty sprite phase took longer than sleeping raycast: %v", s.SpriteRender)
	}
}

func TestSnapshotAndReset(t *testing.T) {
	pm := NewPerformanceMonitor(0)
	pm.RecordFrame(20 * time.Millisecond)
	pm.SkipFrame()
	pm.SkipFrame()
	pm.AddPresented(640)

	s := pm.GetSnapshot()
	if s.Frames != 1 || s.SkippedFrames != 2 || s.PixelsPresented != 640 {
		t.Errorf("unexpected snapshot %+v", s)
	}
	if s.FramesPerSecond != 50 {
		t.Errorf("Expected 50 fps, got %g", s.FramesPerSecond)
	}

	stats := pm.GetDetailedStats()
	for _, key := range []string{"frame_count", "avg_frame_time_ms", "render_fps", "goroutines"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("detailed stats missing %q", key)
		}
	}

	pm.Reset()
	s = pm.GetSnapshot()
	if s != (Snapshot{}) {
		t.Errorf("Expected zero snapshot after reset, got %+v", s)
	}
}

func TestPerformanceAlerts(t *testing.T) {
	pm := NewPerformanceMonitor(60)

	if alerts := pm.CheckPerformanceAlerts(); len(alerts) != 0 {
		t.Errorf("No frames yet, got alerts %v", alerts)
	}

	pm.RecordFrame(5 * time.Millisecond)
	if alerts := pm.CheckPerformanceAlerts(); len(alerts) != 0 {
		t.Errorf("Fast frames raised alerts %v", alerts)
	}

	pm.Reset()
	pm.RecordFrame(50 * time.Millisecond)
	alerts := pm.CheckPerformanceAlerts()
	if len(alerts) != 1 || alerts[0].Type != "slow_render" {
		t.Fatalf("Expected one slow_render alert, got %v", alerts)
	}
	if alerts[0].Value != 20 {
		t.Errorf("Expected alert value 20 fps, got %g", alerts[0].Value)
	}

	if alerts := NewPerformanceMonitor(0).CheckPerformanceAlerts(); len(alerts) != 0 {
		t.Error("Zero target should disable alerts")
	}
}

func TestPerformanceMonitorConcurrency(t *testing.T) {
	pm := NewPerformanceMonitor(0)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				pm.StartFrame().EndFrame()
				_ = pm.GetSnapshot()
			}
		}()
	}
	wg.Wait()

	if pm.frameCount.Load() != 500 {
		t.Errorf("Expected 500 frames, got %d", pm.frameCount.Load())
	}
}

func BenchmarkPerformanceMonitorFrameTiming(b *testing.B) {
	pm := NewPerformanceMonitor(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.StartFrame().EndFrame()
	}
}

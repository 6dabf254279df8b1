// Package audio plays the short tone heard when movement is blocked by a
// wall. Audio is optional: every method is a no-op until Initialize succeeds.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Bumper plays bump tones through the system speaker.
type Bumper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	freq        float64
	duration    time.Duration
	cooldown    time.Duration
	last        time.Time
	initialized bool
}

// NewBumper returns a bumper playing freq Hz for duration. Repeated bumps
// closer together than the tone length are dropped.
func NewBumper(freq float64, duration time.Duration) *Bumper {
	return &Bumper{
		mixer:    &beep.Mixer{},
		freq:     freq,
		duration: duration,
		cooldown: duration,
	}
}

// Initialize opens the speaker. It fails on machines without an audio
// device; callers log and carry on silently.
func (b *Bumper) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Bump plays one tone.
func (b *Bumper) Bump() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	now := time.Now()
	if now.Sub(b.last) < b.cooldown {
		return
	}
	b.last = now

	tone, err := Tone(sampleRate, b.freq, b.duration)
	if err != nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(tone)
	speaker.Unlock()
}

// Cleanup silences pending tones.
func (b *Bumper) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Tone is a sine of freq Hz lasting d, faded in and out to avoid clicks.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	n := sr.N(d)
	return &envelope{
		Streamer: beep.Take(n, sine),
		total:    n,
		fade:     max(1, n/8),
		gain:     0.3,
	}, nil
}

// envelope applies a linear attack and release to a finite streamer.
type envelope struct {
	beep.Streamer
	total int
	fade  int
	gain  float64
	pos   int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain
		if e.pos < e.fade {
			g *= float64(e.pos) / float64(e.fade)
		} else if rest := e.total - e.pos; rest < e.fade {
			g *= float64(rest) / float64(e.fade)
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

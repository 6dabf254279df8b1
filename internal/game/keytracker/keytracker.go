// Package keytracker turns per-tick key states into discrete key events:
// single presses and auto-repeat while a key is held.
package keytracker

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// JustPressed returns true if the key was not pressed last tick but is
// pressed now.
func (k *KeyStateTracker) JustPressed(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Repeater fires on the tick a key goes down, then once every Interval ticks
// after an initial Delay while it stays down.
type Repeater struct {
	Delay    int
	Interval int
	held     int
}

// NewRepeater returns a repeater with the given delay and interval, in ticks.
func NewRepeater(delay, interval int) *Repeater {
	return &Repeater{Delay: delay, Interval: interval}
}

// Update advances one tick with the current key state and reports whether
// the key action should fire this tick.
func (r *Repeater) Update(pressed bool) bool {
	if !pressed {
		r.held = 0
		return false
	}
	r.held++
	d := r.held - 1 // ticks since the key went down
	if d == 0 {
		return true
	}
	interval := max(r.Interval, 1)
	return d >= r.Delay && (d-r.Delay)%interval == 0
}

// Held reports for how many consecutive ticks the key has been down.
func (r *Repeater) Held() int {
	return r.held
}

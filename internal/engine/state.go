// Package engine ties the camera, the map and the raycaster together: it
// holds the latest world state, renders frames from it and drives the
// fixed-rate loop.
package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"wolfcast/internal/camera"
	"wolfcast/internal/world"
)

// State is the latest camera, map and pause flag. Each value is replaced as
// a whole, so a reader always sees a consistent camera and a consistent map.
// Input goroutines write through Apply while the render goroutine reads.
type State struct {
	cam    atomic.Pointer[camera.Camera]
	world  atomic.Pointer[world.Map]
	paused atomic.Bool

	// mu serialises read-modify-write updates of the camera.
	mu     sync.Mutex
	speeds camera.Speeds
}

// NewState returns a state showing m from cam.
func NewState(cam camera.Camera, m *world.Map, speeds camera.Speeds) *State {
	s := &State{speeds: speeds}
	s.cam.Store(&cam)
	s.world.Store(m)
	return s
}

// Camera returns the latest camera.
func (s *State) Camera() camera.Camera {
	return *s.cam.Load()
}

// Map returns the latest map.
func (s *State) Map() *world.Map {
	return s.world.Load()
}

// Snapshot returns the camera and map a frame should be rendered from.
func (s *State) Snapshot() (camera.Camera, *world.Map) {
	return s.Camera(), s.Map()
}

// SetCamera replaces the camera.
func (s *State) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	s.cam.Store(&cam)
	s.mu.Unlock()
}

// SetMap replaces the map.
func (s *State) SetMap(m *world.Map) {
	s.world.Store(m)
}

// Apply moves the camera by one command against the current map and returns
// what happened. Blocked axes leave the camera where it was on that axis.
func (s *State) Apply(cmd camera.Command) camera.Motion {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, motion := s.cam.Load().Apply(cmd, s.world.Load(), s.speeds)
	s.cam.Store(&next)
	return motion
}

// Paused reports whether rendering is paused.
func (s *State) Paused() bool {
	return s.paused.Load()
}

// SetPaused sets the pause flag.
func (s *State) SetPaused(p bool) {
	s.paused.Store(p)
}

// TogglePaused flips the pause flag and returns the new value.
func (s *State) TogglePaused() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// ReloadMap parses the map file at path with the current atlas and swaps it
// in. On error the current map is kept.
func (s *State) ReloadMap(path string) error {
	m, err := world.LoadMap(path, s.Map().Atlas())
	if err != nil {
		return fmt.Errorf("reloading map: %w", err)
	}

	cam := s.Camera()
	x, y := cam.Position.Cell()
	if !m.Walkable(x, y) {
		log.Printf("Warning: camera at %v is inside a wall of the reloaded map", cam.Position)
	}
	s.SetMap(m)
	return nil
}

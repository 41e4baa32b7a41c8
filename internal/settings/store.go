// Package settings owns the canonical parameter state and the
// reconciliation logic that decides how an edit propagates: not at all, as
// a cheap in-place color update, or as a full regeneration with a fresh
// seed. It also carries the nonlinear slider mappings used by parameter
// surfaces.
package settings

import (
	"sync"

	"Terrascape/internal/particles"
	"Terrascape/internal/sky"
	"Terrascape/internal/terrain"
)

// Store holds the last-applied settings for all three categories. It is the
// single source of truth: readers always see a complete applied snapshot,
// never an in-flight edit.
type Store struct {
	mu        sync.Mutex
	terrain   terrain.Settings
	sky       sky.Settings
	particles particles.Settings
}

// NewStore starts from the package defaults.
func NewStore() *Store {
	return &Store{
		terrain:   terrain.DefaultSettings(),
		sky:       sky.DefaultSettings(),
		particles: particles.DefaultSettings(),
	}
}

// Terrain returns the last-applied terrain settings.
func (s *Store) Terrain() terrain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terrain
}

// SetTerrain records newly applied terrain settings.
func (s *Store) SetTerrain(t terrain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terrain = t
}

// Sky returns the last-applied sky settings.
func (s *Store) Sky() sky.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sky
}

// SetSky records newly applied sky settings.
func (s *Store) SetSky(v sky.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sky = v
}

// Particles returns the last-applied particle settings.
func (s *Store) Particles() particles.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.particles
}

// SetParticles records newly applied particle settings.
func (s *Store) SetParticles(p particles.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.particles = p
}

// Snapshot captures all three categories at once, used for custom-identity
// checkpoints.
type Snapshot struct {
	Terrain   terrain.Settings
	Sky       sky.Settings
	Particles particles.Settings
}

// Snapshot returns a consistent copy of everything.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Terrain: s.terrain, Sky: s.sky, Particles: s.particles}
}

// Restore replaces all three categories from a snapshot.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terrain = snap.Terrain
	s.sky = snap.Sky
	s.particles = snap.Particles
}

// Package engine wires the generation subsystems together and exposes the
// host-facing API: settings get/set, explicit regeneration, presets, and
// the per-frame step.
package engine

import (
	"fmt"
	"math/rand"
	"runtime"

	"Terrascape/internal/logger"
	"Terrascape/internal/particles"
	"Terrascape/internal/presets"
	"Terrascape/internal/settings"
	"Terrascape/internal/sky"
	"Terrascape/internal/terrain"

	"github.com/alitto/pond/v2"
	mgl "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Engine owns the parameter store, the reconciler, and the three
// generation subsystems. All methods are called from the host control flow;
// the engine itself only parallelizes inside kernel dispatches.
type Engine struct {
	store      *settings.Store
	reconciler *settings.Reconciler
	sliders    *settings.SliderRegistry

	terrain   *terrain.Renderer
	sky       *sky.Renderer
	particles *particles.System

	pool   pond.Pool
	camPos mgl.Vec3
}

// New initializes logging, builds the worker pool, and starts the engine
// on the default preset with a freshly randomized terrain seed.
func New() *Engine {
	return NewWithViewRadius(terrain.ViewRadius)
}

// NewWithViewRadius is New with a custom chunk streaming radius, for hosts
// that want a shorter view distance.
func NewWithViewRadius(viewRadius int32) *Engine {
	logger.Init()
	logger.Log.Info("Terrascape initializing...")

	pool := pond.NewPool(runtime.NumCPU())
	store := settings.NewStore()

	preset := presets.Default()
	preset.Terrain.Seed = rand.Uint32()
	store.SetTerrain(preset.Terrain)
	store.SetSky(preset.Sky)
	store.SetParticles(preset.Particles)

	// The reconciler resolves the active identity from the store, so it
	// comes up after the startup preset lands there.
	e := &Engine{
		store:      store,
		reconciler: settings.NewReconciler(store, nil),
		sliders:    settings.NewSliderRegistry(),
		pool:       pool,
		camPos:     mgl.Vec3{0, 300, 0},
	}

	e.terrain = terrain.NewRendererWithRadius(preset.Terrain, pool, viewRadius)
	e.sky = sky.NewRenderer()
	e.sky.UpdateSettings(preset.Sky)
	e.sky.CheckRegeneration()
	e.particles = particles.NewSystem(pool)
	e.particles.UpdateSettings(preset.Particles)

	logger.Log.Info("Applied startup preset",
		zap.String("id", presets.DefaultPresetID),
		zap.Uint32("seed", preset.Terrain.Seed))
	return e
}

// SetCameraPosition moves the viewpoint the subsystems stream around.
func (e *Engine) SetCameraPosition(pos mgl.Vec3) {
	e.camPos = pos
}

// CameraPosition returns the current viewpoint.
func (e *Engine) CameraPosition() mgl.Vec3 {
	return e.camPos
}

// Step advances one frame: pending terrain regeneration first, then chunk
// streaming around the camera, then the sky clock and the particle
// simulation. Every dispatch completes before the next begins.
func (e *Engine) Step(dt float32) {
	e.terrain.CheckRegeneration(e.camPos)
	e.terrain.Update(e.camPos)
	e.sky.CheckRegeneration()
	e.sky.Update(dt)
	e.particles.Step(dt, e.camPos)
}

// TerrainSettings returns the last-applied terrain settings.
func (e *Engine) TerrainSettings() terrain.Settings {
	return e.store.Terrain()
}

// SetTerrainSettings reconciles a terrain edit. Generation-level changes
// reseed and queue a full regeneration; color-level changes update shading
// in place; no-ops do nothing.
func (e *Engine) SetTerrainSettings(next terrain.Settings) settings.ChangeCategory {
	outcome := e.reconciler.ApplyTerrain(next)
	switch outcome.Category {
	case settings.ChangeGeneration:
		e.terrain.UpdateSettings(outcome.Applied)
	case settings.ChangeColorsOnly:
		e.terrain.UpdateColors(outcome.Applied)
	}
	return outcome.Category
}

// SkySettings returns the last-applied sky settings.
func (e *Engine) SkySettings() sky.Settings {
	return e.store.Sky()
}

// SetSkySettings reconciles a sky edit; count changes reseed placement.
func (e *Engine) SetSkySettings(next sky.Settings) {
	outcome := e.reconciler.ApplySky(next)
	e.sky.UpdateSettings(outcome.Applied)
}

// ParticleSettings returns the last-applied particle settings.
func (e *Engine) ParticleSettings() particles.Settings {
	return e.store.Particles()
}

// SetParticleSettings applies a particle edit in place.
func (e *Engine) SetParticleSettings(next particles.Settings) {
	e.reconciler.ApplyParticles(next)
	e.particles.UpdateSettings(next)
}

// RegenerateTerrain queues a full heightfield rebuild under the current
// settings. Regeneration is always this explicit call; setters never
// trigger it on their own beyond the reconciler's classification.
func (e *Engine) RegenerateTerrain() {
	e.terrain.QueueRegeneration()
}

// DefaultTerrainSettings returns the built-in terrain defaults.
func (e *Engine) DefaultTerrainSettings() terrain.Settings {
	return terrain.DefaultSettings()
}

// DefaultSkySettings returns the built-in sky defaults.
func (e *Engine) DefaultSkySettings() sky.Settings {
	return sky.DefaultSettings()
}

// DefaultParticleSettings returns the built-in particle defaults.
func (e *Engine) DefaultParticleSettings() particles.Settings {
	return particles.DefaultSettings()
}

// PresetList returns id and display name for every preset.
func (e *Engine) PresetList() []presets.Info {
	return presets.List()
}

// DefaultPresetID returns the preset applied at startup.
func (e *Engine) DefaultPresetID() string {
	return presets.DefaultPresetID
}

// Preset returns a full preset bundle by id.
func (e *Engine) Preset(id string) (presets.FullPreset, error) {
	p, ok := presets.ByID(id)
	if !ok {
		return presets.FullPreset{}, fmt.Errorf("unknown preset: %s", id)
	}
	return p, nil
}

// ApplyPreset switches every category to a named preset. The terrain seed
// is randomized so each application yields a fresh landscape.
func (e *Engine) ApplyPreset(id string) error {
	p, ok := presets.ByID(id)
	if !ok {
		return fmt.Errorf("unknown preset: %s", id)
	}
	e.SetTerrainSettings(p.Terrain)
	e.SetSkySettings(p.Sky)
	e.SetParticleSettings(p.Particles)
	logger.Log.Info("Applied preset", zap.String("id", id), zap.String("name", p.Name))
	return nil
}

// ThemeIdentity returns the active color theme id, or "custom".
func (e *Engine) ThemeIdentity() string {
	return e.reconciler.ThemeIdentity()
}

// SkyIdentity returns the active sky preset id, or "custom".
func (e *Engine) SkyIdentity() string {
	return e.reconciler.SkyIdentity()
}

// RestoreCustom reapplies the checkpointed custom settings, if any.
func (e *Engine) RestoreCustom() bool {
	outcome, ok := e.reconciler.RestoreCustom()
	if !ok {
		return false
	}
	switch outcome.Category {
	case settings.ChangeGeneration:
		e.terrain.UpdateSettings(outcome.Applied)
	case settings.ChangeColorsOnly:
		e.terrain.UpdateColors(outcome.Applied)
	}
	e.sky.UpdateSettings(e.store.Sky())
	e.particles.UpdateSettings(e.store.Particles())
	return true
}

// Sliders exposes the nonlinear slider mappings for parameter surfaces.
func (e *Engine) Sliders() *settings.SliderRegistry {
	return e.sliders
}

// Terrain exposes the chunk renderer for hosts that draw.
func (e *Engine) Terrain() *terrain.Renderer {
	return e.terrain
}

// Sky exposes the sky renderer.
func (e *Engine) Sky() *sky.Renderer {
	return e.sky
}

// Particles exposes the particle system.
func (e *Engine) Particles() *particles.System {
	return e.particles
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.pool.StopAndWait()
	logger.Sync()
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"Terrascape/internal/camera"
	"Terrascape/internal/engine"
	"Terrascape/internal/logger"
	"Terrascape/internal/particles"
	"Terrascape/internal/sky"
	"Terrascape/internal/terrain"

	mgl "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// WorldConfig is an optional on-disk settings bundle that overrides the
// startup preset.
type WorldConfig struct {
	Preset    string              `json:"preset,omitempty"`
	Terrain   *terrain.Settings   `json:"terrain,omitempty"`
	Sky       *sky.Settings       `json:"sky,omitempty"`
	Particles *particles.Settings `json:"particles,omitempty"`
}

func main() {
	frames := flag.Int("frames", 600, "number of frames to simulate")
	preset := flag.String("preset", "", "preset id to apply at startup")
	flag.Parse()

	fmt.Println("Starting world...")

	eng := engine.New()
	defer eng.Close()

	if cfg := loadWorldConfig(); cfg != nil {
		applyWorldConfig(eng, cfg)
	}
	if *preset != "" {
		if err := eng.ApplyPreset(*preset); err != nil {
			logger.Log.Error("Could not apply preset", zap.String("id", *preset), zap.Error(err))
		}
	}

	runLoop(eng, *frames)
}

func runLoop(eng *engine.Engine, frames int) {
	const dt = float32(1.0 / 60.0)

	// Fly a slow arc over the terrain so chunk streaming gets exercised.
	cam := camera.New(16.0 / 9.0)
	cam.LookAt(mgl.Vec3{1000, 200, 600})
	for frame := 0; frame < frames; frame++ {
		cam.Move(1, 0, 0, dt)
		eng.SetCameraPosition(cam.Position)
		eng.Step(dt)

		if frame == frames/2 {
			// Midway through, turn on snowfall to drive the simulator.
			ps := eng.ParticleSettings()
			ps.ParticleType = particles.TypeSnow
			ps.Density = 0.2
			ps.WindX = 3
			eng.SetParticleSettings(ps)
		}
	}

	planes := cam.FrustumPlanes()
	visible := 0
	heightScale := eng.TerrainSettings().HeightScale
	for _, coord := range eng.Terrain().ResidentChunks() {
		if coord.VisibleInFrustum(&planes, heightScale) {
			visible++
		}
	}

	logger.Log.Info("Simulation finished",
		zap.Int("frames", frames),
		zap.Int("chunks", len(eng.Terrain().ResidentChunks())),
		zap.Int("visibleChunks", visible),
		zap.Int("skyObjects", len(eng.Sky().Objects())),
		zap.Uint32("particles", eng.Particles().ActiveCount()),
		zap.String("theme", eng.ThemeIdentity()))
}

func applyWorldConfig(eng *engine.Engine, cfg *WorldConfig) {
	if cfg.Preset != "" {
		if err := eng.ApplyPreset(cfg.Preset); err != nil {
			logger.Log.Error("Could not apply configured preset", zap.String("id", cfg.Preset), zap.Error(err))
		}
	}
	if cfg.Terrain != nil {
		eng.SetTerrainSettings(*cfg.Terrain)
	}
	if cfg.Sky != nil {
		eng.SetSkySettings(*cfg.Sky)
	}
	if cfg.Particles != nil {
		eng.SetParticleSettings(*cfg.Particles)
	}
}

func loadWorldConfig() *WorldConfig {
	path := findAsset("world.json")
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Error("Could not read world config", zap.String("path", path), zap.Error(err))
		return nil
	}

	var cfg WorldConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Log.Error("Could not parse world config", zap.String("path", path), zap.Error(err))
		return nil
	}
	logger.Log.Info("Loaded world config", zap.String("path", path))
	return &cfg
}

func findAsset(name string) string {
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	paths := []string{
		filepath.Join(exeDir, "assets", name),
		filepath.Join(exeDir, name),
		filepath.Join("assets", name),
		name,
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Package terrain generates and shades the procedural heightfield: per-chunk
// height synthesis from seeded noise, a fixed pool of chunk slots streamed
// around the camera, and per-vertex shading (normals, color bands, lighting,
// fog).
package terrain

import (
	"Terrascape/internal/logger"

	"go.uber.org/zap"
)

// Default rendering constants. Presets may override these (e.g. preset
// ambient is 0.35 while the default settings use 0.25).
const (
	DefaultFogStart    float32 = 800.0
	DefaultFogDistance float32 = 3000.0
)

// Pattern identifies one of the height composition algorithms.
type Pattern uint32

const (
	PatternBase     Pattern = 0 // warped fractal sum
	PatternRidged   Pattern = 1 // folded ridges, sharpened peaks
	PatternIslands  Pattern = 2 // low-frequency mask fading to an ocean floor
	PatternValleys  Pattern = 3 // carved powered ridges
	PatternWarped   Pattern = 4 // double domain warp (default)
	PatternTerraced Pattern = 5 // height quantized to stepped plateaus
)

// Settings holds the terrain generation and shading parameters that can be
// modified at runtime.
type Settings struct {
	// Generation parameters
	TerrainScale   float32 `json:"terrain_scale"`
	HeightScale    float32 `json:"height_scale"`
	Octaves        uint32  `json:"octaves"`
	WarpStrength   float32 `json:"warp_strength"`
	HeightVariance float32 `json:"height_variance"`
	Roughness      float32 `json:"roughness"`
	PatternType    Pattern `json:"pattern_type"`
	Seed           uint32  `json:"seed"`

	// Lighting/fog
	Ambient     float32 `json:"ambient"`
	FogStart    float32 `json:"fog_start"`
	FogDistance float32 `json:"fog_distance"`

	// Terrain colors (RGB 0-1)
	ColorAbyss        [3]float32 `json:"color_abyss"`
	ColorDeepWater    [3]float32 `json:"color_deep_water"`
	ColorShallowWater [3]float32 `json:"color_shallow_water"`
	ColorSand         [3]float32 `json:"color_sand"`
	ColorGrass        [3]float32 `json:"color_grass"`
	ColorRock         [3]float32 `json:"color_rock"`
	ColorSnow         [3]float32 `json:"color_snow"`

	// Sky colors (RGB 0-1)
	ColorSky        [3]float32 `json:"color_sky"`
	ColorSkyTop     [3]float32 `json:"color_sky_top"`
	ColorSkyHorizon [3]float32 `json:"color_sky_horizon"`
}

// DefaultSettings returns the neutral grayscale defaults.
func DefaultSettings() Settings {
	return Settings{
		TerrainScale:      0.001,
		HeightScale:       150.0,
		Octaves:           2,
		WarpStrength:      20.0,
		HeightVariance:    0.5,
		Roughness:         0.35,
		PatternType:       PatternWarped,
		Seed:              0,
		Ambient:           0.25,
		FogStart:          DefaultFogStart,
		FogDistance:       DefaultFogDistance,
		ColorAbyss:        [3]float32{0.4, 0.4, 0.4},
		ColorDeepWater:    [3]float32{0.6, 0.6, 0.6},
		ColorShallowWater: [3]float32{0.7, 0.7, 0.7},
		ColorSand:         [3]float32{0.85, 0.85, 0.85},
		ColorGrass:        [3]float32{0.75, 0.75, 0.75},
		ColorRock:         [3]float32{0.9, 0.9, 0.9},
		ColorSnow:         [3]float32{0.98, 0.98, 0.98},
		ColorSky:          [3]float32{0.05, 0.05, 0.05},
		ColorSkyTop:       [3]float32{0.02, 0.02, 0.02},
		ColorSkyHorizon:   [3]float32{0.15, 0.15, 0.15},
	}
}

// Sanitize replaces values the generator cannot work with. Octave counts
// below one break the fractal sum and roughness outside (0, 1) makes it
// diverge, so both are pulled back into range rather than rejected.
func (s *Settings) Sanitize() {
	if s.Octaves < 1 {
		logger.Log.Warn("Octave count below one, clamping", zap.Uint32("octaves", s.Octaves))
		s.Octaves = 1
	}
	if !(s.Roughness > 0) {
		logger.Log.Warn("Non-positive roughness, substituting default", zap.Float32("roughness", s.Roughness))
		s.Roughness = 0.35
	}
	if s.Roughness >= 1 {
		logger.Log.Warn("Roughness above stable range, clamping", zap.Float32("roughness", s.Roughness))
		s.Roughness = 0.99
	}
	if s.TerrainScale < 0 {
		s.TerrainScale = 0
	}
	if s.FogDistance <= 0 {
		s.FogDistance = DefaultFogDistance
	}
	if s.PatternType > PatternTerraced {
		logger.Log.Warn("Unknown pattern, falling back to base", zap.Uint32("pattern", uint32(s.PatternType)))
		s.PatternType = PatternBase
	}
}

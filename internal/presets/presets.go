// Package presets holds the canonical preset, color theme, and sky preset
// tables, plus the reverse lookups that resolve current settings back to a
// named identity.
package presets

import (
	"math"

	"Terrascape/internal/particles"
	"Terrascape/internal/sky"
	"Terrascape/internal/terrain"
)

// DefaultPresetID names the preset applied at startup.
const DefaultPresetID = "arctic"

// presetAmbient is the ambient level shared by all presets; the bare
// default settings use a lower value.
const presetAmbient = 0.35

// Shared sky object parameters for all presets.
const (
	presetStarSizeMin      = 0.3
	presetStarSizeMax      = 1.5
	presetStarTwinkleSpeed = 1.0
	presetStarParallax     = 0.1
	presetSunSize          = 60.0
	presetSunParallax      = 0.05
	presetMoonSize         = 45.0
)

// FullPreset bundles complete settings for terrain, sky, and particles.
type FullPreset struct {
	Name      string            `json:"name"`
	Terrain   terrain.Settings  `json:"terrain"`
	Sky       sky.Settings      `json:"sky"`
	Particles particles.Settings `json:"particles"`
}

// Info identifies a preset without its full data.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns the available presets in canonical order.
func List() []Info {
	return []Info{
		{ID: "arctic", Name: "Arctic"},
		{ID: "chalk", Name: "Moon"},
		{ID: "desert", Name: "Desert"},
		{ID: "lava", Name: "Lava"},
		{ID: "natural", Name: "Islands"},
	}
}

// ByID returns the full preset for an id, or false when unknown.
func ByID(id string) (FullPreset, bool) {
	switch id {
	case "arctic":
		return arcticPreset(), true
	case "chalk":
		return chalkPreset(), true
	case "desert":
		return desertPreset(), true
	case "lava":
		return lavaPreset(), true
	case "natural":
		return naturalPreset(), true
	}
	return FullPreset{}, false
}

// Default returns the startup preset.
func Default() FullPreset {
	p, _ := ByID(DefaultPresetID)
	return p
}

// presetSky builds the sky settings shared shape with per-preset counts and
// colors.
func presetSky(stars, suns, moons uint32, starColor, sunColor, moonColor [3]float32) sky.Settings {
	return sky.Settings{
		StarCount:        stars,
		StarSizeMin:      presetStarSizeMin,
		StarSizeMax:      presetStarSizeMax,
		StarColor:        starColor,
		StarTwinkleSpeed: presetStarTwinkleSpeed,
		StarParallax:     presetStarParallax,
		SunCount:         suns,
		SunSize:          presetSunSize,
		SunColor:         sunColor,
		SunParallax:      presetSunParallax,
		MoonCount:        moons,
		MoonSize:         presetMoonSize,
		MoonColor:        moonColor,
		MoonParallax:     sky.DefaultMoonParallax,
		Seed:             0,
	}
}

func arcticPreset() FullPreset {
	return FullPreset{
		Name: "Arctic",
		Terrain: terrain.Settings{
			TerrainScale:      0.008,
			HeightScale:       611.0,
			Octaves:           5,
			WarpStrength:      1.0,
			HeightVariance:    0.10,
			Roughness:         0.22,
			PatternType:       terrain.PatternValleys,
			Seed:              0,
			Ambient:           presetAmbient,
			FogStart:          terrain.DefaultFogStart,
			FogDistance:       terrain.DefaultFogDistance,
			ColorAbyss:        [3]float32{0.02, 0.08, 0.15},
			ColorDeepWater:    [3]float32{0.05, 0.15, 0.25},
			ColorShallowWater: [3]float32{0.2, 0.35, 0.5},
			ColorSand:         [3]float32{0.7, 0.75, 0.8},
			ColorGrass:        [3]float32{0.5, 0.55, 0.5},
			ColorRock:         [3]float32{0.4, 0.42, 0.45},
			ColorSnow:         [3]float32{0.98, 0.98, 1.0},
			ColorSky:          [3]float32{0.75, 0.85, 0.95},
			ColorSkyTop:       [3]float32{0.5, 0.65, 0.85},
			ColorSkyHorizon:   [3]float32{0.85, 0.9, 0.98},
		},
		Sky: presetSky(0, 0, 0,
			[3]float32{0.9, 0.95, 1.0},
			[3]float32{1.0, 0.98, 0.95},
			[3]float32{0.85, 0.9, 1.0}),
		Particles: particles.DefaultSettings(),
	}
}

func chalkPreset() FullPreset {
	return FullPreset{
		Name:      "Moon",
		Terrain:   terrain.DefaultSettings(),
		Sky:       sky.DefaultSettings(),
		Particles: particles.DefaultSettings(),
	}
}

func desertPreset() FullPreset {
	return FullPreset{
		Name: "Desert",
		Terrain: terrain.Settings{
			TerrainScale:      0.001,
			HeightScale:       511.0,
			Octaves:           1,
			WarpStrength:      30.0,
			HeightVariance:    0.30,
			Roughness:         0.50,
			PatternType:       terrain.PatternValleys,
			Seed:              0,
			Ambient:           presetAmbient,
			FogStart:          terrain.DefaultFogStart,
			FogDistance:       terrain.DefaultFogDistance,
			ColorAbyss:        [3]float32{0.08, 0.05, 0.02},
			ColorDeepWater:    [3]float32{0.15, 0.1, 0.05},
			ColorShallowWater: [3]float32{0.35, 0.25, 0.15},
			ColorSand:         [3]float32{0.85, 0.78, 0.63},
			ColorGrass:        [3]float32{0.7, 0.6, 0.4},
			ColorRock:         [3]float32{0.55, 0.45, 0.35},
			ColorSnow:         [3]float32{0.95, 0.9, 0.85},
			ColorSky:          [3]float32{0.65, 0.55, 0.45},
			ColorSkyTop:       [3]float32{0.45, 0.35, 0.25},
			ColorSkyHorizon:   [3]float32{0.95, 0.85, 0.7},
		},
		Sky: presetSky(500, 0, 0,
			[3]float32{1.0, 0.95, 0.8},
			[3]float32{1.0, 0.85, 0.5},
			[3]float32{0.95, 0.9, 0.8}),
		Particles: particles.DefaultSettings(),
	}
}

func lavaPreset() FullPreset {
	return FullPreset{
		Name: "Lava",
		Terrain: terrain.Settings{
			TerrainScale:      0.001,
			HeightScale:       436.0,
			Octaves:           2,
			WarpStrength:      5.0,
			HeightVariance:    0.15,
			Roughness:         0.22,
			PatternType:       terrain.PatternRidged,
			Seed:              0,
			Ambient:           presetAmbient,
			FogStart:          terrain.DefaultFogStart,
			FogDistance:       terrain.DefaultFogDistance,
			ColorAbyss:        [3]float32{0.05, 0.0, 0.0},
			ColorDeepWater:    [3]float32{0.2, 0.02, 0.0},
			ColorShallowWater: [3]float32{0.6, 0.15, 0.0},
			ColorSand:         [3]float32{0.15, 0.12, 0.1},
			ColorGrass:        [3]float32{0.25, 0.18, 0.12},
			ColorRock:         [3]float32{0.35, 0.25, 0.2},
			ColorSnow:         [3]float32{0.5, 0.4, 0.35},
			ColorSky:          [3]float32{0.15, 0.05, 0.02},
			ColorSkyTop:       [3]float32{0.08, 0.02, 0.01},
			ColorSkyHorizon:   [3]float32{0.3, 0.1, 0.02},
		},
		Sky: presetSky(1000, 10, 0,
			[3]float32{1.0, 0.6, 0.2},
			[3]float32{1.0, 0.4, 0.1},
			[3]float32{0.8, 0.3, 0.1}),
		Particles: particles.DefaultSettings(),
	}
}

func naturalPreset() FullPreset {
	return FullPreset{
		Name: "Islands",
		Terrain: terrain.Settings{
			TerrainScale:      0.001,
			HeightScale:       1501.0,
			Octaves:           4,
			WarpStrength:      1.0,
			HeightVariance:    0.6,
			Roughness:         0.84,
			PatternType:       terrain.PatternIslands,
			Seed:              0,
			Ambient:           presetAmbient,
			FogStart:          terrain.DefaultFogStart,
			FogDistance:       terrain.DefaultFogDistance,
			ColorAbyss:        [3]float32{0.05, 0.1, 0.25},
			ColorDeepWater:    [3]float32{0.1, 0.2, 0.4},
			ColorShallowWater: [3]float32{0.2, 0.4, 0.6},
			ColorSand:         [3]float32{0.76, 0.7, 0.5},
			ColorGrass:        [3]float32{0.22, 0.45, 0.15},
			ColorRock:         [3]float32{0.45, 0.42, 0.38},
			ColorSnow:         [3]float32{0.95, 0.95, 0.98},
			ColorSky:          [3]float32{0.53, 0.81, 0.92},
			ColorSkyTop:       [3]float32{0.25, 0.5, 0.8},
			ColorSkyHorizon:   [3]float32{0.75, 0.85, 0.95},
		},
		Sky: presetSky(0, 0, 0,
			[3]float32{1.0, 1.0, 0.9},
			[3]float32{1.0, 0.95, 0.8},
			[3]float32{0.9, 0.9, 0.95}),
		Particles: particles.DefaultSettings(),
	}
}

// colorTolerance is the per-channel tolerance for reverse color matching.
const colorTolerance = 0.004

// ColorTheme is a named bundle of terrain and sky colors only, orthogonal
// to the generation parameters.
type ColorTheme struct {
	ID                string
	ColorAbyss        [3]float32
	ColorDeepWater    [3]float32
	ColorShallowWater [3]float32
	ColorSand         [3]float32
	ColorGrass        [3]float32
	ColorRock         [3]float32
	ColorSnow         [3]float32
	ColorSky          [3]float32
	ColorSkyTop       [3]float32
	ColorSkyHorizon   [3]float32
}

// Themes returns the theme table in canonical match order, derived from the
// presets' color sets.
func Themes() []ColorTheme {
	list := List()
	themes := make([]ColorTheme, 0, len(list))
	for _, info := range list {
		p, _ := ByID(info.ID)
		t := p.Terrain
		themes = append(themes, ColorTheme{
			ID:                info.ID,
			ColorAbyss:        t.ColorAbyss,
			ColorDeepWater:    t.ColorDeepWater,
			ColorShallowWater: t.ColorShallowWater,
			ColorSand:         t.ColorSand,
			ColorGrass:        t.ColorGrass,
			ColorRock:         t.ColorRock,
			ColorSnow:         t.ColorSnow,
			ColorSky:          t.ColorSky,
			ColorSkyTop:       t.ColorSkyTop,
			ColorSkyHorizon:   t.ColorSkyHorizon,
		})
	}
	return themes
}

// MatchTheme resolves current terrain colors to a theme id. Every compared
// color must match within tolerance; the first match in table order wins.
// Returns "" when no theme matches.
func MatchTheme(t terrain.Settings) string {
	for _, theme := range Themes() {
		if colorEq(t.ColorAbyss, theme.ColorAbyss) &&
			colorEq(t.ColorDeepWater, theme.ColorDeepWater) &&
			colorEq(t.ColorShallowWater, theme.ColorShallowWater) &&
			colorEq(t.ColorSand, theme.ColorSand) &&
			colorEq(t.ColorGrass, theme.ColorGrass) &&
			colorEq(t.ColorRock, theme.ColorRock) &&
			colorEq(t.ColorSnow, theme.ColorSnow) &&
			colorEq(t.ColorSky, theme.ColorSky) &&
			colorEq(t.ColorSkyTop, theme.ColorSkyTop) &&
			colorEq(t.ColorSkyHorizon, theme.ColorSkyHorizon) {
			return theme.ID
		}
	}
	return ""
}

// SkyPreset defines only the sky fields a named look cares about; nil
// fields are not compared.
type SkyPreset struct {
	ID        string
	StarCount *uint32
	SunCount  *uint32
	MoonCount *uint32
	StarColor *[3]float32
	SunColor  *[3]float32
	MoonColor *[3]float32
}

func u32(v uint32) *uint32        { return &v }
func rgb(r, g, b float32) *[3]float32 { return &[3]float32{r, g, b} }

// SkyPresets returns the sky preset table in canonical match order.
func SkyPresets() []SkyPreset {
	return []SkyPreset{
		{ID: "arctic", StarCount: u32(0), SunCount: u32(0), MoonCount: u32(0),
			StarColor: rgb(0.9, 0.95, 1.0)},
		{ID: "chalk", StarCount: u32(4000), SunCount: u32(60), MoonCount: u32(60),
			StarColor: rgb(0.95, 0.95, 0.95)},
		{ID: "desert", StarCount: u32(500), SunCount: u32(0), MoonCount: u32(0),
			StarColor: rgb(1.0, 0.95, 0.8), SunColor: rgb(1.0, 0.85, 0.5)},
		{ID: "lava", StarCount: u32(1000), SunCount: u32(10), MoonCount: u32(0),
			StarColor: rgb(1.0, 0.6, 0.2), SunColor: rgb(1.0, 0.4, 0.1)},
		{ID: "natural", StarCount: u32(0), SunCount: u32(0), MoonCount: u32(0),
			StarColor: rgb(1.0, 1.0, 0.9)},
	}
}

// MatchSkyPreset resolves current sky settings to a sky preset id,
// comparing only the fields each preset defines. Returns "" when no preset
// matches.
func MatchSkyPreset(s sky.Settings) string {
	for _, p := range SkyPresets() {
		if p.StarCount != nil && s.StarCount != *p.StarCount {
			continue
		}
		if p.SunCount != nil && s.SunCount != *p.SunCount {
			continue
		}
		if p.MoonCount != nil && s.MoonCount != *p.MoonCount {
			continue
		}
		if p.StarColor != nil && !colorEq(s.StarColor, *p.StarColor) {
			continue
		}
		if p.SunColor != nil && !colorEq(s.SunColor, *p.SunColor) {
			continue
		}
		if p.MoonColor != nil && !colorEq(s.MoonColor, *p.MoonColor) {
			continue
		}
		return p.ID
	}
	return ""
}

func colorEq(a, b [3]float32) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > colorTolerance {
			return false
		}
	}
	return true
}

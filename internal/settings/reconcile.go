package settings

import (
	"math"
	"math/rand"

	"Terrascape/internal/logger"
	"Terrascape/internal/particles"
	"Terrascape/internal/presets"
	"Terrascape/internal/sky"
	"Terrascape/internal/terrain"

	"go.uber.org/zap"
)

// ChangeCategory classifies a settings edit by the cheapest update that can
// honor it.
type ChangeCategory int

const (
	// ChangeNone means the edit is a no-op.
	ChangeNone ChangeCategory = iota
	// ChangeColorsOnly means shading parameters update in place without
	// touching height data.
	ChangeColorsOnly
	// ChangeGeneration means the heightfield must regenerate under a
	// fresh seed.
	ChangeGeneration
)

func (c ChangeCategory) String() string {
	switch c {
	case ChangeColorsOnly:
		return "colors_only"
	case ChangeGeneration:
		return "generation"
	default:
		return "none"
	}
}

// Tolerances for change detection. Generation parameters compare tighter
// than colors because small drifts there still reshape the terrain.
const (
	paramTolerance = 1e-4
	colorTolerance = 0.004
)

// CustomIdentity marks settings that match no named theme or sky preset.
const CustomIdentity = "custom"

// ClassifyTerrain compares a candidate against the last-applied terrain
// settings. Any generation-affecting difference dominates; otherwise color
// differences downgrade to an in-place update.
func ClassifyTerrain(applied, next terrain.Settings) ChangeCategory {
	genPairs := [][2]float32{
		{float32(applied.PatternType), float32(next.PatternType)},
		{applied.TerrainScale, next.TerrainScale},
		{applied.HeightScale, next.HeightScale},
		{applied.HeightVariance, next.HeightVariance},
		{float32(applied.Octaves), float32(next.Octaves)},
		{applied.WarpStrength, next.WarpStrength},
		{applied.Roughness, next.Roughness},
	}
	for _, p := range genPairs {
		if math.Abs(float64(p[0]-p[1])) > paramTolerance {
			return ChangeGeneration
		}
	}

	colorPairs := [][2][3]float32{
		{applied.ColorAbyss, next.ColorAbyss},
		{applied.ColorDeepWater, next.ColorDeepWater},
		{applied.ColorShallowWater, next.ColorShallowWater},
		{applied.ColorSand, next.ColorSand},
		{applied.ColorGrass, next.ColorGrass},
		{applied.ColorRock, next.ColorRock},
		{applied.ColorSnow, next.ColorSnow},
		{applied.ColorSky, next.ColorSky},
		{applied.ColorSkyTop, next.ColorSkyTop},
		{applied.ColorSkyHorizon, next.ColorSkyHorizon},
	}
	for _, p := range colorPairs {
		for i := 0; i < 3; i++ {
			if math.Abs(float64(p[0][i]-p[1][i])) > colorTolerance {
				return ChangeColorsOnly
			}
		}
	}

	// Ambient and fog ride along with color updates.
	if math.Abs(float64(applied.Ambient-next.Ambient)) > paramTolerance ||
		math.Abs(float64(applied.FogStart-next.FogStart)) > paramTolerance ||
		math.Abs(float64(applied.FogDistance-next.FogDistance)) > paramTolerance {
		return ChangeColorsOnly
	}

	return ChangeNone
}

// SkyCountsChanged reports whether an edit touches object counts. Placement
// is seed-derived, so count changes force a reseed; color or size edits
// update in place.
func SkyCountsChanged(applied, next sky.Settings) bool {
	return applied.StarCount != next.StarCount ||
		applied.SunCount != next.SunCount ||
		applied.MoonCount != next.MoonCount
}

// Reconciler applies classified edits to the store and tracks the active
// named identity, checkpointing custom state so it can be restored.
type Reconciler struct {
	store *Store
	rng   *rand.Rand

	themeIdentity  string
	skyIdentity    string
	customSnapshot *Snapshot
}

// NewReconciler wires a reconciler to a store. A nil rng falls back to the
// global source.
func NewReconciler(store *Store, rng *rand.Rand) *Reconciler {
	r := &Reconciler{store: store, rng: rng}
	r.themeIdentity = r.resolveTheme()
	r.skyIdentity = r.resolveSky()
	return r
}

func (r *Reconciler) randUint32() uint32 {
	if r.rng != nil {
		return r.rng.Uint32()
	}
	return rand.Uint32()
}

// ThemeIdentity returns the active theme id, or CustomIdentity.
func (r *Reconciler) ThemeIdentity() string {
	return r.themeIdentity
}

// SkyIdentity returns the active sky preset id, or CustomIdentity.
func (r *Reconciler) SkyIdentity() string {
	return r.skyIdentity
}

func (r *Reconciler) resolveTheme() string {
	if id := presets.MatchTheme(r.store.Terrain()); id != "" {
		return id
	}
	return CustomIdentity
}

func (r *Reconciler) resolveSky() string {
	if id := presets.MatchSkyPreset(r.store.Sky()); id != "" {
		return id
	}
	return CustomIdentity
}

// checkpointIfLeavingCustom saves the pre-edit snapshot the moment the
// identity transitions away from custom, so re-selecting custom restores
// what the user had tuned rather than the incoming preset values.
func (r *Reconciler) checkpointIfLeavingCustom(oldID, newID string, preEdit Snapshot) {
	if oldID == CustomIdentity && newID != CustomIdentity {
		r.customSnapshot = &preEdit
		logger.Log.Info("Checkpointed custom settings")
	}
}

// CustomSnapshot returns the checkpointed custom settings, or false when
// none exists.
func (r *Reconciler) CustomSnapshot() (Snapshot, bool) {
	if r.customSnapshot == nil {
		return Snapshot{}, false
	}
	return *r.customSnapshot, true
}

// RestoreCustom reapplies the checkpointed custom settings.
func (r *Reconciler) RestoreCustom() (TerrainOutcome, bool) {
	if r.customSnapshot == nil {
		return TerrainOutcome{}, false
	}
	snap := *r.customSnapshot
	outcome := r.ApplyTerrain(snap.Terrain)
	r.ApplySky(snap.Sky)
	r.store.SetParticles(snap.Particles)
	return outcome, true
}

// TerrainOutcome reports what a terrain edit required.
type TerrainOutcome struct {
	Category ChangeCategory
	// Applied is the settings as stored, including any freshly
	// randomized seed.
	Applied terrain.Settings
}

// ApplyTerrain classifies and stores a terrain edit. Generation-level
// changes get a fresh random seed; the caller is responsible for running
// the matching regeneration or color update.
func (r *Reconciler) ApplyTerrain(next terrain.Settings) TerrainOutcome {
	preEdit := r.store.Snapshot()
	applied := preEdit.Terrain
	category := ClassifyTerrain(applied, next)

	switch category {
	case ChangeGeneration:
		next.Seed = r.randUint32()
		r.store.SetTerrain(next)
	case ChangeColorsOnly:
		// Keep the applied seed; only shading parameters move.
		next.Seed = applied.Seed
		r.store.SetTerrain(next)
	default:
		next = applied
	}

	oldID := r.themeIdentity
	r.themeIdentity = r.resolveTheme()
	r.checkpointIfLeavingCustom(oldID, r.themeIdentity, preEdit)

	if category != ChangeNone {
		logger.Log.Info("Reconciled terrain edit",
			zap.String("category", category.String()),
			zap.String("theme", r.themeIdentity))
	}
	return TerrainOutcome{Category: category, Applied: next}
}

// SkyOutcome reports what a sky edit required.
type SkyOutcome struct {
	Reseeded bool
	Applied  sky.Settings
}

// ApplySky stores a sky edit, reseeding when object counts changed.
func (r *Reconciler) ApplySky(next sky.Settings) SkyOutcome {
	preEdit := r.store.Snapshot()
	applied := preEdit.Sky
	reseeded := false
	if SkyCountsChanged(applied, next) {
		next.Seed = r.randUint32()
		reseeded = true
	}
	r.store.SetSky(next)

	oldID := r.skyIdentity
	r.skyIdentity = r.resolveSky()
	r.checkpointIfLeavingCustom(oldID, r.skyIdentity, preEdit)

	if reseeded {
		logger.Log.Info("Reconciled sky edit with reseed",
			zap.String("identity", r.skyIdentity))
	}
	return SkyOutcome{Reseeded: reseeded, Applied: next}
}

// ApplyParticles stores a particle edit. Particles have no regeneration
// concept; density maps continuously to the active count.
func (r *Reconciler) ApplyParticles(next particles.Settings) {
	r.store.SetParticles(next)
}

package presets

import (
	"testing"
)

func TestListStableOrder(t *testing.T) {
	list := List()
	wantIDs := []string{"arctic", "chalk", "desert", "lava", "natural"}
	wantNames := []string{"Arctic", "Moon", "Desert", "Lava", "Islands"}
	if len(list) != len(wantIDs) {
		t.Fatalf("Expected %d presets, got %d", len(wantIDs), len(list))
	}
	for i, info := range list {
		if info.ID != wantIDs[i] {
			t.Errorf("Preset %d: expected id %q, got %q", i, wantIDs[i], info.ID)
		}
		if info.Name != wantNames[i] {
			t.Errorf("Preset %d: expected name %q, got %q", i, wantNames[i], info.Name)
		}
	}
}

func TestByIDCoversList(t *testing.T) {
	for _, info := range List() {
		p, ok := ByID(info.ID)
		if !ok {
			t.Errorf("Preset %q listed but not resolvable", info.ID)
			continue
		}
		if p.Name != info.Name {
			t.Errorf("Preset %q: list name %q, bundle name %q", info.ID, info.Name, p.Name)
		}
	}
	if _, ok := ByID("nonexistent"); ok {
		t.Error("Unknown id must not resolve")
	}
}

func TestDefaultPreset(t *testing.T) {
	if DefaultPresetID != "arctic" {
		t.Error("Default preset must be arctic")
	}
	p := Default()
	if p.Name != "Arctic" {
		t.Error("Default preset bundle must be Arctic")
	}
	if p.Terrain.Ambient != 0.35 {
		t.Errorf("Preset ambient must be 0.35, got %f", p.Terrain.Ambient)
	}
}

func TestPresetGenerationParameters(t *testing.T) {
	arctic, _ := ByID("arctic")
	if arctic.Terrain.TerrainScale != 0.008 || arctic.Terrain.Octaves != 5 {
		t.Error("Arctic terrain parameters are wrong")
	}
	lava, _ := ByID("lava")
	if lava.Terrain.PatternType != 1 {
		t.Error("Lava must use the ridged pattern")
	}
	natural, _ := ByID("natural")
	if natural.Terrain.PatternType != 2 {
		t.Error("Natural must use the islands pattern")
	}
	if lava.Sky.SunCount != 10 || lava.Sky.StarCount != 1000 {
		t.Error("Lava sky counts are wrong")
	}
}

func TestPresetsCarryNoWeather(t *testing.T) {
	for _, info := range List() {
		p, _ := ByID(info.ID)
		if p.Particles.Density != 0 {
			t.Errorf("Preset %q must start without weather", info.ID)
		}
	}
}

func TestMatchThemeRoundTrip(t *testing.T) {
	for _, info := range List() {
		p, _ := ByID(info.ID)
		got := MatchTheme(p.Terrain)
		if got != info.ID {
			t.Errorf("Theme of preset %q resolved to %q", info.ID, got)
		}
	}
}

func TestMatchThemeCustom(t *testing.T) {
	p, _ := ByID("desert")
	p.Terrain.ColorGrass[0] += 0.1
	if got := MatchTheme(p.Terrain); got != "" {
		t.Errorf("Edited colors must resolve to custom, got %q", got)
	}
}

func TestMatchThemeWithinTolerance(t *testing.T) {
	p, _ := ByID("lava")
	p.Terrain.ColorRock[1] += 0.003 // inside tolerance
	if got := MatchTheme(p.Terrain); got != "lava" {
		t.Errorf("Near-identical colors must still match, got %q", got)
	}
}

func TestMatchSkyPresetRoundTrip(t *testing.T) {
	for _, info := range List() {
		p, _ := ByID(info.ID)
		got := MatchSkyPreset(p.Sky)
		if got != info.ID {
			t.Errorf("Sky of preset %q resolved to %q", info.ID, got)
		}
	}
}

func TestMatchSkyPresetIgnoresUndefinedFields(t *testing.T) {
	p, _ := ByID("desert")
	// Desert's sky preset does not define a moon color; changing it must
	// not break the match.
	p.Sky.MoonColor = [3]float32{0.1, 0.2, 0.3}
	if got := MatchSkyPreset(p.Sky); got != "desert" {
		t.Errorf("Undefined fields must not be compared, got %q", got)
	}
}

func TestMatchSkyPresetCustom(t *testing.T) {
	p, _ := ByID("lava")
	p.Sky.StarCount = 1234
	if got := MatchSkyPreset(p.Sky); got != "" {
		t.Errorf("Edited counts must resolve to custom, got %q", got)
	}
}

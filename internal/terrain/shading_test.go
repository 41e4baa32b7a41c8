package terrain

import (
	"testing"

	mgl32 "github.com/go-gl/mathgl/mgl32"
)

func TestNormalFlatTerrain(t *testing.T) {
	heights := make([]float32, ChunkSize*ChunkSize)
	n := Normal(heights, 10, 10)

	if n.Y() < 0.999 {
		t.Errorf("Flat terrain should have an up-facing normal, got %v", n)
	}
}

func TestNormalEdgeClamped(t *testing.T) {
	heights := make([]float32, ChunkSize*ChunkSize)
	for i := range heights {
		heights[i] = float32(i % ChunkSize)
	}

	// Corners must not index out of bounds and must stay normalized
	for _, rc := range [][2]int{{0, 0}, {0, ChunkSize - 1}, {ChunkSize - 1, 0}, {ChunkSize - 1, ChunkSize - 1}} {
		n := Normal(heights, rc[0], rc[1])
		if l := n.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("Normal at edge %v not unit length: %v", rc, l)
		}
	}
}

func TestShadeDeepWaterUsesWaterColors(t *testing.T) {
	s := DefaultSettings()
	s.ColorAbyss = [3]float32{1, 0, 0}
	s.ColorDeepWater = [3]float32{1, 0, 0}
	s.ColorShallowWater = [3]float32{1, 0, 0}
	s.ColorGrass = [3]float32{0, 1, 0}
	s.FogStart = 1e9 // disable fog for the assertion

	up := mgl32.Vec3{0, 1, 0}
	cam := mgl32.Vec3{0, 50, 0}
	c := Shade(-0.4*s.HeightScale, up, mgl32.Vec3{10, -60, 10}, cam, &s)

	if c.X() <= c.Y() {
		t.Errorf("Below-water sample should pick water colors, got %v", c)
	}
}

func TestShadeFogRecedesAtAltitude(t *testing.T) {
	s := DefaultSettings()
	up := mgl32.Vec3{0, 1, 0}
	world := mgl32.Vec3{5000, 0, 0}

	low := Shade(10, up, world, mgl32.Vec3{0, 10, 0}, &s)
	high := Shade(10, up, world, mgl32.Vec3{0, 4000, 0}, &s)

	// With less fog, the lit terrain color shows through more strongly; the
	// grayscale default palette makes the fogged color darker than the sky
	// horizon blend at altitude only if fog weakened.
	sky := vec3(s.ColorSkyHorizon)
	if high.Sub(sky).Len() <= low.Sub(sky).Len() {
		t.Error("Fog should attenuate when the viewer is elevated")
	}
}

func TestShadeFogClamped(t *testing.T) {
	s := DefaultSettings()
	s.ColorSkyHorizon = [3]float32{1, 1, 1}
	s.ColorSkyTop = [3]float32{1, 1, 1}
	up := mgl32.Vec3{0, 1, 0}

	// Extremely distant vertex: fog must not fully replace the lit color
	c := Shade(10, up, mgl32.Vec3{1e7, 0, 0}, mgl32.Vec3{0, 0, 0}, &s)
	if c.X() >= 1.0 {
		t.Error("Fog blend should be clamped below full replacement")
	}
}

func TestShadeHeightsMatchesShade(t *testing.T) {
	s := DefaultSettings()
	s.Seed = 77
	heights := make([]float32, ChunkSize*ChunkSize)
	GenerateHeights(heights, 0, 0, s, nil)

	dst := make([]mgl32.Vec3, ChunkSize*ChunkSize)
	cam := mgl32.Vec3{100, 200, 100}
	ShadeHeights(dst, heights, 0, 0, cam, s, nil)

	step := float32(ChunkWorldSize) / float32(ChunkSize-1)
	row, col := 20, 31
	i := row*ChunkSize + col
	world := mgl32.Vec3{float32(col) * step, heights[i], float32(row) * step}
	want := Shade(heights[i], Normal(heights, row, col), world, cam, &s)

	if dst[i] != want {
		t.Errorf("ShadeHeights diverged from Shade at %d: %v vs %v", i, dst[i], want)
	}
}

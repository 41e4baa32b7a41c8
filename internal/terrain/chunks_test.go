package terrain

import (
	"testing"

	mgl32 "github.com/go-gl/mathgl/mgl32"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	s := DefaultSettings()
	s.Seed = 99
	return NewRendererWithRadius(s, nil, 1)
}

func TestCoordFromWorld(t *testing.T) {
	c := CoordFromWorld(mgl32.Vec3{300, 0, -1})
	if c.X != 1 || c.Z != -1 {
		t.Errorf("Unexpected chunk coord: %+v", c)
	}
}

func TestInitialChunksResident(t *testing.T) {
	r := newTestRenderer(t)

	if got := len(r.ResidentChunks()); got != 9 {
		t.Fatalf("Expected 9 initial chunks, got %d", got)
	}
	if _, ok := r.Heights(ChunkCoord{X: 0, Z: 0}); !ok {
		t.Error("Origin chunk should be resident")
	}
}

func TestUpdateStreamsNewChunks(t *testing.T) {
	r := newTestRenderer(t)

	// Move the camera several chunks away; the window follows and the pool
	// recycles LRU slots, so the count stays fixed.
	r.Update(mgl32.Vec3{10 * ChunkWorldSize, 0, 0})

	if got := len(r.ResidentChunks()); got != 9 {
		t.Fatalf("Chunk pool should stay at 9 slots, got %d", got)
	}
	if _, ok := r.Heights(ChunkCoord{X: 10, Z: 0}); !ok {
		t.Error("Chunk at the new camera position should be resident")
	}
	if _, ok := r.Heights(ChunkCoord{X: 0, Z: 0}); ok {
		t.Error("Far-away chunk should have been recycled")
	}
}

func TestRegenerateAllChangesHeightsWithNewSeed(t *testing.T) {
	r := newTestRenderer(t)
	before, _ := r.Heights(ChunkCoord{})
	snapshot := make([]float32, len(before))
	copy(snapshot, before)

	s := r.Settings()
	s.Seed = 12345
	r.UpdateSettings(s)
	r.CheckRegeneration(mgl32.Vec3{})

	after, ok := r.Heights(ChunkCoord{})
	if !ok {
		t.Fatal("Origin chunk missing after regeneration")
	}
	same := true
	for i := range after {
		if after[i] != snapshot[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("New seed should change generated heights")
	}
}

func TestUpdateColorsDoesNotRegenerate(t *testing.T) {
	r := newTestRenderer(t)
	before, _ := r.Heights(ChunkCoord{})
	snapshot := make([]float32, len(before))
	copy(snapshot, before)

	s := r.Settings()
	s.ColorGrass = [3]float32{1, 0, 1}
	s.Seed = 777 // generation field, must be ignored by a colors-only update
	r.UpdateColors(s)
	r.CheckRegeneration(mgl32.Vec3{})

	after, _ := r.Heights(ChunkCoord{})
	for i := range after {
		if after[i] != snapshot[i] {
			t.Fatal("Colors-only update must not touch height data")
		}
	}
	if r.Settings().ColorGrass != [3]float32{1, 0, 1} {
		t.Error("Color update should apply in place")
	}
	if r.Settings().Seed == 777 {
		t.Error("Colors-only update must not adopt generation fields")
	}
}

func TestVisibleInFrustumAllOpenPlanes(t *testing.T) {
	// Planes with huge positive offsets accept everything
	var planes [6]mgl32.Vec4
	for i := range planes {
		planes[i] = mgl32.Vec4{0, 1, 0, 1e9}
	}
	if !(ChunkCoord{X: 3, Z: -2}).VisibleInFrustum(&planes, 150) {
		t.Error("Fully open frustum should accept any chunk")
	}

	// A plane pushing everything behind it rejects the chunk
	planes[0] = mgl32.Vec4{0, -1, 0, -1e9}
	if (ChunkCoord{X: 3, Z: -2}).VisibleInFrustum(&planes, 150) {
		t.Error("Chunk behind a plane should be culled")
	}
}

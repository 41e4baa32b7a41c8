package camera

import (
	"math"
	"testing"

	"Terrascape/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrontFollowsYawPitch(t *testing.T) {
	c := New(16.0 / 9.0)
	// Yaw 0 looks down +Z.
	f := c.Front()
	if math.Abs(float64(f.Z()-1)) > 1e-5 {
		t.Errorf("Yaw 0 must look down +Z, got %v", f)
	}

	c.Rotate(0, -1000) // pitch up far beyond the clamp
	if c.Pitch != pitchLimit {
		t.Errorf("Pitch must clamp at the limit, got %f", c.Pitch)
	}
}

func TestLookAtRoundTrip(t *testing.T) {
	c := New(1)
	c.Position = mgl32.Vec3{0, 100, 0}
	target := mgl32.Vec3{500, 300, 500}
	c.LookAt(target)

	dir := target.Sub(c.Position).Normalize()
	front := c.Front()
	if front.Dot(dir) < 0.9999 {
		t.Errorf("Front must point at the target, dot=%f", front.Dot(dir))
	}
}

func TestMoveRespectsSpeed(t *testing.T) {
	c := New(1)
	start := c.Position
	c.Move(1, 0, 0, 0.5)
	dist := c.Position.Sub(start).Len()
	if math.Abs(float64(dist-c.Speed*0.5)) > 1e-3 {
		t.Errorf("Expected to move %f, moved %f", c.Speed*0.5, dist)
	}

	before := c.Position
	c.Move(0, 0, 0, 0.5)
	if c.Position != before {
		t.Error("No input must not move the camera")
	}
}

func TestFrustumCullsChunks(t *testing.T) {
	c := New(16.0 / 9.0)
	c.Position = mgl32.Vec3{128, 300, 128}
	c.LookAt(mgl32.Vec3{128, 0, 2000}) // looking down +Z

	planes := c.FrustumPlanes()

	ahead := terrain.ChunkCoord{X: 0, Z: 4}
	if !ahead.VisibleInFrustum(&planes, 600) {
		t.Error("Chunk ahead of the camera must be visible")
	}

	behind := terrain.ChunkCoord{X: 0, Z: -40}
	if behind.VisibleInFrustum(&planes, 600) {
		t.Error("Chunk far behind the camera must be culled")
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	c := New(1)
	for i, p := range c.FrustumPlanes() {
		n := mgl32.Vec3{p.X(), p.Y(), p.Z()}
		if math.Abs(float64(n.Len()-1)) > 1e-4 {
			t.Errorf("Plane %d normal must be unit length, got %f", i, n.Len())
		}
	}
}

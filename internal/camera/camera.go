// Package camera provides the free-flying viewpoint and the frustum plane
// extraction used for chunk culling.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// pitchLimit keeps the camera from flipping over the pole (~86 degrees).
const pitchLimit = 1.5

type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // horizontal rotation, radians
	Pitch    float32 // vertical rotation, radians

	Fov         float32
	Near        float32
	Far         float32
	AspectRatio float32

	Speed       float32
	Sensitivity float32
}

// New returns a camera with flight defaults suited to terrain scale.
func New(aspect float32) *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 400, 0},
		Yaw:         0,
		Pitch:       0,
		Fov:         mgl32.DegToRad(70),
		Near:        0.1,
		Far:         5000,
		AspectRatio: aspect,
		Speed:       300,
		Sensitivity: 0.002,
	}
}

// Front derives the view direction from yaw and pitch.
func (c *Camera) Front() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Sin(float64(c.Yaw)) * math.Cos(float64(c.Pitch))),
		float32(math.Sin(float64(c.Pitch))),
		float32(math.Cos(float64(c.Yaw)) * math.Cos(float64(c.Pitch))),
	}.Normalize()
}

// Right is the horizontal strafe axis, independent of pitch.
func (c *Camera) Right() mgl32.Vec3 {
	return mgl32.Vec3{
		-float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}.Normalize()
}

// Move translates the camera along its axes: forward/right/up are signed
// amounts in the range a host's input layer produces, scaled by speed.
func (c *Camera) Move(forward, right, up, dt float32) {
	velocity := c.Front().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	if velocity.Len() > 0 {
		velocity = velocity.Normalize().Mul(c.Speed * dt)
		c.Position = c.Position.Add(velocity)
	}
}

// Rotate applies a mouse delta, clamping pitch.
func (c *Camera) Rotate(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -pitchLimit, pitchLimit)
}

// LookAt orients the camera toward a target point.
func (c *Camera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Yaw = float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
	c.Pitch = float32(math.Asin(float64(dir.Y())))
}

// ViewMatrix builds the view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix builds the perspective transform.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.AspectRatio, c.Near, c.Far)
}

// ViewProjection is the combined transform fed to frustum extraction.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// FrustumPlanes extracts the six normalized clip planes from the
// view-projection matrix. Each plane is (normal, distance); a point is
// inside when dot(normal, p) + distance >= 0 for all six.
func (c *Camera) FrustumPlanes() [6]mgl32.Vec4 {
	vp := c.ViewProjection()
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp[i], vp[i+4], vp[i+8], vp[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes := [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}
	for i := range planes {
		n := mgl32.Vec3{planes[i].X(), planes[i].Y(), planes[i].Z()}
		l := n.Len()
		if l > 0 {
			planes[i] = planes[i].Mul(1 / l)
		}
	}
	return planes
}

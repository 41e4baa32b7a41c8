// Package sky places and shades sky objects: stars, suns, and moons
// distributed on sky spheres around the camera. Placement is fully
// seed-derived, so the same settings always produce the same sky.
package sky

import (
	"math"

	"Terrascape/internal/logger"

	mgl32 "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	// MaxStars caps the star count.
	MaxStars = 8000
	// MaxCelestial caps suns and moons combined.
	MaxCelestial = 200

	// DefaultMoonParallax is the default parallax factor for moons.
	DefaultMoonParallax = 0.08

	starSphereRadius = 1000.0
	sunSphereRadius  = 800.0
	moonSphereRadius = 900.0

	// Stars cover 0 to ~86 degrees of elevation; suns and moons start a
	// few degrees above the horizon.
	starPhiMultiplier = 0.95
	celestialPhiMin   = 0.05
	celestialPhiRange = 1.52

	starYMin      = 0.01
	celestialYMin = 0.05

	// Seed offsets keep sun and moon placement independent of stars.
	sunSeedOffset  = 10000
	moonSeedOffset = 20000

	// horizonMargin clamps parallax-shifted objects above the camera so
	// they never dip below the horizon line.
	horizonMargin = 20.0
)

// Object types.
const (
	TypeStar uint32 = 0
	TypeSun  uint32 = 1
	TypeMoon uint32 = 2
)

// Settings holds the sky parameters that can be modified at runtime.
type Settings struct {
	StarCount        uint32     `json:"star_count"`
	StarSizeMin      float32    `json:"star_size_min"`
	StarSizeMax      float32    `json:"star_size_max"`
	StarColor        [3]float32 `json:"star_color"`
	StarTwinkleSpeed float32    `json:"star_twinkle_speed"`
	StarParallax     float32    `json:"star_parallax"`

	SunCount    uint32     `json:"sun_count"`
	SunSize     float32    `json:"sun_size"`
	SunColor    [3]float32 `json:"sun_color"`
	SunParallax float32    `json:"sun_parallax"`

	MoonCount    uint32     `json:"moon_count"`
	MoonSize     float32    `json:"moon_size"`
	MoonColor    [3]float32 `json:"moon_color"`
	MoonParallax float32    `json:"moon_parallax"`

	Seed uint32 `json:"seed"`
}

// DefaultSettings returns a neutral sky.
func DefaultSettings() Settings {
	return Settings{
		StarCount:        4000,
		StarSizeMin:      0.5,
		StarSizeMax:      2.0,
		StarColor:        [3]float32{0.95, 0.95, 0.95},
		StarTwinkleSpeed: 1.0,
		StarParallax:     0.1,
		SunCount:         60,
		SunSize:          50.0,
		SunColor:         [3]float32{1.0, 1.0, 1.0},
		SunParallax:      0.05,
		MoonCount:        60,
		MoonSize:         30.0,
		MoonColor:        [3]float32{0.9, 0.9, 0.9},
		MoonParallax:     DefaultMoonParallax,
		Seed:             0,
	}
}

// Object is one sky object. The layout matches the render kernel's storage
// buffer element byte-for-byte; the trailing pad brings it to 48 bytes.
type Object struct {
	Position       [3]float32 // offset 0, position on the sky sphere
	Size           float32    // offset 12
	Color          [3]float32 // offset 16
	ObjectType     uint32     // offset 28
	Seed           float32    // offset 32, twinkle phase for stars
	ParallaxFactor float32    // offset 36
	Pad            [2]float32 // offset 40
}

// objectConfig holds per-type placement parameters.
type objectConfig struct {
	sphereRadius float32
	phiMin       float32
	phiRange     float32
	yMin         float32
}

func configFor(objType uint32) objectConfig {
	switch objType {
	case TypeSun:
		return objectConfig{sunSphereRadius, celestialPhiMin, celestialPhiRange, celestialYMin}
	case TypeMoon:
		return objectConfig{moonSphereRadius, celestialPhiMin, celestialPhiRange, celestialYMin}
	default:
		return objectConfig{starSphereRadius, 0, math.Pi / 2 * starPhiMultiplier, starYMin}
	}
}

// Counts reports how many of each object type were generated.
type Counts struct {
	Stars uint32
	Suns  uint32
	Moons uint32
}

// Renderer owns the sky object cache and the animation clock.
type Renderer struct {
	objects     []Object
	counts      Counts
	settings    Settings
	needsRegen  bool
	currentTime float32
}

// NewRenderer generates the initial sky from default settings.
func NewRenderer() *Renderer {
	r := &Renderer{settings: DefaultSettings()}
	r.regenerate()
	return r
}

// Settings returns the last-applied settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// UpdateSettings marks the sky for regeneration only when something
// actually changed.
func (r *Renderer) UpdateSettings(settings Settings) {
	if r.settings != settings {
		r.settings = settings
		r.needsRegen = true
	}
}

// CheckRegeneration rebuilds the object cache if settings changed.
func (r *Renderer) CheckRegeneration() {
	if r.needsRegen {
		r.regenerate()
	}
}

// Update advances the animation clock.
func (r *Renderer) Update(dt float32) {
	r.currentTime += dt
}

// Time returns the current animation clock.
func (r *Renderer) Time() float32 {
	return r.currentTime
}

// Objects returns the generated sky objects.
func (r *Renderer) Objects() []Object {
	return r.objects
}

// ObjectCounts returns the per-type counts of the last generation.
func (r *Renderer) ObjectCounts() Counts {
	return r.counts
}

func (r *Renderer) regenerate() {
	baseSeed := r.settings.Seed

	starCount := r.settings.StarCount
	if starCount > MaxStars {
		starCount = MaxStars
	}
	sunCount := r.settings.SunCount
	if sunCount > MaxCelestial {
		sunCount = MaxCelestial
	}
	moonCount := r.settings.MoonCount
	if moonCount > MaxCelestial-sunCount {
		moonCount = MaxCelestial - sunCount
	}

	objects := make([]Object, 0, starCount+sunCount+moonCount)
	for i := uint32(0); i < starCount; i++ {
		objects = append(objects, r.generateObject(baseSeed+i, TypeStar))
	}
	for i := uint32(0); i < sunCount; i++ {
		objects = append(objects, r.generateObject(baseSeed+sunSeedOffset+i, TypeSun))
	}
	for i := uint32(0); i < moonCount; i++ {
		objects = append(objects, r.generateObject(baseSeed+moonSeedOffset+i, TypeMoon))
	}

	r.objects = objects
	r.counts = Counts{Stars: starCount, Suns: sunCount, Moons: moonCount}
	r.needsRegen = false
	logger.Log.Info("Generated sky objects",
		zap.Int("total", len(objects)),
		zap.Uint32("stars", starCount),
		zap.Uint32("suns", sunCount),
		zap.Uint32("moons", moonCount))
}

// generateObject places one object on its type's sky sphere.
func (r *Renderer) generateObject(seed uint32, objType uint32) Object {
	cfg := configFor(objType)

	theta := hash(seed) * 2 * math.Pi
	phi := cfg.phiMin + hash(seed+1)*cfg.phiRange

	x := float32(math.Cos(float64(phi)) * math.Cos(float64(theta)))
	y := float32(math.Sin(float64(phi)))
	z := float32(math.Cos(float64(phi)) * math.Sin(float64(theta)))
	if y < cfg.yMin {
		y = cfg.yMin
	}
	pos := mgl32.Vec3{x, y, z}.Normalize().Mul(cfg.sphereRadius)

	obj := Object{
		Position:   [3]float32{pos.X(), pos.Y(), pos.Z()},
		ObjectType: objType,
	}
	switch objType {
	case TypeSun:
		obj.Size = r.settings.SunSize
		obj.Color = r.settings.SunColor
		obj.ParallaxFactor = r.settings.SunParallax
	case TypeMoon:
		obj.Size = r.settings.MoonSize
		obj.Color = r.settings.MoonColor
		obj.ParallaxFactor = r.settings.MoonParallax
	default:
		obj.Size = r.settings.StarSizeMin + hash(seed+2)*(r.settings.StarSizeMax-r.settings.StarSizeMin)
		obj.Color = r.settings.StarColor
		obj.Seed = hash(seed+3) * 100.0 // twinkle phase
		obj.ParallaxFactor = r.settings.StarParallax
	}
	return obj
}

// WorldPosition resolves an object's world-space position for the given
// camera. The sky sphere follows the camera; a per-type parallax offset
// shifts objects against horizontal camera motion, and the result is
// clamped above the camera horizon.
func WorldPosition(obj *Object, camPos mgl32.Vec3) mgl32.Vec3 {
	world := mgl32.Vec3{
		camPos.X() + obj.Position[0] - camPos.X()*obj.ParallaxFactor,
		camPos.Y() + obj.Position[1],
		camPos.Z() + obj.Position[2] - camPos.Z()*obj.ParallaxFactor,
	}
	minY := camPos.Y() + horizonMargin
	if world.Y() < minY {
		world[1] = minY
	}
	return world
}

// BillboardAxes returns the camera-facing right and up axes for a quad at
// worldPos.
func BillboardAxes(worldPos, camPos mgl32.Vec3) (right, up mgl32.Vec3) {
	forward := camPos.Sub(worldPos)
	if forward.Len() < 1e-6 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	forward = forward.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(forward)
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up = forward.Cross(right)
	return right, up
}

// Shade evaluates an object's color at a point on its billboard quad.
// uv spans [-1, 1] across the quad with (0, 0) at the center. Stars pulse
// with the animation clock; suns render a bright core with a corona;
// moons render a flat disc with a left-to-right gradient. Unknown types
// are fully transparent.
func (r *Renderer) Shade(obj *Object, uv mgl32.Vec2) mgl32.Vec4 {
	dist := uv.Len()
	if dist > 1 {
		return mgl32.Vec4{}
	}

	switch obj.ObjectType {
	case TypeStar:
		pulse := 0.75 + 0.25*float32(math.Sin(float64(r.currentTime*r.settings.StarTwinkleSpeed+obj.Seed)))
		glow := 1 - smoothstep(0, 1, dist)
		a := glow * pulse
		return mgl32.Vec4{obj.Color[0] * pulse, obj.Color[1] * pulse, obj.Color[2] * pulse, a}
	case TypeSun:
		core := 1 - smoothstep(0, 0.3, dist)
		corona := float32(math.Pow(float64(1-dist), 3))
		intensity := core + corona*0.6
		if intensity > 1 {
			intensity = 1
		}
		return mgl32.Vec4{obj.Color[0], obj.Color[1], obj.Color[2], intensity}
	case TypeMoon:
		// Left-to-right gradient across the disc
		shade := 0.35 + 0.65*(uv.X()*0.5+0.5)
		edge := 1 - smoothstep(0.9, 1.0, dist)
		return mgl32.Vec4{obj.Color[0] * shade, obj.Color[1] * shade, obj.Color[2] * shade, edge}
	default:
		return mgl32.Vec4{}
	}
}

// hash maps an integer to [0, 1].
func hash(n uint32) float32 {
	x := n
	x = ((x >> 16) ^ x) * 0x45d9f3b
	x = ((x >> 16) ^ x) * 0x45d9f3b
	x = (x >> 16) ^ x
	return float32(x) / float32(math.MaxUint32)
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

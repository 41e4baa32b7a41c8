// Package particles advances the weather particle pool: a fixed-capacity,
// double-buffered set of rain or snow particles simulated around the camera.
// Each step is a pure state transition; a particle's next state depends only
// on its own previous state, the shared parameters, and index-derived
// randomness.
package particles

import (
	"math"

	"Terrascape/internal/logger"

	"github.com/alitto/pond/v2"
	"github.com/aquilax/go-perlin"
	mgl32 "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	// MaxParticles is the pool ceiling.
	MaxParticles = 50000

	// goldenRatio staggers the initial particle distribution.
	goldenRatio = 0.618034

	// densityMultiplier converts the density setting to a particle count.
	densityMultiplier = 10000.0

	// dispatchChunk is the index range handled per worker task.
	dispatchChunk = 256

	// respawnDistanceFactor: particles farther than this multiple of the
	// spawn radius from the camera are recycled.
	respawnDistanceFactor = 1.5

	// despawnBelowCamera is how far under the camera a particle may fall.
	despawnBelowCamera = 50.0

	// timeWrap keeps the respawn hash inputs small; long sessions would
	// otherwise lose hash precision.
	timeWrap = 1000.0
)

// Particle types.
const (
	TypeRain uint32 = 0
	TypeSnow uint32 = 1
)

// Settings holds the particle parameters that can be modified at runtime.
type Settings struct {
	ParticleType  uint32     `json:"particle_type"`
	Density       float32    `json:"density"`
	MaxParticles  uint32     `json:"max_particles"`
	Speed         float32    `json:"speed"`
	WindX         float32    `json:"wind_x"`
	WindZ         float32    `json:"wind_z"`
	ParticleSize  float32    `json:"particle_size"`
	ParticleColor [4]float32 `json:"particle_color"`
	SpawnHeight   float32    `json:"spawn_height"`
	SpawnRadius   float32    `json:"spawn_radius"`
}

// DefaultSettings returns the disabled-weather defaults.
func DefaultSettings() Settings {
	return Settings{
		ParticleType:  TypeRain,
		Density:       0.0,
		MaxParticles:  10000,
		Speed:         25.0,
		WindX:         0.0,
		WindZ:         0.0,
		ParticleSize:  0.5,
		ParticleColor: [4]float32{0.7, 0.8, 0.9, 0.6},
		SpawnHeight:   100.0,
		SpawnRadius:   300.0,
	}
}

// Particle layout matches the simulation kernel's buffer element
// byte-for-byte; vec3 fields carry 16-byte alignment padding.
type Particle struct {
	Position [3]float32 // offset 0
	Pad1     float32    // offset 12, aligns velocity
	Velocity [3]float32 // offset 16
	Life     float32    // offset 28
	Size     float32    // offset 32
	Pad2     [3]float32 // offset 36, pads struct to 48 bytes
}

// SimParams is the per-step uniform block for the simulation kernel.
type SimParams struct {
	DeltaTime     float32
	Time          float32
	Pad1          [2]float32 // aligns CameraPos to offset 16
	CameraPos     [3]float32
	WindX         float32
	WindZ         float32
	SpawnHeight   float32
	SpawnRadius   float32
	DespawnHeight float32
	ParticleType  uint32
	Speed         float32
	ParticleCount uint32
	Pad           float32
}

// System owns the double-buffered particle pool.
type System struct {
	buffers  [2][]Particle
	current  int
	settings Settings

	activeCount uint32
	currentTime float32
	initialized bool

	drift *perlin.Perlin
	pool  pond.Pool
}

// NewSystem allocates both particle buffers at the pool ceiling.
func NewSystem(pool pond.Pool) *System {
	return &System{
		buffers: [2][]Particle{
			make([]Particle, MaxParticles),
			make([]Particle, MaxParticles),
		},
		settings: DefaultSettings(),
		// Fixed-seed drift field so snow motion is reproducible
		drift: perlin.NewPerlin(2, 2, 3, 1987),
		pool:  pool,
	}
}

// Settings returns the last-applied settings.
func (s *System) Settings() Settings {
	return s.settings
}

// UpdateSettings validates and applies new settings. Invalid values are
// rejected and the previous settings stay in effect. Any accepted change
// reinitializes the pool so no stale state survives.
func (s *System) UpdateSettings(settings Settings) {
	if settings.Density != settings.Density {
		logger.Log.Warn("Invalid density value (NaN), ignoring settings update")
		return
	}
	if settings.SpawnRadius <= 0 || settings.SpawnHeight <= 0 {
		logger.Log.Warn("Invalid spawn radius or height, ignoring settings update",
			zap.Float32("radius", settings.SpawnRadius),
			zap.Float32("height", settings.SpawnHeight))
		return
	}
	if settings.Speed < 0 {
		logger.Log.Warn("Negative speed, substituting zero", zap.Float32("speed", settings.Speed))
		settings.Speed = 0
	}
	s.settings = settings
	s.initialized = false
}

// ActiveCount returns the number of simulated particles.
func (s *System) ActiveCount() uint32 {
	return s.activeCount
}

// Particles returns the most recently written particle state.
func (s *System) Particles() []Particle {
	return s.buffers[s.current][:s.activeCount]
}

// particleCount maps density to an active count, capped by the settings
// limit and the pool ceiling.
func (s *System) particleCount() uint32 {
	if s.settings.Density <= 0 {
		return 0
	}
	count := uint32(s.settings.Density * densityMultiplier)
	if count > s.settings.MaxParticles {
		count = s.settings.MaxParticles
	}
	if count > MaxParticles {
		count = MaxParticles
	}
	return count
}

// initialize fills both buffers with staggered particles around the camera
// so the first simulated frames already look settled.
func (s *System) initialize(camPos mgl32.Vec3) {
	count := s.particleCount()
	s.activeCount = count
	s.initialized = true
	if count == 0 {
		return
	}

	st := s.settings
	for i := uint32(0); i < count; i++ {
		seed := float64(i) * goldenRatio
		angle := seed * 2 * math.Pi * 100
		radius := fract(seed*123.456) * float64(st.SpawnRadius)
		height := float64(camPos.Y()) + float64(st.SpawnHeight)*fract(seed*789.0)

		var vel [3]float32
		switch st.ParticleType {
		case TypeRain:
			vel = [3]float32{st.WindX * 0.1, -st.Speed, st.WindZ * 0.1}
		case TypeSnow:
			vel = [3]float32{st.WindX * 0.05, -st.Speed * 0.3, st.WindZ * 0.05}
		default:
			vel = [3]float32{0, -st.Speed, 0}
		}

		p := Particle{
			Position: [3]float32{
				camPos.X() + float32(math.Cos(angle)*radius),
				float32(height),
				camPos.Z() + float32(math.Sin(angle)*radius),
			},
			Velocity: vel,
			Life:     1.0 + float32(fract(seed*999.0))*7.0, // staggered respawning
			Size:     0.8 + float32(fract(seed*123.0))*0.4,
		}
		s.buffers[0][i] = p
		s.buffers[1][i] = p
	}
	logger.Log.Info("Initialized particles", zap.Uint32("count", count))
}

// Step advances the pool by dt. The previous buffer is read, the next buffer
// written, then the buffers swap; the step never mutates what it reads.
func (s *System) Step(dt float32, camPos mgl32.Vec3) {
	s.currentTime += dt

	if camPos.X() != camPos.X() || camPos.Y() != camPos.Y() || camPos.Z() != camPos.Z() {
		logger.Log.Warn("Invalid camera position (NaN), skipping particle step")
		return
	}

	if s.settings.Density <= 0 {
		s.activeCount = 0
		return
	}
	if !s.initialized {
		s.initialize(camPos)
	}
	if s.activeCount == 0 {
		return
	}

	if dt > 0.1 {
		dt = 0.1
	}
	sp := SimParams{
		DeltaTime:     dt,
		Time:          s.currentTime,
		CameraPos:     [3]float32{camPos.X(), camPos.Y(), camPos.Z()},
		WindX:         s.settings.WindX,
		WindZ:         s.settings.WindZ,
		SpawnHeight:   s.settings.SpawnHeight,
		SpawnRadius:   s.settings.SpawnRadius,
		DespawnHeight: camPos.Y() - despawnBelowCamera,
		ParticleType:  s.settings.ParticleType,
		Speed:         s.settings.Speed,
		ParticleCount: s.activeCount,
	}

	src := s.buffers[s.current]
	dst := s.buffers[1-s.current]
	n := int(s.activeCount)

	run := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = stepParticle(src[i], i, &sp, s.drift)
		}
	}

	if s.pool == nil {
		run(0, n)
	} else {
		group := s.pool.NewGroup()
		for lo := 0; lo < n; lo += dispatchChunk {
			lo := lo
			hi := lo + dispatchChunk
			if hi > n {
				hi = n
			}
			group.Submit(func() { run(lo, hi) })
		}
		group.Wait()
	}

	s.current = 1 - s.current
}

// stepParticle is the per-element simulation kernel.
func stepParticle(p Particle, idx int, sp *SimParams, drift *perlin.Perlin) Particle {
	dt := sp.DeltaTime

	p.Position[0] += p.Velocity[0] * dt
	p.Position[1] += p.Velocity[1] * dt
	p.Position[2] += p.Velocity[2] * dt
	p.Life -= dt

	dx := p.Position[0] - sp.CameraPos[0]
	dz := p.Position[2] - sp.CameraPos[2]
	horizSq := dx*dx + dz*dz
	maxDist := sp.SpawnRadius * respawnDistanceFactor

	if p.Life <= 0 ||
		p.Position[1] < sp.DespawnHeight ||
		horizSq > maxDist*maxDist ||
		nonFinite(&p) {
		return respawn(idx, sp, drift)
	}

	// Continuous wind acceleration; snow couples weakly and carries light
	// velocity damping so it drifts instead of accelerating forever.
	switch sp.ParticleType {
	case TypeSnow:
		p.Velocity[0] += sp.WindX * 0.35 * dt
		p.Velocity[2] += sp.WindZ * 0.35 * dt
		damp := 1 - 0.5*dt
		p.Velocity[0] *= damp
		p.Velocity[2] *= damp
		// Smooth horizontal drift from the noise field
		t := float64(sp.Time) * 0.3
		p.Velocity[0] += float32(drift.Noise2D(t, float64(idx)*0.017)) * 2.5 * dt
		p.Velocity[2] += float32(drift.Noise2D(t+57.1, float64(idx)*0.017)) * 2.5 * dt
	default:
		p.Velocity[0] += sp.WindX * dt
		p.Velocity[2] += sp.WindZ * dt
	}

	return p
}

// respawn rebuilds a particle near the camera. The hash input wraps time
// modulo timeWrap so long sessions keep full randomness precision.
func respawn(idx int, sp *SimParams, drift *perlin.Perlin) Particle {
	t := float32(math.Mod(float64(sp.Time), timeWrap))
	base := uint32(idx)*2654435761 + uint32(t*8192.0)

	angle := hash01(base) * 2 * math.Pi
	radius := hash01(base+1) * sp.SpawnRadius
	height := sp.CameraPos[1] + hash01(base+2)*sp.SpawnHeight

	x := sp.CameraPos[0] + float32(math.Cos(float64(angle)))*radius
	z := sp.CameraPos[2] + float32(math.Sin(float64(angle)))*radius

	var vel [3]float32
	switch sp.ParticleType {
	case TypeSnow:
		// Slow fall with wind-and-noise-driven horizontal motion
		n := float32(drift.Noise2D(float64(t)*0.5, float64(idx)*0.031))
		vel = [3]float32{
			sp.WindX*0.5 + n*2.0,
			-sp.Speed * 0.3,
			sp.WindZ*0.5 - n*1.3,
		}
	default:
		// Rain: fast, mostly downward, half-strength wind coupling
		vel = [3]float32{
			sp.WindX * 0.5,
			-sp.Speed,
			sp.WindZ * 0.5,
		}
	}

	return Particle{
		Position: [3]float32{x, height, z},
		Velocity: vel,
		Life:     1.0 + hash01(base+3)*7.0,
		Size:     0.8 + hash01(base+4)*0.4,
	}
}

// nonFinite flags NaN components via self-inequality, plus infinities.
func nonFinite(p *Particle) bool {
	check := func(v float32) bool {
		return v != v || math.IsInf(float64(v), 0)
	}
	for i := 0; i < 3; i++ {
		if check(p.Position[i]) || check(p.Velocity[i]) {
			return true
		}
	}
	return false
}

// hash01 maps an integer to [0, 1).
func hash01(n uint32) float32 {
	n = ((n >> 16) ^ n) * 0x45d9f3b
	n = ((n >> 16) ^ n) * 0x45d9f3b
	n = (n >> 16) ^ n
	return float32(n) / float32(math.MaxUint32)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

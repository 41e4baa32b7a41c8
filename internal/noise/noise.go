// Package noise implements the deterministic noise primitives used by the
// terrain generator: seeded gradient noise on an integer lattice, a fractal
// sum, ridge shaping, and domain warping. The same (position, seed,
// parameters) always produces the same value, so generated terrain is exactly
// reproducible.
package noise

import "math"

// Lacunarity is the per-octave frequency multiplier of the fractal sum.
const Lacunarity = 2.0

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3. It removes
// second-derivative discontinuities at lattice boundaries.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 mixes lattice coordinates and a seed with a SplitMix64-style
// avalanche. Stable across runs and platforms for the same inputs.
func hash2(x, z int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// gradients are the eight unit-ish lattice gradient directions. Picking from
// a fixed set keeps the noise statistically even without a permutation table.
var gradients = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{0.7071, 0.7071}, {-0.7071, 0.7071}, {0.7071, -0.7071}, {-0.7071, -0.7071},
}

// grad returns the dot product of the hashed lattice gradient at (ix, iz)
// with the offset vector (dx, dz).
func grad(ix, iz int64, seed int64, dx, dz float64) float64 {
	g := gradients[hash2(ix, iz, seed)&7]
	return g[0]*dx + g[1]*dz
}

// Gradient2D returns seeded gradient noise at (x, z), roughly in [-1, 1].
func Gradient2D(x, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	ix := int64(x0)
	iz := int64(z0)

	dx := x - x0
	dz := z - z0

	u := fade(dx)
	v := fade(dz)

	n00 := grad(ix, iz, seed, dx, dz)
	n10 := grad(ix+1, iz, seed, dx-1, dz)
	n01 := grad(ix, iz+1, seed, dx, dz-1)
	n11 := grad(ix+1, iz+1, seed, dx-1, dz-1)

	// Scale so the practical output range fills [-1, 1]
	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v) * 1.4142
}

// Fractal2D sums octaves of gradient noise with decreasing amplitude
// (persistence) and increasing frequency (Lacunarity), normalized back to
// roughly [-1, 1]. Octave counts below one are treated as one.
func Fractal2D(x, z float64, seed int64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += Gradient2D(x*frequency, z*frequency, seed+int64(i)*131) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Ridge folds a signed noise value into a ridge profile: 1 at the zero
// crossings of the source field, falling off toward its extremes.
func Ridge(v float64) float64 {
	return 1 - math.Abs(v)
}

// Warp2D perturbs a sampling coordinate with two independent secondary noise
// fields before the primary lookup. strength is in sampling-space units.
func Warp2D(x, z float64, seed int64, strength float64) (float64, float64) {
	wx := Gradient2D(x+31.41, z+27.18, seed+977)
	wz := Gradient2D(x-47.72, z+13.37, seed+1571)
	return x + wx*strength, z + wz*strength
}

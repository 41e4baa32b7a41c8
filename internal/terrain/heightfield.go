package terrain

import (
	"math"

	"Terrascape/internal/noise"

	"github.com/alitto/pond/v2"
)

// Chunk grid constants. Every chunk is a fixed grid of height samples
// covering a fixed span of world units.
const (
	ChunkSize      = 64    // samples per edge
	ChunkWorldSize = 256.0 // world units per edge
)

// warpUnit converts the warp-strength setting into sampling-space units.
const warpUnit = 0.01

// smooth01 is a smoothed threshold of v over [lo, hi].
func smooth01(v, lo, hi float64) float64 {
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func mix(a, b, t float64) float64 {
	return a + t*(b-a)
}

// HeightAt evaluates the configured pattern at a world position. The result
// is fully determined by (position, settings); repeated calls with identical
// inputs return identical heights.
func HeightAt(worldX, worldZ float64, s Settings) float32 {
	if s.Octaves < 1 {
		s.Octaves = 1
	}

	seed := int64(s.Seed)
	// Two independent linear scalings keep per-seed offsets small enough to
	// stay in a numerically stable noise region.
	offX := float64(s.Seed) * 13.37
	offZ := float64(s.Seed) * 7.77

	scale := float64(s.TerrainScale)
	sx := worldX*scale + offX
	sz := worldZ*scale + offZ

	octaves := int(s.Octaves)
	rough := float64(s.Roughness)
	variance := float64(s.HeightVariance)
	warp := float64(s.WarpStrength) * warpUnit

	fbm := func(x, z float64, seedOff int64) float64 {
		return noise.Fractal2D(x, z, seed+seedOff, octaves, rough)
	}

	var hn float64
	switch s.PatternType {
	case PatternRidged:
		wx, wz := noise.Warp2D(sx, sz, seed, warp)
		r := noise.Ridge(fbm(wx, wz, 0))
		// Sharper peaks as variance rises
		hn = math.Pow(r, 1.0+2.0*variance)*1.1 - 0.25

	case PatternIslands:
		// Low-frequency mask fades land toward the ocean baseline
		m := fbm(sx*0.35+97.3, sz*0.35-41.9, 811)
		mask := smooth01(m*0.5+0.5, 0.35, 0.65)
		wx, wz := noise.Warp2D(sx, sz, seed, warp)
		land := 0.45 + 0.5*variance*fbm(wx, wz, 0)
		hn = mix(-0.45, land, mask)

	case PatternValleys:
		wx, wz := noise.Warp2D(sx, sz, seed, warp)
		base := fbm(wx, wz, 0)*0.4 + 0.35
		r := noise.Ridge(fbm(sx*1.7+5.2, sz*1.7-3.1, 407))
		carve := math.Pow(r, 2.0+2.0*variance) * (0.45 + 0.3*variance)
		hn = base - carve

	case PatternWarped:
		wx, wz := noise.Warp2D(sx, sz, seed, warp)
		wx, wz = noise.Warp2D(wx, wz, seed+51, warp*0.5)
		hn = fbm(wx, wz, 0)*(0.4+0.5*variance) + 0.2

	case PatternTerraced:
		wx, wz := noise.Warp2D(sx, sz, seed, warp)
		base := fbm(wx, wz, 0)*0.5 + 0.3
		steps := 3 + int(s.Seed%5) + int(variance*10)
		hn = math.Floor(base*float64(steps)) / float64(steps)

	default:
		// Base warped fractal; also the fallback for unknown patterns
		wx, wz := noise.Warp2D(sx, sz, seed, warp)
		hn = fbm(wx, wz, 0)*(0.4+0.45*variance) + 0.15
	}

	return float32(hn * float64(s.HeightScale))
}

// GenerateHeights fills dst (ChunkSize*ChunkSize samples, row-major) with
// heights for the chunk whose world origin is (offsetX, offsetZ). Rows are
// independent, so they are dispatched in parallel across the pool. dst is
// the only output; the kernel has no other side effects.
func GenerateHeights(dst []float32, offsetX, offsetZ float32, s Settings, pool pond.Pool) {
	step := float64(ChunkWorldSize) / float64(ChunkSize-1)
	run := func(row int) {
		wz := float64(offsetZ) + float64(row)*step
		base := row * ChunkSize
		for col := 0; col < ChunkSize; col++ {
			wx := float64(offsetX) + float64(col)*step
			dst[base+col] = HeightAt(wx, wz, s)
		}
	}

	if pool == nil {
		for row := 0; row < ChunkSize; row++ {
			run(row)
		}
		return
	}

	group := pool.NewGroup()
	for row := 0; row < ChunkSize; row++ {
		row := row
		group.Submit(func() { run(row) })
	}
	group.Wait()
}

package terrain

import (
	"math"

	"github.com/alitto/pond/v2"
	mgl32 "github.com/go-gl/mathgl/mgl32"
)

// sunDir is the fixed directional light.
var sunDir = mgl32.Vec3{0.35, 0.8, 0.45}.Normalize()

// maxFogBlend caps how much of the final color fog may replace.
const maxFogBlend = 0.95

// fogAltitudeFalloff attenuates fog as the viewer climbs, so distant terrain
// reappears at altitude.
const fogAltitudeFalloff = 0.002

// bandEdges are the normalized-height breakpoints of the eight color bands:
// abyss, deep water, shallow water, sand/grass transition, grassland,
// grass/rock transition, rock, rock/snow transition.
var bandEdges = [9]float32{-0.50, -0.30, -0.12, 0.0, 0.08, 0.30, 0.45, 0.70, 1.0}

func bandColors(s *Settings) [9][3]float32 {
	return [9][3]float32{
		s.ColorAbyss,
		s.ColorDeepWater,
		s.ColorShallowWater,
		s.ColorSand,
		s.ColorGrass,
		s.ColorGrass,
		s.ColorRock,
		s.ColorRock,
		s.ColorSnow,
	}
}

func vec3(c [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{c[0], c[1], c[2]}
}

func mixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func smoothstep32(lo, hi, v float32) float32 {
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Normal reconstructs the surface normal at (row, col) by central difference
// of the four axis neighbors, clamped at chunk edges.
func Normal(heights []float32, row, col int) mgl32.Vec3 {
	clampIdx := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= ChunkSize {
			return ChunkSize - 1
		}
		return v
	}
	at := func(r, c int) float32 {
		return heights[clampIdx(r)*ChunkSize+clampIdx(c)]
	}

	step := float32(ChunkWorldSize) / float32(ChunkSize-1)
	dx := at(row, col+1) - at(row, col-1)
	dz := at(row+1, col) - at(row-1, col)

	return mgl32.Vec3{-dx, 2 * step, -dz}.Normalize()
}

// bandColor buckets a normalized height into its band and interpolates
// between the band's two theme colors.
func bandColor(hn float32, colors *[9][3]float32) mgl32.Vec3 {
	if hn <= bandEdges[0] {
		return vec3(colors[0])
	}
	for i := 0; i < len(bandEdges)-1; i++ {
		if hn < bandEdges[i+1] {
			t := (hn - bandEdges[i]) / (bandEdges[i+1] - bandEdges[i])
			return mixVec3(vec3(colors[i]), vec3(colors[i+1]), t)
		}
	}
	return vec3(colors[len(colors)-1])
}

// Shade computes the final vertex color: banded base color, slope and summit
// blending, wrapped Lambert lighting, then distance fog toward the sky
// gradient.
func Shade(height float32, normal mgl32.Vec3, worldPos, camPos mgl32.Vec3, s *Settings) mgl32.Vec3 {
	hn := float32(0)
	if s.HeightScale != 0 {
		hn = height / s.HeightScale
	}
	colors := bandColors(s)
	color := bandColor(hn, &colors)

	// Steep faces above water read as rock
	slope := 1 - normal.Y()
	if hn > 0 {
		color = mixVec3(color, vec3(s.ColorRock), smoothstep32(0.25, 0.55, slope))
	}

	// Flat near-summit areas collect snow
	if hn > 0.55 {
		snow := smoothstep32(0.6, 0.85, hn) * (1 - smoothstep32(0.05, 0.2, slope))
		color = mixVec3(color, vec3(s.ColorSnow), snow)
	}

	// Quarter-wrapped Lambert keeps shadowed faces readable
	wrapped := (normal.Dot(sunDir) + 0.3) / 1.3
	if wrapped < 0 {
		wrapped = 0
	}
	light := s.Ambient + (1-s.Ambient)*wrapped
	lit := color.Mul(light)

	// Fog toward the view-dependent sky gradient
	toVertex := worldPos.Sub(camPos)
	dist := toVertex.Len()
	fog := (dist - s.FogStart) / s.FogDistance
	if fog < 0 {
		fog = 0
	}
	elevation := camPos.Y()
	if elevation < 0 {
		elevation = 0
	}
	fog /= 1 + elevation*fogAltitudeFalloff
	if fog > maxFogBlend {
		fog = maxFogBlend
	}

	var up float32
	if dist > 0 {
		up = toVertex.Y() / dist
	}
	if up < 0 {
		up = 0
	}
	skyColor := mixVec3(vec3(s.ColorSkyHorizon), vec3(s.ColorSkyTop), up)

	return mixVec3(lit, skyColor, fog)
}

// ShadeHeights shades a full chunk into dst (ChunkSize*ChunkSize RGB values,
// row-major). Each vertex is independent; rows are dispatched across the
// pool.
func ShadeHeights(dst []mgl32.Vec3, heights []float32, offsetX, offsetZ float32, camPos mgl32.Vec3, s Settings, pool pond.Pool) {
	step := float32(ChunkWorldSize) / float32(ChunkSize-1)
	run := func(row int) {
		for col := 0; col < ChunkSize; col++ {
			i := row*ChunkSize + col
			world := mgl32.Vec3{
				offsetX + float32(col)*step,
				heights[i],
				offsetZ + float32(row)*step,
			}
			dst[i] = Shade(heights[i], Normal(heights, row, col), world, camPos, &s)
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

// Finite reports whether every sample in the buffer is a finite number.
func Finite(heights []float32) bool {
	for _, h := range heights {
		f := float64(h)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

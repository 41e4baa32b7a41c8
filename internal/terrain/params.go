package terrain

// Kernel parameter blocks. Field order and the explicit padding fields match
// the layout the compute/render kernels expect byte-for-byte; reordering any
// field breaks interpretation on the kernel side.

// ComputeParams is the per-chunk uniform block for the height kernel.
type ComputeParams struct {
	ChunkOffset    [2]float32
	TerrainScale   float32
	HeightScale    float32
	Octaves        uint32
	WarpStrength   float32
	HeightVariance float32
	Roughness      float32
	PatternType    uint32
	Seed           uint32
	Pad            [2]float32 // align block to 16 bytes
}

// ColorParams is the shading uniform block. Colors are widened to vec4 for
// 16-byte alignment; w is unused.
type ColorParams struct {
	ColorAbyss        [4]float32
	ColorDeepWater    [4]float32
	ColorShallowWater [4]float32
	ColorSand         [4]float32
	ColorGrass        [4]float32
	ColorRock         [4]float32
	ColorSnow         [4]float32
	ColorSky          [4]float32
	ColorSkyTop       [4]float32
	ColorSkyHorizon   [4]float32
	Ambient           float32
	FogStart          float32
	FogDistance       float32
	Pad               float32
}

// ChunkUniform carries a chunk's world offset to the vertex stage.
type ChunkUniform struct {
	ChunkOffset [2]float32
	Pad         [2]float32
}

func rgbToRGBA(rgb [3]float32) [4]float32 {
	return [4]float32{rgb[0], rgb[1], rgb[2], 1.0}
}

// PackComputeParams builds the height-kernel uniform block for a chunk.
func PackComputeParams(offset [2]float32, s Settings) ComputeParams {
	return ComputeParams{
		ChunkOffset:    offset,
		TerrainScale:   s.TerrainScale,
		HeightScale:    s.HeightScale,
		Octaves:        s.Octaves,
		WarpStrength:   s.WarpStrength,
		HeightVariance: s.HeightVariance,
		Roughness:      s.Roughness,
		PatternType:    uint32(s.PatternType),
		Seed:           s.Seed,
	}
}

// PackColorParams builds the shading uniform block from settings.
func PackColorParams(s Settings) ColorParams {
	return ColorParams{
		ColorAbyss:        rgbToRGBA(s.ColorAbyss),
		ColorDeepWater:    rgbToRGBA(s.ColorDeepWater),
		ColorShallowWater: rgbToRGBA(s.ColorShallowWater),
		ColorSand:         rgbToRGBA(s.ColorSand),
		ColorGrass:        rgbToRGBA(s.ColorGrass),
		ColorRock:         rgbToRGBA(s.ColorRock),
		ColorSnow:         rgbToRGBA(s.ColorSnow),
		ColorSky:          rgbToRGBA(s.ColorSky),
		ColorSkyTop:       rgbToRGBA(s.ColorSkyTop),
		ColorSkyHorizon:   rgbToRGBA(s.ColorSkyHorizon),
		Ambient:           s.Ambient,
		FogStart:          s.FogStart,
		FogDistance:       s.FogDistance,
	}
}

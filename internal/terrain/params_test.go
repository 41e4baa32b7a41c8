package terrain

import (
	"testing"
	"unsafe"
)

// The kernel-side interpretation of these blocks depends on exact field
// order and padding; lock the layouts down.

func TestComputeParamsLayout(t *testing.T) {
	var p ComputeParams
	if got := unsafe.Sizeof(p); got != 48 {
		t.Errorf("ComputeParams size = %d, want 48", got)
	}
	if off := unsafe.Offsetof(p.Octaves); off != 16 {
		t.Errorf("Octaves offset = %d, want 16", off)
	}
	if off := unsafe.Offsetof(p.Seed); off != 36 {
		t.Errorf("Seed offset = %d, want 36", off)
	}
}

func TestColorParamsLayout(t *testing.T) {
	var p ColorParams
	if got := unsafe.Sizeof(p); got != 176 {
		t.Errorf("ColorParams size = %d, want 176", got)
	}
	if off := unsafe.Offsetof(p.Ambient); off != 160 {
		t.Errorf("Ambient offset = %d, want 160", off)
	}
}

func TestChunkUniformLayout(t *testing.T) {
	var u ChunkUniform
	if got := unsafe.Sizeof(u); got != 16 {
		t.Errorf("ChunkUniform size = %d, want 16", got)
	}
}

func TestPackComputeParams(t *testing.T) {
	s := DefaultSettings()
	s.Seed = 42
	s.PatternType = PatternIslands

	p := PackComputeParams([2]float32{256, -256}, s)

	if p.ChunkOffset != [2]float32{256, -256} {
		t.Errorf("Wrong chunk offset: %v", p.ChunkOffset)
	}
	if p.Seed != 42 || p.PatternType != uint32(PatternIslands) {
		t.Error("Generation fields not packed")
	}
}

func TestPackColorParamsAlphaOne(t *testing.T) {
	p := PackColorParams(DefaultSettings())

	if p.ColorGrass[3] != 1.0 {
		t.Error("RGB colors should widen to RGBA with alpha 1")
	}
	if p.FogStart != DefaultFogStart || p.FogDistance != DefaultFogDistance {
		t.Error("Fog parameters not packed")
	}
}

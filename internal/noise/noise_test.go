package noise

import (
	"math"
	"testing"
)

func TestGradient2DDeterministic(t *testing.T) {
	a := Gradient2D(12.34, -56.78, 42)
	b := Gradient2D(12.34, -56.78, 42)

	if a != b {
		t.Errorf("Same inputs produced different values: %v vs %v", a, b)
	}
}

func TestGradient2DSeedChangesOutput(t *testing.T) {
	a := Gradient2D(3.5, 7.25, 1)
	b := Gradient2D(3.5, 7.25, 2)

	if a == b {
		t.Error("Different seeds should produce different noise")
	}
}

func TestGradient2DRange(t *testing.T) {
	for i := 0; i < 2000; i++ {
		x := float64(i) * 0.173
		z := float64(i) * -0.311
		v := Gradient2D(x, z, 7)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Non-finite noise at (%v, %v)", x, z)
		}
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Noise out of expected range at (%v, %v): %v", x, z, v)
		}
	}
}

func TestFractal2DDeterministic(t *testing.T) {
	a := Fractal2D(1.1, 2.2, 99, 5, 0.5)
	b := Fractal2D(1.1, 2.2, 99, 5, 0.5)

	if a != b {
		t.Errorf("Fractal sum not deterministic: %v vs %v", a, b)
	}
}

func TestFractal2DClampsOctaves(t *testing.T) {
	v := Fractal2D(0.5, 0.5, 1, 0, 0.5)
	w := Fractal2D(0.5, 0.5, 1, 1, 0.5)

	if v != w {
		t.Error("Zero octaves should behave like a single octave")
	}
}

func TestRidge(t *testing.T) {
	if Ridge(0) != 1 {
		t.Error("Ridge peaks at zero crossings")
	}
	if Ridge(1) != 0 || Ridge(-1) != 0 {
		t.Error("Ridge falls to zero at extremes")
	}
}

func TestWarp2DDeterministic(t *testing.T) {
	x1, z1 := Warp2D(5.0, 6.0, 3, 0.4)
	x2, z2 := Warp2D(5.0, 6.0, 3, 0.4)

	if x1 != x2 || z1 != z2 {
		t.Error("Warp should be deterministic")
	}
}

func TestWarp2DZeroStrength(t *testing.T) {
	x, z := Warp2D(5.0, 6.0, 3, 0)

	if x != 5.0 || z != 6.0 {
		t.Errorf("Zero strength should not move the coordinate, got (%v, %v)", x, z)
	}
}

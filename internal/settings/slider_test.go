package settings

import (
	"math"
	"testing"
)

func TestSliderRoundTrip(t *testing.T) {
	m := SliderMapping{Min: 10, Max: 2000, Exp: 2.0}
	for _, pos := range []float32{10, 100, 500, 1234, 2000} {
		v := m.ToValue(pos)
		back := m.ToPosition(v)
		if math.Abs(float64(back-pos)) > 0.01 {
			t.Errorf("Round trip for %f gave %f", pos, back)
		}
	}
}

func TestSliderEndpointsExact(t *testing.T) {
	m := SliderMapping{Min: 0.0001, Max: 0.01, Exp: 2.0}
	if m.ToValue(m.Min) != m.Min {
		t.Error("Slider minimum must map to parameter minimum")
	}
	if math.Abs(float64(m.ToValue(m.Max)-m.Max)) > 1e-9 {
		t.Error("Slider maximum must map to parameter maximum")
	}
}

func TestSliderClampsOutOfRange(t *testing.T) {
	m := SliderMapping{Min: 0, Max: 100, Exp: 1.5}
	if v := m.ToValue(-50); v != 0 {
		t.Errorf("Below-range position must clamp to minimum, got %f", v)
	}
	if v := m.ToValue(500); v != 100 {
		t.Errorf("Above-range position must clamp to maximum, got %f", v)
	}
	if p := m.ToPosition(-1); p != 0 {
		t.Errorf("Below-range value must clamp to minimum, got %f", p)
	}
}

func TestSliderNonlinearity(t *testing.T) {
	m := SliderMapping{Min: 0, Max: 1000, Exp: 2.0}
	// Exponent > 1 means the midpoint position maps below the midpoint
	// value, giving fine control over small values.
	if v := m.ToValue(500); v >= 500 {
		t.Errorf("Midpoint must map below linear midpoint, got %f", v)
	}
}

func TestRegistryFallsBackToIdentity(t *testing.T) {
	r := NewSliderRegistry()
	if v := r.ToValue("unregistered", 42); v != 42 {
		t.Errorf("Unregistered name must pass through, got %f", v)
	}
	if p := r.ToPosition("unregistered", 7); p != 7 {
		t.Errorf("Unregistered name must pass through, got %f", p)
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	r := NewSliderRegistry()
	names := r.Names()
	want := []string{"height_scale", "terrain_scale", "warp_strength", "particle_density", "fog_distance"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Name %d: expected %q, got %q", i, want[i], names[i])
		}
	}

	// Re-registering must not duplicate or reorder.
	r.Register("height_scale", SliderMapping{Min: 1, Max: 10, Exp: 1.0})
	if len(r.Names()) != len(want) || r.Names()[0] != "height_scale" {
		t.Error("Re-registering must keep the original position")
	}
}

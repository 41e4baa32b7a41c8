package settings

import "math"

// SliderMapping defines a nonlinear curve between a UI slider position and
// a parameter value, both expressed in the parameter's [Min, Max] range.
// A position p maps to Min + ((p−Min)/(Max−Min))^Exp · (Max−Min); the
// inverse applies 1/Exp. Exp > 1 concentrates slider travel on small
// values, which suits parameters like height scale that span orders of
// magnitude.
type SliderMapping struct {
	Min float32
	Max float32
	Exp float64
}

// ToValue converts a slider position to a parameter value. Positions are
// clamped into range first.
func (m SliderMapping) ToValue(pos float32) float32 {
	t := m.normalize(pos)
	return m.Min + float32(math.Pow(t, m.Exp))*(m.Max-m.Min)
}

// ToPosition converts a parameter value back to a slider position. Values
// are clamped into range first, so the round trip is total.
func (m SliderMapping) ToPosition(value float32) float32 {
	t := m.normalize(value)
	return m.Min + float32(math.Pow(t, 1/m.Exp))*(m.Max-m.Min)
}

func (m SliderMapping) normalize(v float32) float64 {
	if v < m.Min {
		v = m.Min
	}
	if v > m.Max {
		v = m.Max
	}
	if m.Max == m.Min {
		return 0
	}
	return float64((v - m.Min) / (m.Max - m.Min))
}

// SliderRegistry holds the mappings for parameters with nonlinear sliders,
// preserving insertion order for UI layout. Parameters without an entry map
// linearly.
type SliderRegistry struct {
	order    []string
	mappings map[string]SliderMapping
}

// NewSliderRegistry returns the standard parameter mappings.
func NewSliderRegistry() *SliderRegistry {
	r := &SliderRegistry{mappings: make(map[string]SliderMapping)}
	r.Register("height_scale", SliderMapping{Min: 10, Max: 2000, Exp: 2.0})
	r.Register("terrain_scale", SliderMapping{Min: 0.0001, Max: 0.01, Exp: 2.0})
	r.Register("warp_strength", SliderMapping{Min: 0, Max: 100, Exp: 1.5})
	r.Register("particle_density", SliderMapping{Min: 0, Max: 1, Exp: 2.0})
	r.Register("fog_distance", SliderMapping{Min: 100, Max: 10000, Exp: 2.0})
	return r
}

// Register adds or replaces a mapping.
func (r *SliderRegistry) Register(name string, m SliderMapping) {
	if _, ok := r.mappings[name]; !ok {
		r.order = append(r.order, name)
	}
	r.mappings[name] = m
}

// Names returns the registered parameter names in insertion order.
func (r *SliderRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ToValue maps a slider position for a named parameter. Unregistered names
// pass through unchanged.
func (r *SliderRegistry) ToValue(name string, pos float32) float32 {
	if m, ok := r.mappings[name]; ok {
		return m.ToValue(pos)
	}
	return pos
}

// ToPosition maps a parameter value back to its slider position.
// Unregistered names pass through unchanged.
func (r *SliderRegistry) ToPosition(name string, value float32) float32 {
	if m, ok := r.mappings[name]; ok {
		return m.ToPosition(value)
	}
	return value
}

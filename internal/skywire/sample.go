package skywire

import "math"

// Sample is a single complex baseband I/Q sample. spec.md §9 (Design
// Notes) calls out that the original source oscillates between a
// native complex type and a struct of two floats; this package picks
// one representation - a pair of float32s - and every stage uses it.
type Sample struct {
	I float32
	Q float32
}

// Add returns the elementwise sum of s and o.
func (s Sample) Add(o Sample) Sample {
	return Sample{I: s.I + o.I, Q: s.Q + o.Q}
}

// Mul returns the complex product of s and o.
func (s Sample) Mul(o Sample) Sample {
	return Sample{
		I: s.I*o.I - s.Q*o.Q,
		Q: s.I*o.Q + s.Q*o.I,
	}
}

// Conj returns the complex conjugate of s.
func (s Sample) Conj() Sample {
	return Sample{I: s.I, Q: -s.Q}
}

// Scale returns s scaled by real factor k.
func (s Sample) Scale(k float32) Sample {
	return Sample{I: s.I * k, Q: s.Q * k}
}

// Abs returns the magnitude of s.
func (s Sample) Abs() float32 {
	return float32(math.Hypot(float64(s.I), float64(s.Q)))
}

// FromPolar builds a unit-magnitude sample at the given phase (radians).
func FromPolar(phase float64) Sample {
	sin, cos := math.Sincos(phase)
	return Sample{I: float32(cos), Q: float32(sin)}
}

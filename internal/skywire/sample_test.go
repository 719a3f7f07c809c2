package skywire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPolarUnitMagnitude(t *testing.T) {
	for _, phase := range []float64{0, math.Pi / 4, math.Pi, -math.Pi / 2} {
		s := FromPolar(phase)
		assert.InDelta(t, 1.0, float64(s.Abs()), 1e-6)
	}
}

func TestSampleMulIsComplexMultiply(t *testing.T) {
	a := Sample{I: 1, Q: 0}
	b := Sample{I: 0, Q: 1}
	got := a.Mul(b)
	assert.InDelta(t, 0, got.I, 1e-6)
	assert.InDelta(t, 1, got.Q, 1e-6)
}

func TestSampleConjNegatesQ(t *testing.T) {
	s := Sample{I: 2, Q: 3}
	c := s.Conj()
	assert.Equal(t, float32(2), c.I)
	assert.Equal(t, float32(-3), c.Q)
}

func TestSampleScale(t *testing.T) {
	s := Sample{I: 1, Q: -1}
	scaled := s.Scale(2)
	assert.Equal(t, float32(2), scaled.I)
	assert.Equal(t, float32(-2), scaled.Q)
}

func TestSampleAdd(t *testing.T) {
	a := Sample{I: 1, Q: 2}
	b := Sample{I: 3, Q: -1}
	sum := a.Add(b)
	assert.Equal(t, float32(4), sum.I)
	assert.Equal(t, float32(1), sum.Q)
}

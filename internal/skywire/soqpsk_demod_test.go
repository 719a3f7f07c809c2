package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDemodulatorRejectsInvalidParams(t *testing.T) {
	_, err := NewDemodulator(1e6, 80e6, 0, 0.01)
	require.Error(t, err)
	_, err = NewDemodulator(1e6, 0, 8, 0.01)
	require.Error(t, err)
}

func TestPLLGainsScaleWithBandwidth(t *testing.T) {
	d, err := NewDemodulator(0, 80e6, 8, 0.01)
	require.NoError(t, err)
	kp, ki := d.pllGains()
	assert.Greater(t, kp, 0.0)
	assert.Greater(t, ki, 0.0)
}

func TestWrapPhaseStaysInRange(t *testing.T) {
	assert.InDelta(t, 0.0, wrapPhase(2*3.141592653589793), 1e-9)
	assert.InDelta(t, -1.0, wrapPhase(-1.0), 1e-9)
}

func TestDemodulateProducesTwoBitsPerSymbol(t *testing.T) {
	d, err := NewDemodulator(0, 80e6, 8, 0.01)
	require.NoError(t, err)

	samples := make([]Sample, 8*20)
	for i := range samples {
		samples[i] = FromPolar(float64(i) * 0.05)
	}

	llrs := d.Demodulate(samples)
	assert.NotEmpty(t, llrs)
	assert.Equal(t, 0, len(llrs)%2)
}

func TestQuadrantSliceSignConvention(t *testing.T) {
	b0, b1 := quadrantSlice(Sample{I: 1, Q: -1}, 1.0)
	assert.Greater(t, float64(b0), 0.0)
	assert.Less(t, float64(b1), 0.0)
}

package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFrequencyPulseLength(t *testing.T) {
	pulse := createFrequencyPulse(8)
	assert.Len(t, pulse, pulseSymbolSpan*8)
}

func TestCreateFrequencyPulseConcentratedNearCenter(t *testing.T) {
	pulse := createFrequencyPulse(4)

	peak := 0.0
	for _, v := range pulse {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	require.Greater(t, peak, 0.0)

	edgeMag := pulse[0]
	if edgeMag < 0 {
		edgeMag = -edgeMag
	}
	assert.Less(t, edgeMag, peak)
}

func TestDifferentialTernaryPrecodeAllZeroInput(t *testing.T) {
	bits := make([]byte, 16)
	a := differentialTernaryPrecode(bits)
	for _, v := range a {
		assert.Contains(t, []float64{-1, 0, 1}, v)
	}
}

func TestDifferentialTernaryPrecodeLength(t *testing.T) {
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0}
	assert.Len(t, differentialTernaryPrecode(bits), len(bits))
}

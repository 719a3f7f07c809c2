package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulateProducesExpectedSampleCount(t *testing.T) {
	m, err := NewModulator(2.35e9, 80e6, 8)
	require.NoError(t, err)

	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0}
	samples := m.Modulate(bits)
	assert.Len(t, samples, len(bits)*8)
}

func TestModulateSamplesHaveUnitMagnitude(t *testing.T) {
	m, err := NewModulator(0, 80e6, 8)
	require.NoError(t, err)

	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}
	samples := m.Modulate(bits)
	for _, s := range samples {
		assert.InDelta(t, 1.0, float64(s.Abs()), 1e-4)
	}
}

// TestModulatePhaseContinuityAcrossCalls verifies spec.md §8 S5/S6:
// splitting one transmission into two back-to-back Modulate calls
// produces the same samples as one continuous call.
func TestModulatePhaseContinuityAcrossCalls(t *testing.T) {
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}

	whole, err := NewModulator(1e6, 80e6, 4)
	require.NoError(t, err)
	oneShot := whole.Modulate(bits)

	split, err := NewModulator(1e6, 80e6, 4)
	require.NoError(t, err)
	first := split.Modulate(bits[:8])
	second := split.Modulate(bits[8:])
	twoShot := append(first, second...)

	require.Equal(t, len(oneShot), len(twoShot))
	for i := range oneShot {
		assert.InDelta(t, oneShot[i].I, twoShot[i].I, 1e-6)
		assert.InDelta(t, oneShot[i].Q, twoShot[i].Q, 1e-6)
	}
}

func TestResetPhaseRestartsAccumulator(t *testing.T) {
	m, err := NewModulator(1e6, 80e6, 4)
	require.NoError(t, err)

	bits := []byte{1, 0, 1, 1}
	first := m.Modulate(bits)

	m.ResetPhase()
	second := m.Modulate(bits)

	for i := range first {
		assert.InDelta(t, first[i].I, second[i].I, 1e-9)
		assert.InDelta(t, first[i].Q, second[i].Q, 1e-9)
	}
}

func TestNewModulatorRejectsInvalidParams(t *testing.T) {
	_, err := NewModulator(1e6, 80e6, 0)
	require.Error(t, err)
	_, err = NewModulator(1e6, 0, 4)
	require.Error(t, err)
}

package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewScramblerRejectsZeroSeed(t *testing.T) {
	_, err := NewScrambler(0)
	require.Error(t, err)
}

func TestScrambleDescrambleBitsIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := uint16(rapid.IntRange(1, 0xFFFF).Draw(t, "seed"))
		n := rapid.IntRange(0, 2048).Draw(t, "n")
		bits := make([]byte, n)
		for i := range bits {
			bits[i] = byte(rapid.IntRange(0, 1).Draw(t, "bit"))
		}

		s, err := NewScrambler(seed)
		require.NoError(t, err)

		scrambled := s.ScrambleBits(bits)
		recovered := s.DescrambleBits(scrambled)

		assert.Equal(t, bits, recovered)
	})
}

func TestScrambleIsDeterministicPerSeed(t *testing.T) {
	s1, err := NewScrambler(0xACE1)
	require.NoError(t, err)
	s2, err := NewScrambler(0xACE1)
	require.NoError(t, err)

	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0}
	assert.Equal(t, s1.ScrambleBits(bits), s2.ScrambleBits(bits))
}

func TestDescrambleLLRFlipsSignOnScrambledBit(t *testing.T) {
	s, err := NewScrambler(0xACE1)
	require.NoError(t, err)

	n := 64
	llrs := make([]float64, n)
	for i := range llrs {
		llrs[i] = 3.5
	}

	recovered := s.DescrambleLLR(llrs)

	// DescrambleLLR reseeds, so replaying the same keystream via
	// ScrambleBits on an all-zero bit array should mark exactly the
	// same positions that got negated.
	s2, err := NewScrambler(0xACE1)
	require.NoError(t, err)
	keystreamBits := s2.ScrambleBits(make([]byte, n))

	for i, b := range keystreamBits {
		if b == 1 {
			assert.Equal(t, -3.5, recovered[i])
		} else {
			assert.Equal(t, 3.5, recovered[i])
		}
	}
}

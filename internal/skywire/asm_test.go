package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependAndCorrelateASMExactMatch(t *testing.T) {
	codeword := make([]byte, 128)
	for i := range codeword {
		codeword[i] = byte(i % 2)
	}
	framed := PrependASM(codeword)

	offset, ok := CorrelateASM(framed, len(codeword))
	require.True(t, ok)
	assert.Equal(t, 0, offset)
}

func TestCorrelateASMToleratesSingleBitError(t *testing.T) {
	codeword := make([]byte, 256)
	framed := PrependASM(codeword)
	framed[5] ^= 1 // flip one bit inside the ASM window

	offset, ok := CorrelateASM(framed, len(codeword))
	require.True(t, ok)
	assert.Equal(t, 0, offset)
}

func TestCorrelateASMFailsBeyondThreshold(t *testing.T) {
	codeword := make([]byte, 256)
	framed := PrependASM(codeword)
	for i := 0; i < 10; i++ {
		framed[i] ^= 1
	}

	_, ok := CorrelateASM(framed, len(codeword))
	assert.False(t, ok)
}

func TestCorrelateASMLocksAtNonzeroOffset(t *testing.T) {
	codeword := make([]byte, 64)
	framed := PrependASM(codeword)
	padded := append([]byte{0, 1, 1, 0, 1}, framed...)

	offset, ok := CorrelateASM(padded, len(codeword))
	require.True(t, ok)
	assert.Equal(t, 5, offset)
}

func TestCorrelateASMRejectsShortInput(t *testing.T) {
	_, ok := CorrelateASM(make([]byte, 10), 64)
	assert.False(t, ok)
}

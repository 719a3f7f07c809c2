package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBytesToBitsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(rapid.Byte()).Draw(t, "in")
		bits := bytesToBits(in)
		require.Equal(t, len(in)*8, len(bits))
		out := bitsToBytes(bits)
		assert.Equal(t, in, out)
	})
}

func TestBytesToBitsIsLSBFirst(t *testing.T) {
	bits := bytesToBits([]byte{0b10110000})
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 1, 0, 1}, bits)
}

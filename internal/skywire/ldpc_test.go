package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func allRates() []CodeRate { return []CodeRate{Rate1_2, Rate2_3, Rate4_5} }

func TestEncoderIsSystematic(t *testing.T) {
	for _, rate := range allRates() {
		enc, err := NewLDPCEncoder(rate)
		require.NoError(t, err)

		info := make([]byte, enc.K())
		for i := range info {
			info[i] = byte((i * 7) % 2)
		}

		codeword, err := enc.Encode(info)
		require.NoError(t, err)
		require.Len(t, codeword, enc.N())
		assert.Equal(t, info, codeword[:enc.K()])
	}
}

func TestEncoderRejectsWrongLength(t *testing.T) {
	enc, err := NewLDPCEncoder(Rate2_3)
	require.NoError(t, err)
	_, err = enc.Encode(make([]byte, enc.K()-1))
	require.Error(t, err)
}

// TestEncodedCodewordSatisfiesDecoderSyndrome exercises the encoder
// and decoder end to end: a freshly encoded codeword, fed to the
// decoder as noiseless strong LLRs, must already satisfy the parity
// check (spec.md §8 S1, "encode then decode with zero noise returns
// the original info bits").
func TestEncodedCodewordSatisfiesDecoderSyndrome(t *testing.T) {
	for _, rate := range allRates() {
		enc, err := NewLDPCEncoder(rate)
		require.NoError(t, err)
		dec, err := NewLDPCDecoder(rate)
		require.NoError(t, err)

		info := make([]byte, enc.K())
		for i := range info {
			info[i] = byte((i * 13) % 2)
		}

		codeword, err := enc.Encode(info)
		require.NoError(t, err)

		llr := make([]float64, enc.N())
		for i, b := range codeword {
			if b == 0 {
				llr[i] = 10
			} else {
				llr[i] = -10
			}
		}

		result, err := dec.Decode(llr, 20, true)
		require.NoError(t, err)
		assert.True(t, result.Converged)
		assert.Equal(t, codeword, result.Bits)
		assert.Equal(t, info, result.Bits[:enc.K()])
	}
}

func TestDecoderRejectsWrongLLRLength(t *testing.T) {
	dec, err := NewLDPCDecoder(Rate1_2)
	require.NoError(t, err)
	_, err = dec.Decode(make([]float64, dec.N()-1), 10, true)
	require.Error(t, err)
}

func TestDecoderRejectsNonPositiveMaxIter(t *testing.T) {
	dec, err := NewLDPCDecoder(Rate1_2)
	require.NoError(t, err)
	_, err = dec.Decode(make([]float64, dec.N()), 0, true)
	require.Error(t, err)
}

// TestEdgeCountMatchesProtographWeight guards the OQ5 fix: the Tanner
// graph's edge count follows from summing each protograph row's
// nonzero entries times z, not a fixed M*3 guess.
func TestEdgeCountMatchesProtographWeight(t *testing.T) {
	dec, err := NewLDPCDecoder(Rate2_3)
	require.NoError(t, err)

	cfg, err := configFor(Rate2_3)
	require.NoError(t, err)

	want := 0
	for _, row := range cfg.proto {
		for _, s := range row {
			if s >= 0 {
				want += cfg.z
			}
		}
	}
	assert.Equal(t, want, dec.EdgeCount())
}

func TestWithMessageScaleOption(t *testing.T) {
	dec, err := NewLDPCDecoder(Rate1_2, WithMessageScale(0.75))
	require.NoError(t, err)
	assert.NotNil(t, dec)
}

// TestDecodeUncorrectableOnRandomNoise checks the decoder reports
// failure rather than fabricating a false convergence on an LLR
// vector unrelated to any valid codeword.
func TestDecodeUncorrectableOnRandomNoise(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dec, err := NewLDPCDecoder(Rate1_2)
		require.NoError(t, err)

		llr := make([]float64, dec.N())
		for i := range llr {
			if rapid.Bool().Draw(t, "bit") {
				llr[i] = 5
			} else {
				llr[i] = -5
			}
		}

		result, err := dec.Decode(llr, 5, true)
		if err == nil {
			assert.True(t, result.Converged)
			assert.True(t, dec.syndromeZero(result.Bits))
		} else {
			var pe *PipelineError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, ErrDecodeUncorrectable, pe.Kind)
			assert.False(t, result.Converged)
		}
	})
}

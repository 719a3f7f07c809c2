package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, Rate2_3, cfg.Rate)
	assert.Equal(t, DefaultLFSRSeed, cfg.LFSRSeed)
	assert.Equal(t, 8, cfg.SamplesPerSymbol)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg, err := NewConfig(
		WithCodeRate(Rate1_2),
		WithLFSRSeed(1234),
		WithSamplesPerSymbol(4),
	)
	require.NoError(t, err)
	assert.Equal(t, Rate1_2, cfg.Rate)
	assert.Equal(t, uint16(1234), cfg.LFSRSeed)
	assert.Equal(t, 4, cfg.SamplesPerSymbol)
}

func TestNewConfigRejectsZeroSeed(t *testing.T) {
	_, err := NewConfig(WithLFSRSeed(0))
	require.Error(t, err)
}

func TestNewConfigRejectsNonPositiveMaxIter(t *testing.T) {
	_, err := NewConfig(WithLDPCMaxIter(0))
	require.Error(t, err)
}

func TestNewConfigRejectsNonPositiveSampleRate(t *testing.T) {
	_, err := NewConfig(WithSampleRate(-1))
	require.Error(t, err)
}

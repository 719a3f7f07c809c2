package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCRCThenVerify(t *testing.T) {
	r := TelemetryRecord{FrameCounter: 42, TimestampUs: 99, AltitudeM: 1000}
	WriteCRC(&r)
	require.NotZero(t, r.CRC16)
	assert.NoError(t, VerifyCRC(&r))
}

func TestVerifyCRCDetectsCorruption(t *testing.T) {
	r := TelemetryRecord{FrameCounter: 7}
	WriteCRC(&r)
	r.FrameCounter = 8
	err := VerifyCRC(&r)
	require.Error(t, err)
	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCrcMismatch, pe.Kind)
}

func TestCRC16KnownValue(t *testing.T) {
	// Reflected CCITT CRC-16 table with poly 0x8408, init
	// 0xFFFF, no output XOR, over an empty input leaves the
	// accumulator untouched.
	assert.Equal(t, uint16(0xFFFF), crc16CCITT(nil))
}

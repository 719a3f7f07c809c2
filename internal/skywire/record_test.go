package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalUnmarshalRoundTrip(t *testing.T) {
	r := TelemetryRecord{
		FrameCounter:   123,
		TimestampUs:    9876543210,
		AccelXG:        1.5,
		AccelYG:        -1.5,
		AccelZG:        9.81,
		GyroXDps:       0.25,
		GyroYDps:       -0.25,
		GyroZDps:       0,
		FlightMode:     5,
		Latitude:       -33.865143,
		Longitude:      151.209900,
		AltitudeM:      1200.25,
		BatteryVoltage: 22.2,
		SystemStatus:   0xBEEF,
	}
	for i := range r.PressurePsi {
		r.PressurePsi[i] = float32(i) * 1.1
	}
	for i := range r.TemperatureC {
		r.TemperatureC[i] = float32(i) - 3.3
	}
	for i := range r.GuidanceCmd {
		r.GuidanceCmd[i] = float32(i) * 0.5
	}
	for i := range r.ActuatorPos {
		r.ActuatorPos[i] = float32(i) * -0.5
	}
	WriteCRC(&r)

	buf := r.MarshalBinary()
	require.Len(t, buf, RecordSize)

	var out TelemetryRecord
	require.NoError(t, out.UnmarshalBinary(buf))

	assert.Equal(t, r, out)
	assert.NoError(t, VerifyCRC(&out))
}

func TestUnmarshalBinaryRejectsShortBuffer(t *testing.T) {
	var r TelemetryRecord
	err := r.UnmarshalBinary(make([]byte, RecordSize-1))
	require.Error(t, err)
	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrTruncatedInput, pe.Kind)
}

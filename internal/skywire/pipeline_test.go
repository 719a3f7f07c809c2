package skywire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSampleSink struct {
	samples []Sample
}

func (s *memSampleSink) WriteSamples(samples []Sample) error {
	s.samples = append(s.samples, samples...)
	return nil
}

type memRecordSink struct {
	records []TelemetryRecord
}

func (s *memRecordSink) DeliverRecord(r TelemetryRecord) {
	s.records = append(s.records, r)
}

func sampleRecord() TelemetryRecord {
	return TelemetryRecord{
		FrameCounter:   17,
		TimestampUs:    55555,
		AccelXG:        0.1,
		AccelYG:        0.2,
		AccelZG:        9.8,
		GyroXDps:       1,
		GyroYDps:       -1,
		GyroZDps:       0,
		FlightMode:     2,
		Latitude:       28.5728,
		Longitude:      -80.6490,
		AltitudeM:      500,
		BatteryVoltage: 27.4,
		SystemStatus:   0x0A0A,
	}
}

// TestPipelineRoundTripWiring exercises spec.md §5's transmit/receive
// wiring end to end: TransmitFrame produces exactly one frame span of
// samples, and feeding that span to ReceiveSamples drives the full
// demodulate/decode chain to a single terminal outcome (a delivered
// record or a recorded error) without panicking or hanging.
//
// The reduced-mode quadrant slicer (soqpsk_demod.go, spec.md §4.F) is
// a memoryless per-symbol detector over a receive chain with
// multi-symbol intersymbol interference from the Appendix-M pulse
// shaping; spec.md documents this as a lossy fallback, not a
// bit-exact detector, so this test doesn't assert the record is
// actually recovered - only that the pipeline always reaches a
// well-defined outcome and, on the symbol/sample accounting, consumes
// exactly one frame's worth of buffered samples.
func TestPipelineRoundTripWiring(t *testing.T) {
	cfg, err := NewConfig(WithCodeRate(Rate1_2), WithSamplesPerSymbol(4), WithCarrierFreq(0))
	require.NoError(t, err)

	txPipe, err := NewPipeline(cfg)
	require.NoError(t, err)
	rxPipe, err := NewPipeline(cfg)
	require.NoError(t, err)

	record := sampleRecord()
	sink := &memSampleSink{}
	require.NoError(t, txPipe.TransmitFrame(&record, sink))
	assert.Len(t, sink.samples, txPipe.samplesPerFrame())

	recv := &memRecordSink{}
	rxPipe.ReceiveSamples(sink.samples, recv)
	assert.Empty(t, rxPipe.rxBuf, "a single exact frame span should always be fully consumed")

	snap := rxPipe.Counters().Snapshot()
	var totalErrs uint64
	for _, count := range snap {
		totalErrs += count
	}
	// Exactly one outcome: either the record was delivered, or exactly
	// one error kind was tallied for the single frame attempt.
	assert.True(t, len(recv.records) == 1 || totalErrs == 1,
		"expected exactly one delivered record xor exactly one error count, got %d records and %d errors", len(recv.records), totalErrs)

	if len(recv.records) == 1 {
		got := recv.records[0]
		assert.Equal(t, record.FrameCounter, got.FrameCounter)
	}
}

// TestPipelineWithActivityLogRecordsTransmit covers spec.md §4.M: a
// Pipeline built with WithActivityLog writes one row per
// transmit_frame call to the daily-rotated CSV.
func TestPipelineWithActivityLogRecordsTransmit(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	activityLog, err := NewActivityLog(dir, "%Y%m%d.csv")
	require.NoError(t, err)

	pipe, err := NewPipeline(cfg, WithActivityLog(activityLog))
	require.NoError(t, err)

	record := sampleRecord()
	sink := &memSampleSink{}
	require.NoError(t, pipe.TransmitFrame(&record, sink))
	require.NoError(t, activityLog.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "transmit_frame")
	assert.Contains(t, string(data), "17")
}

// TestPipelineDeterministicReplay covers spec.md §8 S9: transmitting
// the same record twice through independently-constructed pipelines
// with the same Config produces byte-identical sample streams.
func TestPipelineDeterministicReplay(t *testing.T) {
	cfg, err := NewConfig(WithCodeRate(Rate2_3), WithSamplesPerSymbol(4))
	require.NoError(t, err)

	record := sampleRecord()

	pipeA, err := NewPipeline(cfg)
	require.NoError(t, err)
	sinkA := &memSampleSink{}
	require.NoError(t, pipeA.TransmitFrame(&record, sinkA))

	pipeB, err := NewPipeline(cfg)
	require.NoError(t, err)
	sinkB := &memSampleSink{}
	require.NoError(t, pipeB.TransmitFrame(&record, sinkB))

	require.Equal(t, len(sinkA.samples), len(sinkB.samples))
	for i := range sinkA.samples {
		assert.Equal(t, sinkA.samples[i], sinkB.samples[i])
	}
}

// TestPipelineRecordFitsSmallestRateCapacity guards against a future
// TelemetryRecord field addition silently overflowing the smallest
// rate's info capacity: TransmitFrame must fail loudly rather than
// truncate if RecordSize*8 ever exceeds Rate1_2's K.
func TestPipelineRecordFitsSmallestRateCapacity(t *testing.T) {
	cfg, err := NewConfig(WithCodeRate(Rate1_2))
	require.NoError(t, err)
	pipe, err := NewPipeline(cfg)
	require.NoError(t, err)

	record := sampleRecord()
	sink := &memSampleSink{}
	assert.NoError(t, pipe.TransmitFrame(&record, sink))
}

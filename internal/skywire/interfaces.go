package skywire

// The collaborator interfaces below are the narrow seams spec.md §6
// names as "inbound to core". Sensor acquisition, RF hardware, ground
// control, storage and the rest of the surrounding avionics stack sit
// behind these and are never specified here.

// FrameSource supplies the next telemetry record to encode, or false
// when none is currently available (the orchestrator does not block
// waiting for one).
type FrameSource interface {
	NextFrame() (TelemetryRecord, bool)
}

// SampleSink consumes modulated complex baseband samples, typically
// an RF front-end driver.
type SampleSink interface {
	WriteSamples(samples []Sample) error
}

// SampleSource supplies received complex baseband samples into buf,
// returning the number written.
type SampleSource interface {
	ReadSamples(buf []Sample) (int, error)
}

// RecordSink is the downstream consumer of successfully decoded
// telemetry records.
type RecordSink interface {
	DeliverRecord(TelemetryRecord)
}

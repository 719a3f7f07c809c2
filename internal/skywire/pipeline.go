package skywire

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Pipeline owns one instance of every stage (codec, scrambler, framer,
// modulator, demodulator) plus the per-frame scratch buffers, and
// drives both directions described in spec.md §5: transmit_frame
// (A through E) and the receive chain that assembles samples into
// records (F through I).
//
// A Pipeline is not safe for concurrent use from multiple goroutines;
// callers needing concurrent TX and RX should use two Pipelines
// sharing the same Config, since TX and RX hold independent stage
// state (scrambler reseeds per call, modulator/demodulator carry their
// own continuity state).
type Pipeline struct {
	cfg *Config

	encoder   *LDPCEncoder
	decoder   *LDPCDecoder
	txScram   *Scrambler
	rxScram   *Scrambler
	modulator *Modulator
	demod     *Demodulator

	counters    *ErrorCounters
	logger      *log.Logger
	activityLog *ActivityLog

	// rxBuf accumulates samples across ReceiveSamples calls until a
	// full ASM-plus-codeword span is available.
	rxBuf []Sample
}

// PipelineOption mutates a Pipeline during NewPipeline, for ambient
// collaborators (spec.md §4.M's activity log) that aren't part of
// Config's core codec tunables.
type PipelineOption func(*Pipeline)

// WithActivityLog attaches an ActivityLog that records one row per
// transmit_frame call and one row per receive outcome (spec.md §4.M).
// Without this option a Pipeline runs with no activity logging, the
// same as every package-level test in this repo.
func WithActivityLog(activityLog *ActivityLog) PipelineOption {
	return func(p *Pipeline) { p.activityLog = activityLog }
}

// NewPipeline builds every stage from cfg and returns an orchestrator
// ready for TransmitFrame and ReceiveSamples.
func NewPipeline(cfg *Config, opts ...PipelineOption) (*Pipeline, error) {
	encoder, err := NewLDPCEncoder(cfg.Rate)
	if err != nil {
		return nil, err
	}
	decoder, err := NewLDPCDecoder(cfg.Rate, WithMessageScale(cfg.LDPCMsgScale))
	if err != nil {
		return nil, err
	}
	txScram, err := NewScrambler(cfg.LFSRSeed)
	if err != nil {
		return nil, err
	}
	rxScram, err := NewScrambler(cfg.LFSRSeed)
	if err != nil {
		return nil, err
	}
	modulator, err := NewModulator(cfg.CarrierFreqHz, cfg.SampleRateHz, cfg.SamplesPerSymbol)
	if err != nil {
		return nil, err
	}
	demod, err := NewDemodulator(cfg.CarrierFreqHz, cfg.SampleRateHz, cfg.SamplesPerSymbol, cfg.PLLBandwidthScale)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		encoder:   encoder,
		decoder:   decoder,
		txScram:   txScram,
		rxScram:   rxScram,
		modulator: modulator,
		demod:     demod,
		counters:  &ErrorCounters{},
		logger:    log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "skywire"}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// logActivity records an activity-log row if an ActivityLog is
// attached; a no-op otherwise.
func (p *Pipeline) logActivity(frameCounter uint32, event, detail string) {
	if p.activityLog == nil {
		return
	}
	if err := p.activityLog.Record(time.Now(), frameCounter, event, detail); err != nil {
		p.logger.Warn("activity log write failed", "err", err)
	}
}

// Counters exposes the pipeline's error tallies for observability.
func (p *Pipeline) Counters() *ErrorCounters { return p.counters }

// frameBits is the number of bits in one ASM-plus-codeword span.
func (p *Pipeline) frameBits() int { return ASMBits + p.encoder.N() }

// samplesPerFrame is the number of complex samples one transmitted
// frame occupies on the air.
func (p *Pipeline) samplesPerFrame() int { return p.frameBits() * p.cfg.SamplesPerSymbol }

// TransmitFrame runs stages A through E over record: write the CRC
// trailer, LDPC-encode the packed record into a codeword, scramble it,
// prepend the unscrambled ASM, modulate to complex baseband, and hand
// the samples to sink.
func (p *Pipeline) TransmitFrame(record *TelemetryRecord, sink SampleSink) error {
	WriteCRC(record)
	packed := record.MarshalBinary()

	info := bytesToBits(packed)
	if pad := p.encoder.K() - len(info); pad > 0 {
		info = append(info, make([]byte, pad)...)
	} else if pad < 0 {
		return newErr(ErrConfig, "record %d bits exceeds codeword info capacity %d", len(info), p.encoder.K())
	}

	codeword, err := p.encoder.Encode(info)
	if err != nil {
		return err
	}
	scrambled := p.txScram.ScrambleBits(codeword)
	framed := PrependASM(scrambled)

	samples := p.modulator.Modulate(framed)
	if err := sink.WriteSamples(samples); err != nil {
		return err
	}
	p.logActivity(record.FrameCounter, "transmit_frame", "")
	return nil
}

// ReceiveSamples appends samples to the pipeline's internal buffer and
// attempts to assemble and deliver as many complete frames as are now
// available, in order. It never blocks: if fewer samples than one
// frame span are buffered, it returns immediately having delivered
// nothing.
func (p *Pipeline) ReceiveSamples(samples []Sample, sink RecordSink) {
	p.rxBuf = append(p.rxBuf, samples...)

	need := p.samplesPerFrame()
	for len(p.rxBuf) >= need {
		consumed := p.tryDecodeFrame(sink)
		if consumed <= 0 {
			// Not enough of a lock found in the buffered window yet;
			// wait for more samples before retrying the same window.
			break
		}
		p.rxBuf = p.rxBuf[consumed:]
	}
}

// tryDecodeFrame attempts stages F through I over the front of rxBuf.
// It returns the number of samples to drop from the front of rxBuf,
// which is always one frame span: a failed attempt is counted and its
// window dropped just like a delivered one.
func (p *Pipeline) tryDecodeFrame(sink RecordSink) int {
	window := p.rxBuf[:p.samplesPerFrame()]
	raw := p.demod.Demodulate(window)

	// The modulator places exactly one information bit per symbol
	// interval (a binary CPM scheme, not a 2-bit/symbol constellation),
	// so only the quadrant slicer's in-phase rail carries a
	// transmitted bit; the quadrature rail it also emits has no
	// corresponding TX-side bit and is discarded here.
	want := p.frameBits()
	if len(raw) < 2*want {
		p.counters.record(ErrFrameSyncLost)
		p.logActivity(0, "FrameSyncLost", "demodulated fewer symbols than one frame span")
		return p.samplesPerFrame()
	}
	llrs := make([]SoftBit, want)
	for i := range llrs {
		llrs[i] = raw[2*i]
	}

	hard := make([]byte, len(llrs))
	for i, l := range llrs {
		if l < 0 {
			hard[i] = 1
		} else {
			hard[i] = 0
		}
	}

	offset, ok := CorrelateASM(hard, p.encoder.N())
	if !ok {
		p.counters.record(ErrFrameSyncLost)
		p.logger.Debug("frame sync not found in current window")
		p.logActivity(0, "FrameSyncLost", "no ASM lock in current window")
		return p.samplesPerFrame()
	}

	codewordLLR := llrs[offset+ASMBits : offset+ASMBits+p.encoder.N()]
	llrFloats := make([]float64, len(codewordLLR))
	for i, l := range codewordLLR {
		llrFloats[i] = float64(l)
	}
	descrambled := p.rxScram.DescrambleLLR(llrFloats)

	result, err := p.decoder.Decode(descrambled, p.cfg.LDPCMaxIter, p.cfg.LDPCEarlyTerm)
	if err != nil {
		p.counters.record(ErrDecodeUncorrectable)
		p.logger.Warn("ldpc decode failed", "iters", result.Iters, "err", err)
		p.logActivity(0, "DecodeUncorrectable", err.Error())
		return p.samplesPerFrame()
	}

	infoBits := result.Bits[:p.encoder.K()]
	packed := bitsToBytes(infoBits)
	if len(packed) < RecordSize {
		p.counters.record(ErrTruncatedInput)
		p.logActivity(0, "TruncatedInput", "decoded fewer bits than one record")
		return p.samplesPerFrame()
	}

	var record TelemetryRecord
	if err := record.UnmarshalBinary(packed); err != nil {
		p.counters.record(ErrTruncatedInput)
		p.logActivity(0, "TruncatedInput", err.Error())
		return p.samplesPerFrame()
	}
	if err := VerifyCRC(&record); err != nil {
		p.counters.record(ErrCrcMismatch)
		p.logger.Warn("crc mismatch, dropping frame", "frame_counter", record.FrameCounter)
		p.logActivity(record.FrameCounter, "CrcMismatch", err.Error())
		return p.samplesPerFrame()
	}

	p.logActivity(record.FrameCounter, "Delivered", "")
	sink.DeliverRecord(record)
	return p.samplesPerFrame()
}

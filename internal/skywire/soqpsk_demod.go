package skywire

import "math"

// pllDamping is the fixed loop damping factor, zeta=0.707
// (spec.md §4.F).
const pllDamping = 0.707

// PTPLLBandwidthScale is the default ratio of PLL loop bandwidth to
// symbol rate (spec.md §6 "pll_bandwidth_scale").
const PTPLLBandwidthScale = 0.01

// gardnerGain is the fixed timing-loop gain K (spec.md §4.F).
const gardnerGain = 0.1

// Demodulator is a SOQPSK-TG receiver front end: carrier-recovery
// PLL, Gardner symbol-timing recovery, and a symbol decision stage
// that emits soft LLRs.
//
// spec.md §4.F allows a reduced mode: "a quadrant slicer over the
// complex symbol sample is acceptable as a fallback when the trellis
// decoder is not wired; this MUST be documented as a reduced mode."
// This implementation runs in that reduced mode - an 8-state
// CPM trellis decoder is out of scope for this build (the
// Demodulator carries path-metric state in pathMetrics for a future
// trellis decoder to use, but PLL/timing output currently feeds a
// quadrant slicer directly).
type Demodulator struct {
	carrierFreq float64
	sampleRate  float64
	sps         int

	pllPhase float64
	pllFreq  float64
	loopBW   float64

	timingMu float64

	// pathMetrics holds the 8-state CPM trellis's per-state path
	// metrics. Reduced mode (the quadrant slicer) doesn't consume
	// these; they exist so a future trellis detector can be wired in
	// without changing the Demodulator's external shape.
	pathMetrics [8]float64
	state       byte
}

// NewDemodulator builds a demodulator for the given carrier frequency,
// sample rate and samples-per-symbol, with PLL bandwidth derived from
// bandwidthScale * symbolRate.
func NewDemodulator(carrierFreq, sampleRate float64, sps int, bandwidthScale float64) (*Demodulator, error) {
	if sps <= 0 {
		return nil, newErr(ErrConfig, "samples_per_symbol must be positive, got %d", sps)
	}
	if sampleRate <= 0 {
		return nil, newErr(ErrConfig, "sample_rate must be positive")
	}
	symbolRate := sampleRate / float64(sps)
	d := &Demodulator{
		carrierFreq: carrierFreq,
		sampleRate:  sampleRate,
		sps:         sps,
		loopBW:      symbolRate * bandwidthScale,
	}
	for i := range d.pathMetrics {
		d.pathMetrics[i] = math.Inf(1)
	}
	d.pathMetrics[0] = 0
	return d, nil
}

// pllGains returns the second-order loop's proportional and integral
// gains, per spec.md §4.F: Kp = 4*zeta*BW/fs, Ki = 4*(BW/fs)^2.
func (d *Demodulator) pllGains() (kp, ki float64) {
	ratio := d.loopBW / d.sampleRate
	return 4 * pllDamping * ratio, 4 * ratio * ratio
}

// recoverCarrier runs the decision-directed carrier PLL over rx,
// returning the mixed-down baseband samples.
func (d *Demodulator) recoverCarrier(rx []Sample) []Sample {
	kp, ki := d.pllGains()
	out := make([]Sample, len(rx))

	for i, s := range rx {
		osc := FromPolar(d.pllPhase)
		mixed := s.Mul(osc.Conj())

		sign := float32(1)
		if mixed.I < 0 {
			sign = -1
		}
		errv := float64(mixed.Q * sign)

		d.pllFreq += ki * errv
		d.pllPhase += kp*errv + d.pllFreq
		d.pllPhase = wrapPhase(d.pllPhase)

		out[i] = mixed
	}
	return out
}

func wrapPhase(p float64) float64 {
	for p > math.Pi {
		p -= 2 * math.Pi
	}
	for p <= -math.Pi {
		p += 2 * math.Pi
	}
	return p
}

// recoverTiming runs Gardner early/late timing recovery over baseband
// and returns one symbol sample per detected symbol instant.
func (d *Demodulator) recoverTiming(baseband []Sample) []Sample {
	half := d.sps / 2
	if half == 0 {
		half = 1
	}

	var symbols []Sample
	i := half
	for i < len(baseband) {
		mid := baseband[i]
		symbols = append(symbols, mid)

		var early, late Sample
		if i-half >= 0 {
			early = baseband[i-half]
		}
		if i+half < len(baseband) {
			late = baseband[i+half]
		}

		diff := Sample{I: late.I - early.I, Q: late.Q - early.Q}
		errv := float64(diff.I*mid.I + diff.Q*mid.Q)

		d.timingMu += gardnerGain * errv
		step := d.sps + int(d.timingMu)
		d.timingMu -= math.Trunc(d.timingMu)
		if step < 1 {
			step = 1
		}
		i += step
	}
	return symbols
}

// SoftBit is a single LLR output: positive leans toward bit 0,
// negative toward bit 1 (spec.md GLOSSARY).
type SoftBit float64

// quadrantSlice maps a complex symbol to two soft bits via a
// quadrant slicer, the spec.md §4.F reduced-mode detector. The LLR
// magnitude is the signed distance from each axis, scaled by snrScale
// (an estimate of SNR derived by the caller from symbol energy).
func quadrantSlice(sym Sample, snrScale float64) (b0, b1 SoftBit) {
	b0 = SoftBit(float64(sym.I) * snrScale)
	b1 = SoftBit(float64(sym.Q) * snrScale)
	return b0, b1
}

// Demodulate runs the full receive chain - carrier recovery, timing
// recovery, quadrant slicing - over rx and returns one pair of soft
// LLRs per detected symbol (2*numSymbols total, I-rail bit first).
func (d *Demodulator) Demodulate(rx []Sample) []SoftBit {
	baseband := d.recoverCarrier(rx)
	symbols := d.recoverTiming(baseband)

	snrScale := estimateSNRScale(symbols)

	llrs := make([]SoftBit, 0, len(symbols)*2)
	for _, sym := range symbols {
		b0, b1 := quadrantSlice(sym, snrScale)
		llrs = append(llrs, b0, b1)
	}
	return llrs
}

// estimateSNRScale derives a crude LLR scaling factor from the mean
// symbol energy: higher-energy (higher-confidence) constellations
// produce proportionally larger-magnitude LLRs.
func estimateSNRScale(symbols []Sample) float64 {
	if len(symbols) == 0 {
		return 1
	}
	var sum float64
	for _, s := range symbols {
		sum += float64(s.Abs())
	}
	mean := sum / float64(len(symbols))
	if mean < 1e-9 {
		return 1
	}
	return 1 / mean
}

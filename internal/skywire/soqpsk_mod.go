package skywire

import "math"

// Modulator is a SOQPSK-TG continuous-phase modulator. It owns a
// persistent phase accumulator so that back-to-back Modulate calls
// produce a phase-continuous sample stream (spec.md §3 invariants,
// §5 "TX modulator guarantees phase continuity across back-to-back
// transmit_frame calls").
//
// original_source/src/5_soqpsk_modulator.c assigns
// `phase = mod->phase_accum;` where phase is a pointer and
// phase_accum a scalar - undefined behavior in C, and in any case it
// discards the persisted value instead of seeding the new phase
// buffer with it. This modulator instead explicitly seeds phase[0]
// from the accumulator (spec.md §9 Design Note 4).
type Modulator struct {
	carrierFreq float64
	sampleRate  float64
	sps         int
	pulse       []float64
	phaseAccum  float64

	// differential precoder memory, carried across calls just like
	// the phase accumulator so a multi-call transmission precodes to
	// the same ternary sequence as one single call (spec.md §8 S5/S6
	// phase-continuity property). Pulse shaping is applied per call, so
	// pulse tails are not carried across a call boundary.
	dPrev1, dPrev2 float64
}

// NewModulator builds a modulator for the given carrier frequency,
// sample rate and samples-per-symbol.
func NewModulator(carrierFreq, sampleRate float64, sps int) (*Modulator, error) {
	if sps <= 0 {
		return nil, newErr(ErrConfig, "samples_per_symbol must be positive, got %d", sps)
	}
	if sampleRate <= 0 {
		return nil, newErr(ErrConfig, "sample_rate must be positive")
	}
	return &Modulator{
		carrierFreq: carrierFreq,
		sampleRate:  sampleRate,
		sps:         sps,
		pulse:       createFrequencyPulse(sps),
		dPrev1:      1,
		dPrev2:      1,
	}, nil
}

// ResetPhase zeroes the persisted phase accumulator and precoder
// memory, starting a fresh transmission rather than continuing one.
func (m *Modulator) ResetPhase() {
	m.phaseAccum = 0
	m.dPrev1, m.dPrev2 = 1, 1
}

// Modulate differentially precodes bits, pulse-shapes them into an
// instantaneous-frequency sequence, integrates phase (continuing from
// the accumulator left by the previous call), mixes to carrier, and
// returns len(bits)*sps complex samples.
func (m *Modulator) Modulate(bits []byte) []Sample {
	n := len(bits)
	if n == 0 {
		return nil
	}

	ternary := m.precode(bits)

	outLen := n * m.sps
	freqImpulses := make([]float64, outLen)
	for i, a := range ternary {
		freqImpulses[i*m.sps] = a
	}

	instFreq := convolveCentered(freqImpulses, m.pulse)

	phase := make([]float64, outLen)
	samples := make([]Sample, outLen)

	prevPhase := m.phaseAccum
	for i := 0; i < outLen; i++ {
		if i == 0 {
			phase[i] = prevPhase + 2*math.Pi*instFreq[i]/m.sampleRate
		} else {
			phase[i] = phase[i-1] + 2*math.Pi*instFreq[i]/m.sampleRate
		}
	}
	// The accumulator also carries the carrier phase reached at the end
	// of this call, so the next call's carrier continues from here
	// instead of restarting at sample 0.
	carrierAdvance := 2 * math.Pi * m.carrierFreq * float64(outLen) / m.sampleRate
	m.phaseAccum = math.Mod(phase[outLen-1]+carrierAdvance, 2*math.Pi)

	for i := 0; i < outLen; i++ {
		carrierPhase := 2 * math.Pi * m.carrierFreq * float64(i) / m.sampleRate
		total := carrierPhase + phase[i]
		samples[i] = FromPolar(total)
	}

	return samples
}

// precode runs the differential ternary precoder (spec.md §4.E step
// 1), carrying d[-1]/d[-2] memory across calls so splitting one
// transmission into multiple Modulate calls doesn't reset the
// sequence.
func (m *Modulator) precode(bits []byte) []float64 {
	n := len(bits)
	d := make([]float64, n)
	for i, b := range bits {
		if b == 0 {
			d[i] = -1
		} else {
			d[i] = 1
		}
	}

	a := make([]float64, n)
	for i := 0; i < n; i++ {
		var dim1, dim2 float64
		switch {
		case i >= 2:
			dim2 = d[i-2]
		case i == 1:
			dim2 = m.dPrev1
		default:
			dim2 = m.dPrev2
		}
		if i >= 1 {
			dim1 = d[i-1]
		} else {
			dim1 = m.dPrev1
		}

		sign := -1.0
		if (i+1)%2 == 0 {
			sign = 1.0
		}

		delta := d[i] - dim2
		switch {
		case delta == 0:
			a[i] = 0
		case delta > 0:
			a[i] = sign * dim1
		default:
			a[i] = -sign * dim1
		}
	}

	if n >= 2 {
		m.dPrev1, m.dPrev2 = d[n-1], d[n-2]
	} else if n == 1 {
		m.dPrev2 = m.dPrev1
		m.dPrev1 = d[0]
	}

	return a
}

// convolveCentered convolves impulses with kernel, centering the
// kernel on each impulse (spec.md §4.E step 2: "convolve with g and
// accumulate into an instantaneous-frequency sequence").
func convolveCentered(impulses, kernel []float64) []float64 {
	out := make([]float64, len(impulses))
	half := len(kernel) / 2
	for i, v := range impulses {
		if v == 0 {
			continue
		}
		for j, k := range kernel {
			idx := i - half + j
			if idx >= 0 && idx < len(out) {
				out[idx] += v * k
			}
		}
	}
	return out
}

package skywire

// DefaultLFSRSeed is the scrambler's default initial state, per
// SPEC_FULL.md §6.
const DefaultLFSRSeed uint16 = 0xACE1

// Scrambler is a 16-bit Fibonacci LFSR, re-seeded at the start of
// every codeword (it does not run continuously across codewords -
// this keeps one codeword's descrambling independent of any other's,
// so a dropped frame never desynchronizes the rest of the stream).
//
// Feedback taps are bits {15,14,12,3} (0-indexed from the LSB), XORed
// together and shifted into bit 15. The output bit is always the
// current state's LSB. Scrambling and descrambling are the same XOR
// operation, so one type serves both directions.
type Scrambler struct {
	seed  uint16
	state uint16
}

// NewScrambler returns a Scrambler that reseeds to seed at the start
// of every call to ScrambleBits/DescrambleBits/DescrambleLLR. seed must be
// nonzero (an all-zero LFSR never produces output), per §6
// ("lfsr_seed ... must be nonzero").
func NewScrambler(seed uint16) (*Scrambler, error) {
	if seed == 0 {
		return nil, newErr(ErrConfig, "lfsr_seed must be nonzero")
	}
	return &Scrambler{seed: seed, state: seed}, nil
}

// Reset reseeds the LFSR to its configured initial value. Called
// automatically at the start of each ScrambleBits/DescrambleBits/DescrambleLLR.
func (s *Scrambler) Reset() {
	s.state = s.seed
}

func (s *Scrambler) nextBit() byte {
	out := byte(s.state & 1)
	fb := ((s.state >> 15) ^ (s.state >> 14) ^ (s.state >> 12) ^ (s.state >> 3)) & 1
	s.state = (s.state >> 1) | (fb << 15)
	return out
}

// xorBits XORs every bit of in (one bit per byte, 0 or 1) against a
// freshly-seeded LFSR's output stream, in place into a new slice of
// the same length. Used for both directions since XOR is its own
// inverse.
func (s *Scrambler) xorBits(bits []byte) []byte {
	s.Reset()
	out := make([]byte, len(bits))
	for i, b := range bits {
		out[i] = b ^ s.nextBit()
	}
	return out
}

// ScrambleBits XORs a freshly-seeded codeword's worth of bits (one bit
// per byte, values 0/1) with the LFSR keystream.
func (s *Scrambler) ScrambleBits(bits []byte) []byte {
	return s.xorBits(bits)
}

// DescrambleBits undoes ScrambleBits. Because XOR with the same
// keystream is self-inverse, this is the identical operation.
func (s *Scrambler) DescrambleBits(bits []byte) []byte {
	return s.xorBits(bits)
}

// DescrambleLLR applies the same LFSR keystream to a stream of soft
// LLRs instead of hard bits: XORing a bit with 1 corresponds to
// negating its LLR's sign, so descrambling a soft stream is a
// sign-flip rather than an XOR.
func (s *Scrambler) DescrambleLLR(llrs []float64) []float64 {
	s.Reset()
	out := make([]float64, len(llrs))
	for i, v := range llrs {
		if s.nextBit() == 1 {
			out[i] = -v
		} else {
			out[i] = v
		}
	}
	return out
}

package skywire

// LDPCEncoder maps K systematic info bits to an N=8192 codeword over
// a quasi-cyclic protograph, per spec.md §4.B.
//
// The original source (original_source/src/2_ldpc_encoder.c) XORs
// every protograph column - including ones in the parity region -
// directly into the parity bits, which both reads past the end of
// the K-length info array for parity-region columns and ignores the
// dependency those columns encode. This encoder instead treats the
// parity region as a lower-triangular system and solves it by
// back-substitution, as spec.md §4.B requires.
type LDPCEncoder struct {
	cfg codeConfig
}

// NewLDPCEncoder builds an encoder for rate, validating that its
// protograph table yields a full-rank, solvable parity structure.
func NewLDPCEncoder(rate CodeRate) (*LDPCEncoder, error) {
	cfg, err := configFor(rate)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &LDPCEncoder{cfg: cfg}, nil
}

// K is the number of systematic info bits this encoder expects.
func (e *LDPCEncoder) K() int { return e.cfg.k }

// N is the codeword length this encoder produces (always LDPCN).
func (e *LDPCEncoder) N() int { return e.cfg.n }

// Encode maps info (K bytes, each 0 or 1) to an N-bit systematic
// codeword (one 0/1 byte per bit). info[0:K] appears verbatim as
// codeword[0:K].
func (e *LDPCEncoder) Encode(info []byte) ([]byte, error) {
	if len(info) != e.cfg.k {
		return nil, newErr(ErrConfig, "encoder expects %d info bits, got %d", e.cfg.k, len(info))
	}

	z := e.cfg.z
	infoCols := e.cfg.infoCols()
	protoRows := e.cfg.protoRows()

	codeword := make([]byte, e.cfg.n)
	copy(codeword, info)

	// Accumulate each check row's contribution from the information
	// columns only - the parity columns are solved, not XORed.
	contrib := make([][]byte, protoRows)
	for r := 0; r < protoRows; r++ {
		contrib[r] = make([]byte, z)
		row := e.cfg.proto[r]
		for c := 0; c < infoCols; c++ {
			s := row[c]
			if s < 0 {
				continue
			}
			block := info[c*z : c*z+z]
			for j := 0; j < z; j++ {
				// info position i maps to parity position (i+s) mod z,
				// so position j receives info bit (j-s) mod z.
				i := ((j-int(s))%z + z) % z
				contrib[r][j] ^= block[i]
			}
		}
	}

	// Back-substitute through the bidiagonal-identity parity region:
	// row r's check equation is
	//   circulant(diag_r) * parity[r] XOR circulant(sub_r) * parity[r-1] XOR contrib[r] = 0
	// Solve for parity[r] by applying the inverse (negated) shift of
	// the diagonal circulant to the right-hand side.
	parity := make([][]byte, protoRows)
	for r := 0; r < protoRows; r++ {
		row := e.cfg.proto[r]
		diagShift := row[infoCols+r]

		rhs := make([]byte, z)
		copy(rhs, contrib[r])
		if r > 0 {
			subShift := row[infoCols+r-1]
			if subShift >= 0 {
				prev := parity[r-1]
				for j := 0; j < z; j++ {
					i := ((j-int(subShift))%z + z) % z
					rhs[j] ^= prev[i]
				}
			}
		}

		// circulantApply(diagShift, parity[r])[j] == rhs[j], i.e.
		// parity[r][(j-diagShift) mod z] == rhs[j]; solve for each
		// parity position i = (j-diagShift) mod z directly.
		block := make([]byte, z)
		for i := 0; i < z; i++ {
			j := ((i+int(diagShift))%z + z) % z
			block[i] = rhs[j]
		}
		parity[r] = block
	}

	for r := 0; r < protoRows; r++ {
		copy(codeword[e.cfg.k+r*z:e.cfg.k+r*z+z], parity[r])
	}

	return codeword, nil
}

package skywire

import "math"

// DecodeState is the per-frame decoder state machine: Idle before the
// first LLR is loaded, Iterating while sum-product runs, and one of
// the two terminal states once Decode returns.
type DecodeState int

const (
	DecodeIdle DecodeState = iota
	DecodeIterating
	DecodeConverged
	DecodeMaxIterReached
)

// tannerEdge is one nonzero circulant-block bit connecting a check
// node to a variable node, expanded from the protograph.
type tannerEdge struct {
	check uint32
	vari  uint32
}

// LDPCDecoder runs sum-product belief propagation over the protograph
// built for a given rate, per spec.md §4.H.
//
// The original source (original_source/src/3_ldpc_decoder.c) sizes
// its message buffers as M*3 regardless of how many edges the
// protograph actually has, and its "decode" loop doesn't pass
// messages at all - it just re-hard-decides the channel LLR and
// recomputes a single global XOR every iteration, which can never
// change. This decoder instead builds the real edge list once at
// construction (resolving spec.md §9 Design Note 5 / SPEC_FULL.md
// OQ5) and performs real check-to-variable / variable-to-check
// message passing.
type LDPCDecoder struct {
	cfg      codeConfig
	edges    []tannerEdge
	checkToV [][]int // edge indices per check node
	varToC   [][]int // edge indices per variable node
	msgScale float64
	state    DecodeState
}

// LDPCDecoderOption configures optional decoder behavior at
// construction, matching spec.md §6's per-config tunables.
type LDPCDecoderOption func(*LDPCDecoder)

// WithMessageScale sets the check-to-variable message scaling factor
// (default 1.0) used to mitigate short-cycle bias, per spec.md §4.H.
func WithMessageScale(scale float64) LDPCDecoderOption {
	return func(d *LDPCDecoder) { d.msgScale = scale }
}

// NewLDPCDecoder builds a decoder for rate with edge-count-sized
// message buffers.
func NewLDPCDecoder(rate CodeRate, opts ...LDPCDecoderOption) (*LDPCDecoder, error) {
	cfg, err := configFor(rate)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &LDPCDecoder{cfg: cfg, msgScale: 1.0, state: DecodeIdle}
	d.buildTannerGraph()
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *LDPCDecoder) buildTannerGraph() {
	z := d.cfg.z
	numCheckNodes := d.cfg.m
	numVarNodes := d.cfg.n

	d.checkToV = make([][]int, numCheckNodes)
	d.varToC = make([][]int, numVarNodes)

	for r, row := range d.cfg.proto {
		for c, s := range row {
			if s < 0 {
				continue
			}
			for j := 0; j < z; j++ {
				i := ((j-int(s))%z + z) % z
				check := uint32(r*z + j)
				vari := uint32(c*z + i)
				idx := len(d.edges)
				d.edges = append(d.edges, tannerEdge{check: check, vari: vari})
				d.checkToV[check] = append(d.checkToV[check], idx)
				d.varToC[vari] = append(d.varToC[vari], idx)
			}
		}
	}
}

// EdgeCount is the number of Tanner-graph edges; message buffers are
// sized exactly to this (SPEC_FULL.md S10).
func (d *LDPCDecoder) EdgeCount() int { return len(d.edges) }

// N is the codeword length this decoder expects LLRs for.
func (d *LDPCDecoder) N() int { return d.cfg.n }

// K is the number of systematic info bits a converged codeword starts with.
func (d *LDPCDecoder) K() int { return d.cfg.k }

const tanhSaturation = 3.0 // |x|>3 saturates to +/-1, per spec.md §4.H

func boundedTanh(x float64) float64 {
	if x > tanhSaturation {
		return 1
	}
	if x < -tanhSaturation {
		return -1
	}
	return math.Tanh(x / 2)
}

// DecodeResult carries the hard decision and convergence outcome of
// one Decode call.
type DecodeResult struct {
	Bits      []byte // hard decision, length N
	Converged bool
	Iters     int
}

// Decode runs sum-product belief propagation on channelLLR (length N,
// positive -> bit 0, negative -> bit 1) for up to maxIter iterations,
// with early termination on syndrome satisfaction when earlyTerm is
// true. On reaching maxIter without a satisfied syndrome it returns a
// result with Converged=false and an ErrDecodeUncorrectable error; the
// hard decision is still populated so the caller may choose to pass
// the frame on anyway.
func (d *LDPCDecoder) Decode(channelLLR []float64, maxIter int, earlyTerm bool) (*DecodeResult, error) {
	if len(channelLLR) != d.cfg.n {
		return nil, newErr(ErrConfig, "decoder expects %d LLRs, got %d", d.cfg.n, len(channelLLR))
	}
	if maxIter <= 0 {
		return nil, newErr(ErrConfig, "max_iter must be positive, got %d", maxIter)
	}

	d.state = DecodeIterating

	numEdges := len(d.edges)
	qMsg := make([]float64, numEdges) // variable-to-check
	rMsg := make([]float64, numEdges) // check-to-variable

	for e := range d.edges {
		qMsg[e] = channelLLR[d.edges[e].vari]
	}

	lv := make([]float64, d.cfg.n)
	hard := make([]byte, d.cfg.n)

	iters := 0
	converged := false

	for iter := 0; iter < maxIter; iter++ {
		iters = iter + 1

		// Check-node update: m_{c->v} = 2*atanh(prod_{v'!=v} tanh(q_{v'->c}/2))
		for _, edgeIdxs := range d.checkToV {
			if len(edgeIdxs) == 0 {
				continue
			}
			signProd := 1.0
			tanhProd := 1.0
			for _, e := range edgeIdxs {
				t := boundedTanh(qMsg[e])
				if t < 0 {
					signProd = -signProd
					t = -t
				}
				tanhProd *= t
			}
			for _, e := range edgeIdxs {
				t := boundedTanh(qMsg[e])
				sign := 1.0
				abs := t
				if t < 0 {
					sign = -1
					abs = -t
				}
				// exclude this edge's own contribution
				excl := tanhProd
				if abs > 1e-12 {
					excl /= abs
				}
				exclSign := signProd
				if sign < 0 {
					exclSign = -exclSign
				}
				m := 2 * math.Atanh(clamp(exclSign*excl, -0.999999, 0.999999))
				rMsg[e] = d.msgScale * m
			}
		}

		// Variable-node update: L_v = L_v^channel + sum_c m_{c->v}
		copy(lv, channelLLR)
		for e, edge := range d.edges {
			lv[edge.vari] += rMsg[e]
		}
		for _, edgeIdxs := range d.varToC {
			for _, e := range edgeIdxs {
				qMsg[e] = lv[d.edges[e].vari] - rMsg[e]
			}
		}

		for v := 0; v < d.cfg.n; v++ {
			if lv[v] < 0 {
				hard[v] = 1
			} else {
				hard[v] = 0
			}
		}

		if earlyTerm && d.syndromeZero(hard) {
			converged = true
			break
		}
	}

	result := &DecodeResult{Bits: append([]byte(nil), hard...), Converged: converged, Iters: iters}

	if !converged {
		// Confirm (or compute, when early termination was disabled)
		// the syndrome once more so the caller's Converged flag
		// reflects reality, not just "ran out of iterations".
		if d.syndromeZero(hard) {
			result.Converged = true
			d.state = DecodeConverged
			return result, nil
		}
		d.state = DecodeMaxIterReached
		return result, newErr(ErrDecodeUncorrectable, "syndrome nonzero after %d iterations", iters)
	}

	d.state = DecodeConverged
	return result, nil
}

// syndromeZero reports whether H * bits^T == 0 over GF(2), i.e. every
// check node's XOR of its adjacent variable bits is zero.
func (d *LDPCDecoder) syndromeZero(bits []byte) bool {
	for _, edgeIdxs := range d.checkToV {
		var sum byte
		for _, e := range edgeIdxs {
			sum ^= bits[d.edges[e].vari]
		}
		if sum != 0 {
			return false
		}
	}
	return true
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

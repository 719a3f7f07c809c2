package skywire

// Config bundles every construction-time tunable spec.md §6
// recognises. It is built once via NewConfig and passed to NewPipeline;
// there is no persisted state and no environment-variable or CLI
// surface inside the core (collaborating cmd/ tools may load one from
// YAML - see configyaml.go - but that's a bench convenience, not a
// core capability).
type Config struct {
	Rate CodeRate

	PLLBandwidthScale float64
	PLLDamping        float64

	LDPCMaxIter   int
	LDPCEarlyTerm bool
	LDPCMsgScale  float64

	LFSRSeed uint16

	CarrierFreqHz    float64
	SampleRateHz     float64
	SamplesPerSymbol int
}

// Option mutates a Config during NewConfig.
type Option func(*Config)

// WithCodeRate sets the LDPC code rate (default Rate2_3, per spec.md §6).
func WithCodeRate(rate CodeRate) Option {
	return func(c *Config) { c.Rate = rate }
}

// WithPLLBandwidthScale sets pll_bandwidth_scale (default 0.01):
// smaller means slower, more-stable carrier tracking.
func WithPLLBandwidthScale(scale float64) Option {
	return func(c *Config) { c.PLLBandwidthScale = scale }
}

// WithPLLDamping sets Config.PLLDamping (default 0.707). The value is
// stored only: the demodulator's carrier loop always uses the fixed
// pllDamping constant (0.707) and does not read this field.
func WithPLLDamping(damping float64) Option {
	return func(c *Config) { c.PLLDamping = damping }
}

// WithLDPCMaxIter sets ldpc_max_iter, the decoder's iteration cap
// (default 50).
func WithLDPCMaxIter(iters int) Option {
	return func(c *Config) { c.LDPCMaxIter = iters }
}

// WithLDPCEarlyTerm toggles ldpc_early_term (default on).
func WithLDPCEarlyTerm(enabled bool) Option {
	return func(c *Config) { c.LDPCEarlyTerm = enabled }
}

// WithLDPCMsgScale sets ldpc_msg_scale, the check-to-variable message
// scaling factor (default 1.0).
func WithLDPCMsgScale(scale float64) Option {
	return func(c *Config) { c.LDPCMsgScale = scale }
}

// WithLFSRSeed sets lfsr_seed, the scrambler's initial state (default
// 0xACE1). Must be nonzero.
func WithLFSRSeed(seed uint16) Option {
	return func(c *Config) { c.LFSRSeed = seed }
}

// WithCarrierFreq sets the carrier frequency in Hz (default 2.35 GHz,
// per spec.md §6).
func WithCarrierFreq(hz float64) Option {
	return func(c *Config) { c.CarrierFreqHz = hz }
}

// WithSampleRate sets the baseband sample rate in Hz (default 80 MHz).
func WithSampleRate(hz float64) Option {
	return func(c *Config) { c.SampleRateHz = hz }
}

// WithSamplesPerSymbol sets SPS (default 8).
func WithSamplesPerSymbol(sps int) Option {
	return func(c *Config) { c.SamplesPerSymbol = sps }
}

// NewConfig builds a Config starting from spec.md §6's defaults and
// applying opts in order, then validates it.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Rate:              Rate2_3,
		PLLBandwidthScale: PTPLLBandwidthScale,
		PLLDamping:        pllDamping,
		LDPCMaxIter:       50,
		LDPCEarlyTerm:     true,
		LDPCMsgScale:      1.0,
		LFSRSeed:          DefaultLFSRSeed,
		CarrierFreqHz:     2.35e9,
		SampleRateHz:      80e6,
		SamplesPerSymbol:  8,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.LFSRSeed == 0 {
		return newErr(ErrConfig, "lfsr_seed must be nonzero")
	}
	if c.LDPCMaxIter <= 0 {
		return newErr(ErrConfig, "ldpc_max_iter must be positive")
	}
	if c.SamplesPerSymbol <= 0 {
		return newErr(ErrConfig, "samples_per_symbol must be positive")
	}
	if c.SampleRateHz <= 0 {
		return newErr(ErrConfig, "sample_rate must be positive")
	}
	if c.PLLBandwidthScale <= 0 {
		return newErr(ErrConfig, "pll_bandwidth_scale must be positive")
	}
	switch c.Rate {
	case Rate1_2, Rate2_3, Rate4_5:
	default:
		return newErr(ErrConfig, "unknown code_rate %v", c.Rate)
	}
	return nil
}

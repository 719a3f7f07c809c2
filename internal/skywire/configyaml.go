package skywire

import (
	"os"

	"gopkg.in/yaml.v3"
)

// yamlConfig mirrors Config's fields for the bench tools' on-disk
// convenience format (read by cmd/skywire-loopback's --config flag).
// The core package itself never reads files; this exists purely so a
// bench command can take one config file instead of growing its own
// flag set for every tunable.
type yamlConfig struct {
	CodeRate          string  `yaml:"code_rate"`
	PLLBandwidthScale float64 `yaml:"pll_bandwidth_scale"`
	PLLDamping        float64 `yaml:"pll_damping"`
	LDPCMaxIter       int     `yaml:"ldpc_max_iter"`
	LDPCEarlyTerm     *bool   `yaml:"ldpc_early_term"`
	LDPCMsgScale      float64 `yaml:"ldpc_msg_scale"`
	LFSRSeed          int     `yaml:"lfsr_seed"`
	CarrierFreqHz     float64 `yaml:"carrier_freq_hz"`
	SampleRateHz      float64 `yaml:"sample_rate_hz"`
	SamplesPerSymbol  int     `yaml:"samples_per_symbol"`
}

func parseCodeRate(s string) (CodeRate, error) {
	switch s {
	case "", "2/3":
		return Rate2_3, nil
	case "1/2":
		return Rate1_2, nil
	case "4/5":
		return Rate4_5, nil
	default:
		return 0, newErr(ErrConfig, "unknown code_rate %q", s)
	}
}

// LoadConfigYAML reads a YAML file in the yamlConfig shape from path
// and builds a Config from it, applying the same defaults NewConfig
// would for any field the file omits.
func LoadConfigYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newErr(ErrConfig, "cannot read config %q: %s", path, err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, newErr(ErrConfig, "cannot parse config %q: %s", path, err)
	}

	var opts []Option
	if y.CodeRate != "" {
		rate, err := parseCodeRate(y.CodeRate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCodeRate(rate))
	}
	if y.PLLBandwidthScale != 0 {
		opts = append(opts, WithPLLBandwidthScale(y.PLLBandwidthScale))
	}
	if y.PLLDamping != 0 {
		opts = append(opts, WithPLLDamping(y.PLLDamping))
	}
	if y.LDPCMaxIter != 0 {
		opts = append(opts, WithLDPCMaxIter(y.LDPCMaxIter))
	}
	if y.LDPCEarlyTerm != nil {
		opts = append(opts, WithLDPCEarlyTerm(*y.LDPCEarlyTerm))
	}
	if y.LDPCMsgScale != 0 {
		opts = append(opts, WithLDPCMsgScale(y.LDPCMsgScale))
	}
	if y.LFSRSeed != 0 {
		opts = append(opts, WithLFSRSeed(uint16(y.LFSRSeed)))
	}
	if y.CarrierFreqHz != 0 {
		opts = append(opts, WithCarrierFreq(y.CarrierFreqHz))
	}
	if y.SampleRateHz != 0 {
		opts = append(opts, WithSampleRate(y.SampleRateHz))
	}
	if y.SamplesPerSymbol != 0 {
		opts = append(opts, WithSamplesPerSymbol(y.SamplesPerSymbol))
	}

	return NewConfig(opts...)
}

/* Test fixture for the skywire modem: sweep channel noise over a
 * simulated loopback and report the frame error rate. */
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/pflag"

	"github.com/irig106tm/skywire/internal/skywire"
)

func main() {
	rate := pflag.StringP("rate", "r", "2/3", "LDPC code rate: 1/2, 2/3, or 4/5")
	trials := pflag.IntP("trials", "n", 20, "Number of frames per noise level")
	minSNR := pflag.Float64P("min-snr", "s", 0.0, "Lowest noise sigma to test")
	maxSNR := pflag.Float64P("max-snr", "S", 0.5, "Highest noise sigma to test")
	steps := pflag.IntP("steps", "k", 6, "Number of noise levels between min and max")
	help := pflag.BoolP("help", "h", false, "Display help text")
	pflag.Parse()

	if *help {
		fmt.Println(skywire.BuildInfo())
		pflag.Usage()
		return
	}

	codeRate, err := parseRate(*rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := skywire.NewConfig(skywire.WithCodeRate(codeRate))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", skywire.BuildInfo())
	fmt.Printf("rate=%s trials=%d\n", codeRate, *trials)
	fmt.Println("sigma\tframes_ok\tframes_total\tframe_error_rate")

	for step := 0; step < *steps; step++ {
		var sigma float64
		if *steps > 1 {
			sigma = *minSNR + (*maxSNR-*minSNR)*float64(step)/float64(*steps-1)
		} else {
			sigma = *minSNR
		}
		framesOK, framesTotal := runTrial(cfg, *trials, sigma)
		fer := 1 - float64(framesOK)/float64(framesTotal)
		fmt.Printf("%.4f\t%d\t%d\t%.4f\n", sigma, framesOK, framesTotal, fer)
	}
}

func parseRate(s string) (skywire.CodeRate, error) {
	switch s {
	case "1/2":
		return skywire.Rate1_2, nil
	case "2/3":
		return skywire.Rate2_3, nil
	case "4/5":
		return skywire.Rate4_5, nil
	default:
		return 0, fmt.Errorf("unknown rate %q", s)
	}
}

type recordCollector struct {
	records []skywire.TelemetryRecord
}

func (c *recordCollector) DeliverRecord(r skywire.TelemetryRecord) {
	c.records = append(c.records, r)
}

type sliceSink struct {
	samples []skywire.Sample
}

func (s *sliceSink) WriteSamples(samples []skywire.Sample) error {
	s.samples = append(s.samples, samples...)
	return nil
}

func runTrial(cfg *skywire.Config, trials int, sigma float64) (framesOK, framesTotal int) {
	rng := rand.New(rand.NewSource(1))

	for t := 0; t < trials; t++ {
		txPipe, err := skywire.NewPipeline(cfg)
		if err != nil {
			continue
		}
		rxPipe, err := skywire.NewPipeline(cfg)
		if err != nil {
			continue
		}

		record := randomRecord(rng, uint32(t))

		sink := &sliceSink{}
		if err := txPipe.TransmitFrame(&record, sink); err != nil {
			continue
		}

		noisy := addNoise(rng, sink.samples, sigma)

		collector := &recordCollector{}
		rxPipe.ReceiveSamples(noisy, collector)

		framesTotal++
		if len(collector.records) == 1 && collector.records[0].FrameCounter == record.FrameCounter {
			framesOK++
		}
	}
	return framesOK, framesTotal
}

func addNoise(rng *rand.Rand, samples []skywire.Sample, sigma float64) []skywire.Sample {
	out := make([]skywire.Sample, len(samples))
	for i, s := range samples {
		out[i] = skywire.Sample{
			I: s.I + float32(sigma*rng.NormFloat64()),
			Q: s.Q + float32(sigma*rng.NormFloat64()),
		}
	}
	return out
}

func randomRecord(rng *rand.Rand, counter uint32) skywire.TelemetryRecord {
	var r skywire.TelemetryRecord
	r.FrameCounter = counter
	r.TimestampUs = uint64(rng.Int63())
	r.AccelXG = float32(rng.NormFloat64())
	r.AccelYG = float32(rng.NormFloat64())
	r.AccelZG = float32(rng.NormFloat64())
	r.GyroXDps = float32(rng.NormFloat64())
	r.GyroYDps = float32(rng.NormFloat64())
	r.GyroZDps = float32(rng.NormFloat64())
	r.FlightMode = byte(rng.Intn(8))
	r.Latitude = rng.Float64()*180 - 90
	r.Longitude = rng.Float64()*360 - 180
	r.AltitudeM = float32(rng.Float64() * 10000)
	r.BatteryVoltage = float32(20 + rng.Float64()*8)
	r.SystemStatus = uint16(rng.Intn(1 << 16))
	return r
}

package skywire

import "github.com/gordonklaus/portaudio"

// AudioBridge carries complex baseband samples over a stereo sound
// card: the I rail on the left channel, Q on the right. This is a
// bench convenience for driving the modulator/demodulator through a
// real SDR's audio-style I/Q interface without a dedicated RF front
// end, grounded on the teacher's sound-card modem I/O (src/audio.go)
// but built on the portaudio binding already in its dependency
// graph instead of the teacher's cgo OSS/ALSA path.
type AudioBridge struct {
	stream  *portaudio.Stream
	in, out []float32
	frames  int
}

// OpenAudioBridge opens the default portaudio device for the given
// sample rate and buffer size (in frames), duplex, ready to satisfy
// both SampleSink and SampleSource.
func OpenAudioBridge(sampleRate float64, framesPerBuffer int) (*AudioBridge, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, newErr(ErrConfig, "portaudio init failed: %s", err)
	}
	in := make([]float32, framesPerBuffer*2)
	out := make([]float32, framesPerBuffer*2)
	stream, err := portaudio.OpenDefaultStream(2, 2, sampleRate, framesPerBuffer, in, out)
	if err != nil {
		portaudio.Terminate()
		return nil, newErr(ErrConfig, "portaudio open failed: %s", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, newErr(ErrConfig, "portaudio start failed: %s", err)
	}
	return &AudioBridge{stream: stream, in: in, out: out, frames: framesPerBuffer}, nil
}

// WriteSamples satisfies SampleSink: interleaves I/Q into the output
// buffer and writes it out in framesPerBuffer-sized chunks.
func (a *AudioBridge) WriteSamples(samples []Sample) error {
	for off := 0; off < len(samples); off += a.frames {
		end := off + a.frames
		if end > len(samples) {
			end = len(samples)
		}
		for i := off; i < end; i++ {
			a.out[(i-off)*2] = samples[i].I
			a.out[(i-off)*2+1] = samples[i].Q
		}
		for i := end - off; i < a.frames; i++ {
			a.out[i*2] = 0
			a.out[i*2+1] = 0
		}
		if err := a.stream.Write(); err != nil {
			return newErr(ErrConfig, "portaudio write failed: %s", err)
		}
	}
	return nil
}

// ReadSamples satisfies SampleSource: reads one buffer's worth of
// input frames and de-interleaves into buf, returning the number of
// samples filled.
func (a *AudioBridge) ReadSamples(buf []Sample) (int, error) {
	frames := a.frames
	if frames > len(buf) {
		frames = len(buf)
	}
	if err := a.stream.Read(); err != nil {
		return 0, newErr(ErrConfig, "portaudio read failed: %s", err)
	}
	for i := 0; i < frames; i++ {
		buf[i] = Sample{I: a.in[i*2], Q: a.in[i*2+1]}
	}
	return frames, nil
}

// Close stops the stream and releases the portaudio device.
func (a *AudioBridge) Close() error {
	if err := a.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

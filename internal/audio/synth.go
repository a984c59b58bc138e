package audio

import (
	"bytes"
	"encoding/binary"
	"math"

	"partyclock/internal/core/model"
)

// PCM output format shared with the playback context: 44.1 kHz mono,
// signed 16-bit little-endian.
const (
	sampleRate     = 44100
	bytesPerSample = 2
)

// Synthesize renders a cue into a PCM buffer. The tone follows an
// exponential decay envelope exp(-t * decay), so the signal is effectively
// silent by the end of the cue duration.
func Synthesize(spec model.CueSpec) []byte {
	samples := int(float64(sampleRate) * spec.Duration.Seconds())
	buf := bytes.NewBuffer(make([]byte, 0, samples*bytesPerSample))
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * spec.Decay)
		value := oscillate(spec.Waveform, spec.Frequency, t) * spec.Amplitude * envelope
		_ = binary.Write(buf, binary.LittleEndian, int16(value*math.MaxInt16))
	}
	return buf.Bytes()
}

func oscillate(waveform model.Waveform, frequency, t float64) float64 {
	switch waveform {
	case model.WaveSawtooth:
		// Rising ramp from -1 to 1 once per period.
		phase := t * frequency
		return 2 * (phase - math.Floor(phase+0.5))
	default:
		return math.Sin(2 * math.Pi * frequency * t)
	}
}

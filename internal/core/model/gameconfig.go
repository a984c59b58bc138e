package model

import "time"

// DeckSize is the fixed number of words in one special-mode cycle.
const DeckSize = 5

// Waveform selects the oscillator shape for a synthesized cue.
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveSawtooth Waveform = "sawtooth"
)

// CueSpec describes one synthesized audio cue.
type CueSpec struct {
	Frequency float64
	Waveform  Waveform
	Amplitude float64
	Duration  time.Duration
	Decay     float64
}

// DefaultWarningCue is the short high beep played on each of the last
// five countdown seconds.
func DefaultWarningCue() CueSpec {
	return CueSpec{
		Frequency: 1000,
		Waveform:  WaveSine,
		Amplitude: 0.3,
		Duration:  150 * time.Millisecond,
		Decay:     30,
	}
}

// DefaultBuzzerCue is the long low tone played when a phase reaches zero.
func DefaultBuzzerCue() CueSpec {
	return CueSpec{
		Frequency: 200,
		Waveform:  WaveSawtooth,
		Amplitude: 0.5,
		Duration:  time.Second,
		Decay:     6,
	}
}

// GameConfig bundles everything the app reads from the embedded deck file:
// default durations, the special-mode word deck and the cue definitions.
type GameConfig struct {
	Settings TimerSettings
	Words    [DeckSize]string
	Warning  CueSpec
	Buzzer   CueSpec
}

// DefaultGameConfig returns the compiled-in configuration used when the
// embedded deck file is missing or malformed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Settings: DefaultTimerSettings(),
		Words: [DeckSize]string{
			"Lighthouse",
			"Avalanche",
			"Juggler",
			"Compass",
			"Firefly",
		},
		Warning: DefaultWarningCue(),
		Buzzer:  DefaultBuzzerCue(),
	}
}

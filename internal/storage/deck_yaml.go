package storage

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"partyclock/internal/core/model"
)

type yamlCue struct {
	FrequencyHz float64 `yaml:"frequency_hz"`
	Waveform    string  `yaml:"waveform"`
	Amplitude   float64 `yaml:"amplitude"`
	DurationMs  int     `yaml:"duration_ms"`
	Decay       float64 `yaml:"decay"`
}

type yamlDeck struct {
	TurnSeconds        int      `yaml:"turn_seconds"`
	GuessSeconds       int      `yaml:"guess_seconds"`
	SpecialTurnSeconds int      `yaml:"special_turn_seconds"`
	SpecialWords       []string `yaml:"special_words"`
	Cues               struct {
		Warning yamlCue `yaml:"warning"`
		Buzzer  yamlCue `yaml:"buzzer"`
	} `yaml:"cues"`
}

// LoadGameConfig parses an embedded deck document. Fields that are missing
// or out of range keep their compiled-in defaults; only a document that
// fails to parse at all is reported as an error, and even then the caller
// receives usable defaults.
func LoadGameConfig(rawData []byte) (model.GameConfig, error) {
	config := model.DefaultGameConfig()

	var fileData yamlDeck
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse deck yaml: %w", err)
	}

	applyDeck(&config, fileData)
	return config, nil
}

func applyDeck(config *model.GameConfig, fileData yamlDeck) {
	if inRange(fileData.TurnSeconds, model.MinTurnSeconds, model.MaxTurnSeconds) {
		config.Settings.TurnSeconds = fileData.TurnSeconds
	}
	if inRange(fileData.GuessSeconds, model.MinGuessSeconds, model.MaxGuessSeconds) {
		config.Settings.GuessSeconds = fileData.GuessSeconds
	}
	if inRange(fileData.SpecialTurnSeconds, model.MinSpecialTurnSeconds, model.MaxSpecialTurnSeconds) {
		config.Settings.SpecialTurnSeconds = fileData.SpecialTurnSeconds
	}

	// The special cycle length is fixed; a deck of any other size is ignored.
	if len(fileData.SpecialWords) == model.DeckSize {
		complete := true
		for _, word := range fileData.SpecialWords {
			if word == "" {
				complete = false
				break
			}
		}
		if complete {
			copy(config.Words[:], fileData.SpecialWords)
		}
	}

	applyCue(&config.Warning, fileData.Cues.Warning)
	applyCue(&config.Buzzer, fileData.Cues.Buzzer)
}

func applyCue(cue *model.CueSpec, fileData yamlCue) {
	if fileData.FrequencyHz > 0 {
		cue.Frequency = fileData.FrequencyHz
	}
	switch model.Waveform(fileData.Waveform) {
	case model.WaveSine, model.WaveSawtooth:
		cue.Waveform = model.Waveform(fileData.Waveform)
	}
	if fileData.Amplitude > 0 && fileData.Amplitude <= 1 {
		cue.Amplitude = fileData.Amplitude
	}
	if fileData.DurationMs > 0 {
		cue.Duration = time.Duration(fileData.DurationMs) * time.Millisecond
	}
	if fileData.Decay > 0 {
		cue.Decay = fileData.Decay
	}
}

func inRange(value, min, max int) bool {
	return value >= min && value <= max
}

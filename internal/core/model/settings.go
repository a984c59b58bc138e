package model

// Duration bounds for each configurable phase, in seconds.
const (
	MinTurnSeconds        = 10
	MaxTurnSeconds        = 300
	MinGuessSeconds       = 5
	MaxGuessSeconds       = 120
	MinSpecialTurnSeconds = 10
	MaxSpecialTurnSeconds = 300
)

// TimerSettings holds the three configurable phase durations.
type TimerSettings struct {
	TurnSeconds        int
	GuessSeconds       int
	SpecialTurnSeconds int
}

// DefaultTimerSettings returns the built-in phase durations.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		TurnSeconds:        60,
		GuessSeconds:       30,
		SpecialTurnSeconds: 45,
	}
}

// Clamped returns a copy with every duration forced into its valid range.
func (settings TimerSettings) Clamped() TimerSettings {
	settings.TurnSeconds = clamp(settings.TurnSeconds, MinTurnSeconds, MaxTurnSeconds)
	settings.GuessSeconds = clamp(settings.GuessSeconds, MinGuessSeconds, MaxGuessSeconds)
	settings.SpecialTurnSeconds = clamp(settings.SpecialTurnSeconds, MinSpecialTurnSeconds, MaxSpecialTurnSeconds)
	return settings
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

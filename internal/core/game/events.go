package game

import "time"

// Mode is the top-level game variant.
type Mode string

const (
	ModeRegular Mode = "regular"
	ModeSpecial Mode = "special"
)

// Phase is the sub-state of Regular mode: explaining or guessing.
type Phase string

const (
	PhaseTurn  Phase = "turn"
	PhaseGuess Phase = "guess"
)

// WarningWindow is the number of final countdown seconds that receive a
// warning cue. The cue fires on each second from WarningWindow down to 1,
// never on 0.
const WarningWindow = 5

// Cue identifies a synthesized audio signal.
type Cue string

const (
	CueWarning Cue = "warning"
	CueBuzzer  Cue = "buzzer"
)

// EventType defines the type of Machine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCue         EventType = "cue"
	EventGuessBegin  EventType = "guess_begin"
	EventTurnEnded   EventType = "turn_ended"
)

// Snapshot is the observable timer state handed to the presentation layer.
type Snapshot struct {
	Running   bool
	Remaining int
	Phase     Phase
	Finished  bool
	Mode      Mode
	Word      int
}

// Event represents a Machine update for observers. State always carries the
// post-transition snapshot. Cue is set for EventCue; GuessSeconds is set for
// EventGuessBegin.
type Event struct {
	Type         EventType
	Cue          Cue
	State        Snapshot
	GuessSeconds int
	At           time.Time
}

package game

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"partyclock/internal/core/model"
)

// Config contains runtime options for Machine.
type Config struct {
	TickInterval time.Duration
	Clock        clockwork.Clock
}

// Machine is the timer state machine driving the game. It owns the current
// phase, mode, remaining seconds and the word cursor, consumes one-second
// ticks and user commands, and fans out events to observers. All mutation is
// serialized by the internal mutex; commands run to completion synchronously.
type Machine struct {
	mu       sync.Mutex
	options  Config
	settings model.TimerSettings

	running   bool
	finished  bool
	remaining int
	phase     Phase
	mode      Mode
	word      int

	events   []chan Event
	tickStop chan struct{}
	closed   bool
}

// New creates a Machine in Regular mode, Turn phase, paused, with the full
// turn duration on the clock.
func New(settings model.TimerSettings, options Config) *Machine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	machine := &Machine{
		options:  options,
		settings: settings.Clamped(),
		phase:    PhaseTurn,
		mode:     ModeRegular,
		word:     1,
	}
	machine.remaining = machine.settings.TurnSeconds
	return machine
}

// Subscribe registers a new observer channel. Events are delivered with
// non-blocking sends; a full channel drops the event rather than stalling
// the machine.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	machine.events = append(machine.events, ch)
	machine.mu.Unlock()
	return ch
}

// Snapshot returns the current observable state.
func (machine *Machine) Snapshot() Snapshot {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.snapshotLocked()
}

// Settings returns the durations currently applied to the machine.
func (machine *Machine) Settings() model.TimerSettings {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.settings
}

// Start begins or resumes the countdown. A finished turn is cleared first.
// Calling Start while already running is a no-op.
func (machine *Machine) Start() {
	machine.mu.Lock()
	if machine.closed || machine.running {
		machine.mu.Unlock()
		return
	}
	machine.finished = false
	machine.running = true
	machine.armLocked()
	event := machine.stateChangeLocked()
	machine.mu.Unlock()

	machine.emit(event)
}

// Pause freezes the countdown. Finished and remaining time are untouched.
// Calling Pause while already paused is a no-op.
func (machine *Machine) Pause() {
	machine.mu.Lock()
	if machine.closed || !machine.running {
		machine.mu.Unlock()
		return
	}
	machine.running = false
	machine.disarmLocked()
	event := machine.stateChangeLocked()
	machine.mu.Unlock()

	machine.emit(event)
}

// Reset stops the countdown and restores the nominal duration for the
// current mode. The phase returns to Turn; the word cursor is untouched.
func (machine *Machine) Reset() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.running = false
	machine.finished = false
	machine.phase = PhaseTurn
	machine.remaining = machine.nominalLocked(machine.mode)
	machine.disarmLocked()
	event := machine.stateChangeLocked()
	machine.mu.Unlock()

	machine.emit(event)
}

// NextWord advances the special-mode word cursor, wrapping after the last
// word, and rearms a fresh special turn. Outside Special mode it is a no-op.
func (machine *Machine) NextWord() {
	machine.mu.Lock()
	if machine.closed || machine.mode != ModeSpecial {
		machine.mu.Unlock()
		return
	}
	machine.word = machine.word%model.DeckSize + 1
	machine.running = false
	machine.finished = false
	machine.phase = PhaseTurn
	machine.remaining = machine.settings.SpecialTurnSeconds
	machine.disarmLocked()
	event := machine.stateChangeLocked()
	machine.mu.Unlock()

	machine.emit(event)
}

// ToggleMode switches between Regular and Special mode. The machine stops,
// the phase returns to Turn, the word cursor rewinds to the first word and
// the new mode's nominal duration is loaded.
func (machine *Machine) ToggleMode() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	if machine.mode == ModeRegular {
		machine.mode = ModeSpecial
	} else {
		machine.mode = ModeRegular
	}
	machine.phase = PhaseTurn
	machine.running = false
	machine.finished = false
	machine.word = 1
	machine.remaining = machine.nominalLocked(machine.mode)
	machine.disarmLocked()
	event := machine.stateChangeLocked()
	machine.mu.Unlock()

	machine.emit(event)
}

// ApplySettings replaces the durations and reloads the remaining time for
// the current phase and mode. The machine stops; phase, mode, finished flag
// and word cursor are untouched.
func (machine *Machine) ApplySettings(settings model.TimerSettings) {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.settings = settings.Clamped()
	switch {
	case machine.mode == ModeSpecial:
		machine.remaining = machine.settings.SpecialTurnSeconds
	case machine.phase == PhaseGuess:
		machine.remaining = machine.settings.GuessSeconds
	default:
		machine.remaining = machine.settings.TurnSeconds
	}
	machine.running = false
	machine.disarmLocked()
	event := machine.stateChangeLocked()
	machine.mu.Unlock()

	machine.emit(event)
}

// Stop shuts the machine down and closes all observer channels. The machine
// accepts no commands afterwards.
func (machine *Machine) Stop() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.closed = true
	machine.running = false
	machine.disarmLocked()
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// armLocked launches the tick loop. The stop channel is owned by exactly one
// loop; every transition out of the running state invalidates it, so a tick
// can never fire against state left by a later command.
func (machine *Machine) armLocked() {
	if machine.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	machine.tickStop = stop
	go machine.run(stop)
}

func (machine *Machine) disarmLocked() {
	if machine.tickStop != nil {
		close(machine.tickStop)
		machine.tickStop = nil
	}
}

func (machine *Machine) run(stop chan struct{}) {
	ticker := machine.options.Clock.NewTicker(machine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			machine.tick()
		}
	}
}

// tick advances the countdown by one second and applies the phase
// transition rules. A tick that raced with a pause or reset observes
// running == false and does nothing.
func (machine *Machine) tick() {
	machine.mu.Lock()
	if !machine.running || machine.remaining <= 0 {
		machine.mu.Unlock()
		return
	}

	machine.remaining--
	newTime := machine.remaining

	if newTime >= 1 && newTime <= WarningWindow {
		machine.emitLocked(Event{
			Type:  EventCue,
			Cue:   CueWarning,
			State: machine.snapshotLocked(),
			At:    machine.options.Clock.Now(),
		})
	}

	if newTime > 0 {
		machine.emitLocked(Event{
			Type:  EventProgress,
			State: machine.snapshotLocked(),
			At:    machine.options.Clock.Now(),
		})
		machine.mu.Unlock()
		return
	}

	machine.emitLocked(Event{
		Type:  EventCue,
		Cue:   CueBuzzer,
		State: machine.snapshotLocked(),
		At:    machine.options.Clock.Now(),
	})

	switch {
	case machine.mode == ModeSpecial:
		// End of a special word: stop and wait for the next word.
		machine.remaining = machine.settings.SpecialTurnSeconds
		machine.running = false
		machine.finished = true
		machine.disarmLocked()
		machine.emitLocked(Event{
			Type:  EventTurnEnded,
			State: machine.snapshotLocked(),
			At:    machine.options.Clock.Now(),
		})
	case machine.phase == PhaseTurn:
		// Explaining is over; guessing continues the same turn without a
		// manual restart, so the clock keeps running.
		machine.remaining = machine.settings.GuessSeconds
		machine.phase = PhaseGuess
		machine.emitLocked(Event{
			Type:         EventGuessBegin,
			State:        machine.snapshotLocked(),
			GuessSeconds: machine.settings.GuessSeconds,
			At:           machine.options.Clock.Now(),
		})
	default:
		// End of the guess phase: the turn is done, next speaker restarts.
		machine.remaining = machine.settings.TurnSeconds
		machine.phase = PhaseTurn
		machine.running = false
		machine.finished = true
		machine.disarmLocked()
		machine.emitLocked(Event{
			Type:  EventTurnEnded,
			State: machine.snapshotLocked(),
			At:    machine.options.Clock.Now(),
		})
	}
	machine.mu.Unlock()
}

func (machine *Machine) nominalLocked(mode Mode) int {
	if mode == ModeSpecial {
		return machine.settings.SpecialTurnSeconds
	}
	return machine.settings.TurnSeconds
}

func (machine *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		Running:   machine.running,
		Remaining: machine.remaining,
		Phase:     machine.phase,
		Finished:  machine.finished,
		Mode:      machine.mode,
		Word:      machine.word,
	}
}

func (machine *Machine) stateChangeLocked() Event {
	return Event{
		Type:  EventStateChange,
		State: machine.snapshotLocked(),
		At:    machine.options.Clock.Now(),
	}
}

func (machine *Machine) emit(event Event) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.emitLocked(event)
}

func (machine *Machine) emitLocked(event Event) {
	events := append([]chan Event(nil), machine.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

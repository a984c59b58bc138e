package game

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyclock/internal/core/model"
)

func testSettings() model.TimerSettings {
	return model.TimerSettings{
		TurnSeconds:        60,
		GuessSeconds:       30,
		SpecialTurnSeconds: 45,
	}
}

// newTestMachine uses a fake clock so Start never produces real ticks;
// tests drive the countdown by calling tick directly.
func newTestMachine(t *testing.T, settings model.TimerSettings) *Machine {
	t.Helper()
	machine := New(settings, Config{Clock: clockwork.NewFakeClock()})
	t.Cleanup(machine.Stop)
	return machine
}

func tickN(machine *Machine, n int) {
	for i := 0; i < n; i++ {
		machine.tick()
	}
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event := <-ch:
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestNewStartsPausedInRegularTurn(t *testing.T) {
	machine := newTestMachine(t, testSettings())

	assert.Equal(t, Snapshot{
		Running:   false,
		Remaining: 60,
		Phase:     PhaseTurn,
		Finished:  false,
		Mode:      ModeRegular,
		Word:      1,
	}, machine.Snapshot())
}

func TestTickDecrementsWhileRunning(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()

	for expect := 59; expect >= 31; expect-- {
		machine.tick()
		require.Equal(t, expect, machine.Snapshot().Remaining)
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	machine := newTestMachine(t, testSettings())

	machine.tick()
	assert.Equal(t, 60, machine.Snapshot().Remaining)

	machine.Start()
	machine.tick()
	machine.Pause()
	machine.tick()
	assert.Equal(t, 59, machine.Snapshot().Remaining)
}

func TestTurnRollsIntoGuessWithoutStopping(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	events := machine.Subscribe(256)
	machine.Start()
	tickN(machine, 60)

	assert.Equal(t, Snapshot{
		Running:   true,
		Remaining: 30,
		Phase:     PhaseGuess,
		Finished:  false,
		Mode:      ModeRegular,
		Word:      1,
	}, machine.Snapshot())

	var begins []Event
	for _, event := range drain(events) {
		if event.Type == EventGuessBegin {
			begins = append(begins, event)
		}
	}
	require.Len(t, begins, 1)
	assert.Equal(t, 30, begins[0].GuessSeconds)
	assert.Equal(t, PhaseGuess, begins[0].State.Phase)
}

func TestGuessEndFinishesTurn(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 60)
	require.Equal(t, PhaseGuess, machine.Snapshot().Phase)

	events := machine.Subscribe(256)
	tickN(machine, 30)

	assert.Equal(t, Snapshot{
		Running:   false,
		Remaining: 60,
		Phase:     PhaseTurn,
		Finished:  true,
		Mode:      ModeRegular,
		Word:      1,
	}, machine.Snapshot())

	var ended []Event
	for _, event := range drain(events) {
		if event.Type == EventTurnEnded {
			ended = append(ended, event)
		}
	}
	require.Len(t, ended, 1)
	assert.Equal(t, ModeRegular, ended[0].State.Mode)
}

func TestSpecialWordCycle(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.ToggleMode()
	require.Equal(t, ModeSpecial, machine.Snapshot().Mode)
	require.Equal(t, 45, machine.Snapshot().Remaining)

	machine.Start()
	tickN(machine, 45)

	assert.Equal(t, Snapshot{
		Running:   false,
		Remaining: 45,
		Phase:     PhaseTurn,
		Finished:  true,
		Mode:      ModeSpecial,
		Word:      1,
	}, machine.Snapshot())

	machine.NextWord()
	snapshot := machine.Snapshot()
	assert.Equal(t, 2, snapshot.Word)
	assert.Equal(t, 45, snapshot.Remaining)
	assert.False(t, snapshot.Running)
	assert.False(t, snapshot.Finished)
}

func TestNextWordWrapsAfterLastWord(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.ToggleMode()

	for want := 2; want <= model.DeckSize; want++ {
		machine.NextWord()
		require.Equal(t, want, machine.Snapshot().Word)
	}
	machine.NextWord()
	assert.Equal(t, 1, machine.Snapshot().Word)
}

func TestNextWordIsNoopInRegularMode(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 10)
	before := machine.Snapshot()

	machine.NextWord()
	assert.Equal(t, before, machine.Snapshot())
}

func TestWarningCueFiresOnFinalFiveSecondsOnly(t *testing.T) {
	machine := newTestMachine(t, model.TimerSettings{
		TurnSeconds:        10,
		GuessSeconds:       5,
		SpecialTurnSeconds: 10,
	})
	events := machine.Subscribe(256)
	machine.Start()
	tickN(machine, 10)
	drained := drain(events)

	var warnings, buzzers []int
	for _, event := range drained {
		if event.Type != EventCue {
			continue
		}
		switch event.Cue {
		case CueWarning:
			warnings = append(warnings, event.State.Remaining)
		case CueBuzzer:
			buzzers = append(buzzers, event.State.Remaining)
		}
	}
	assert.Equal(t, []int{5, 4, 3, 2, 1}, warnings)
	assert.Equal(t, []int{0}, buzzers)
}

func TestPauseIsIdempotent(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 3)

	machine.Pause()
	once := machine.Snapshot()
	machine.Pause()
	assert.Equal(t, once, machine.Snapshot())
}

func TestStartClearsFinished(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.ToggleMode()
	machine.Start()
	tickN(machine, 45)
	require.True(t, machine.Snapshot().Finished)

	machine.Start()
	snapshot := machine.Snapshot()
	assert.True(t, snapshot.Running)
	assert.False(t, snapshot.Finished)
	assert.Equal(t, 45, snapshot.Remaining)
}

func TestToggleModeRoundTrip(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 7)
	machine.ToggleMode()
	machine.NextWord()
	machine.NextWord()
	machine.ToggleMode()

	assert.Equal(t, Snapshot{
		Running:   false,
		Remaining: 60,
		Phase:     PhaseTurn,
		Finished:  false,
		Mode:      ModeRegular,
		Word:      1,
	}, machine.Snapshot())
}

func TestApplySettingsReloadsCurrentPhase(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 20)
	machine.Pause()
	require.Equal(t, 40, machine.Snapshot().Remaining)

	machine.ApplySettings(model.TimerSettings{
		TurnSeconds:        90,
		GuessSeconds:       30,
		SpecialTurnSeconds: 45,
	})

	snapshot := machine.Snapshot()
	assert.Equal(t, 90, snapshot.Remaining)
	assert.False(t, snapshot.Running)
	assert.Equal(t, PhaseTurn, snapshot.Phase)
}

func TestApplySettingsDuringGuessUsesGuessTime(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 60)
	require.Equal(t, PhaseGuess, machine.Snapshot().Phase)

	machine.ApplySettings(model.TimerSettings{
		TurnSeconds:        60,
		GuessSeconds:       20,
		SpecialTurnSeconds: 45,
	})

	snapshot := machine.Snapshot()
	assert.Equal(t, 20, snapshot.Remaining)
	assert.Equal(t, PhaseGuess, snapshot.Phase)
	assert.False(t, snapshot.Running)
}

func TestApplySettingsClampsOutOfRangeValues(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.ApplySettings(model.TimerSettings{
		TurnSeconds:        1000,
		GuessSeconds:       1,
		SpecialTurnSeconds: 0,
	})

	settings := machine.Settings()
	assert.Equal(t, model.MaxTurnSeconds, settings.TurnSeconds)
	assert.Equal(t, model.MinGuessSeconds, settings.GuessSeconds)
	assert.Equal(t, model.MinSpecialTurnSeconds, settings.SpecialTurnSeconds)
}

func TestResetClearsFinishedAndRestoresNominalTime(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.Start()
	tickN(machine, 90)
	require.True(t, machine.Snapshot().Finished)

	machine.Reset()
	snapshot := machine.Snapshot()
	assert.False(t, snapshot.Finished)
	assert.False(t, snapshot.Running)
	assert.Equal(t, 60, snapshot.Remaining)
	assert.Equal(t, PhaseTurn, snapshot.Phase)
}

func TestResetKeepsWordCursor(t *testing.T) {
	machine := newTestMachine(t, testSettings())
	machine.ToggleMode()
	machine.NextWord()
	machine.NextWord()

	machine.Reset()
	snapshot := machine.Snapshot()
	assert.Equal(t, 3, snapshot.Word)
	assert.Equal(t, 45, snapshot.Remaining)
}

func TestClockDriverTicksOnlyWhileRunning(t *testing.T) {
	fakeClock := clockwork.NewFakeClock()
	machine := New(testSettings(), Config{Clock: fakeClock, TickInterval: time.Second})
	defer machine.Stop()

	machine.Start()
	fakeClock.BlockUntil(1)
	fakeClock.Advance(time.Second)

	require.Eventually(t, func() bool {
		return machine.Snapshot().Remaining == 59
	}, time.Second, 5*time.Millisecond)

	machine.Pause()
	fakeClock.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 59, machine.Snapshot().Remaining)
}

func TestStopClosesObservers(t *testing.T) {
	machine := New(testSettings(), Config{Clock: clockwork.NewFakeClock()})
	events := machine.Subscribe(1)
	machine.Stop()

	_, open := <-events
	assert.False(t, open)

	// Commands after shutdown are ignored.
	machine.Start()
	assert.False(t, machine.Snapshot().Running)
}

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"partyclock/internal/audio"
	"partyclock/internal/core/game"
	"partyclock/internal/core/model"
	"partyclock/internal/platform"
	"partyclock/internal/storage"
	"partyclock/internal/ui/board"
	"partyclock/internal/ui/preferences"
	"partyclock/internal/ui/tray"
	"partyclock/resources"
)

const appName = "PartyClock"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Error().Err(err).Msg("another PartyClock is already running")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	config, err := storage.LoadGameConfig(resources.MustDeck())
	if err != nil {
		log.Warn().Err(err).Msg("embedded deck unreadable, using built-in defaults")
	}

	machine := game.New(config.Settings, game.Config{})
	player := audio.NewPlayer(config.Warning, config.Buzzer)

	fyneApp := app.NewWithID("com.partyclock.app")

	prefsWindow := preferences.New(fyneApp, machine.Settings(), func(updated model.TimerSettings) {
		machine.ApplySettings(updated)
	})

	boardWindow := board.New(fyneApp, config.Words, machine.Snapshot(), board.Callbacks{
		OnToggleRun: func() {
			if machine.Snapshot().Running {
				machine.Pause()
			} else {
				machine.Start()
			}
		},
		OnReset:      machine.Reset,
		OnNextWord:   machine.NextWord,
		OnToggleMode: machine.ToggleMode,
		OnSettings: func() {
			prefsWindow.Show()
		},
		OnClose: func() {
			machine.Stop()
			fyneApp.Quit()
		},
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowBoard: func() {
				boardWindow.Show()
			},
			OnTogglePause: func() {
				if machine.Snapshot().Running {
					machine.Pause()
				} else {
					machine.Start()
				}
			},
			OnReset: machine.Reset,
			OnQuit: func() {
				machine.Stop()
				fyneApp.Quit()
			},
		})
	} else {
		log.Debug().Msg("system tray unsupported on this platform")
	}

	events := machine.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case game.EventCue:
				player.Play(event.Cue)
			case game.EventGuessBegin:
				boardWindow.ShowNotice(fmt.Sprintf("Time to guess! %d seconds on the clock.", event.GuessSeconds))
			case game.EventTurnEnded:
				if event.State.Mode == game.ModeSpecial {
					boardWindow.ShowNotice("Time is up! Take the next word when you are ready.")
				} else {
					boardWindow.ShowNotice("Turn over. Next speaker, press Start.")
				}
			}

			boardWindow.Render(event.State)
			if trayManager != nil {
				trayManager.SetRunning(event.State.Running)
				trayManager.SetStatus(trayStatus(event.State))
			}
		}
	}()

	boardWindow.Show()
	fyneApp.Run()
}

func trayStatus(snapshot game.Snapshot) string {
	clock := fmt.Sprintf("%02d:%02d", snapshot.Remaining/60, snapshot.Remaining%60)
	switch {
	case snapshot.Mode == game.ModeSpecial:
		return fmt.Sprintf("%s, word %d", clock, snapshot.Word)
	case snapshot.Phase == game.PhaseGuess:
		return clock + ", guessing"
	default:
		return clock + ", explaining"
	}
}

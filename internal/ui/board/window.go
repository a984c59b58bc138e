package board

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"partyclock/internal/core/game"
	"partyclock/internal/core/model"
)

var (
	countdownColor = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	warningColor   = color.NRGBA{R: 235, G: 120, B: 60, A: 255}
	noticeColor    = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
)

// noticeDuration is how long a transient notice stays on the board.
const noticeDuration = 4 * time.Second

// Callbacks defines board control handlers.
type Callbacks struct {
	OnToggleRun  func()
	OnReset      func()
	OnNextWord   func()
	OnToggleMode func()
	OnSettings   func()
	OnClose      func()
}

// Window is the main game board: the countdown, the current phase or word,
// and the control row. It renders snapshots pushed by the app event loop and
// forwards button presses through Callbacks; no game rules live here.
type Window struct {
	window    fyne.Window
	words     [model.DeckSize]string
	callbacks Callbacks

	countdown   *canvas.Text
	statusLabel *canvas.Text
	noticeLabel *canvas.Text

	startButton    *widget.Button
	resetButton    *widget.Button
	nextWordButton *widget.Button
	modeButton     *widget.Button

	noticeSeq int
}

// New creates the game board window showing the given initial state.
func New(app fyne.App, words [model.DeckSize]string, initial game.Snapshot, callbacks Callbacks) *Window {
	window := app.NewWindow("PartyClock")

	countdown := canvas.NewText("--:--", countdownColor)
	countdown.Alignment = fyne.TextAlignCenter
	countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	countdown.TextSize = 72

	statusLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextSize = 20

	noticeLabel := canvas.NewText("", noticeColor)
	noticeLabel.Alignment = fyne.TextAlignCenter
	noticeLabel.TextSize = 15

	board := &Window{
		window:      window,
		words:       words,
		callbacks:   callbacks,
		countdown:   countdown,
		statusLabel: statusLabel,
		noticeLabel: noticeLabel,
	}

	board.startButton = widget.NewButton("Start", func() {
		if callbacks.OnToggleRun != nil {
			callbacks.OnToggleRun()
		}
	})
	board.resetButton = widget.NewButton("Reset", func() {
		if callbacks.OnReset != nil {
			callbacks.OnReset()
		}
	})
	board.nextWordButton = widget.NewButton("Next word", func() {
		if callbacks.OnNextWord != nil {
			callbacks.OnNextWord()
		}
	})
	board.modeButton = widget.NewButton("One-word mode", func() {
		if callbacks.OnToggleMode != nil {
			callbacks.OnToggleMode()
		}
	})
	settingsButton := widget.NewButton("Settings", func() {
		if callbacks.OnSettings != nil {
			callbacks.OnSettings()
		}
	})

	controls := container.NewHBox(
		layout.NewSpacer(),
		board.startButton,
		board.resetButton,
		board.nextWordButton,
		board.modeButton,
		settingsButton,
		layout.NewSpacer(),
	)

	content := container.NewVBox(
		layout.NewSpacer(),
		statusLabel,
		countdown,
		noticeLabel,
		layout.NewSpacer(),
		controls,
	)
	window.SetContent(content)
	window.Resize(fyne.NewSize(520, 340))
	window.CenterOnScreen()
	window.SetCloseIntercept(func() {
		if callbacks.OnClose != nil {
			callbacks.OnClose()
		}
	})

	board.applySnapshot(initial)
	return board
}

// Show displays the board window.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// Render updates the board from an observable state snapshot. Safe to call
// from the event loop goroutine.
func (board *Window) Render(snapshot game.Snapshot) {
	fyne.Do(func() {
		board.applySnapshot(snapshot)
	})
}

// applySnapshot must run on the fyne goroutine (or before the app loop
// starts, during construction).
func (board *Window) applySnapshot(snapshot game.Snapshot) {
	board.countdown.Text = formatSeconds(snapshot.Remaining)
	if snapshot.Running && snapshot.Remaining <= game.WarningWindow {
		board.countdown.Color = warningColor
	} else {
		board.countdown.Color = countdownColor
	}
	board.countdown.Refresh()

	board.statusLabel.Text = statusLine(snapshot, board.words)
	board.statusLabel.Refresh()

	if snapshot.Running {
		board.startButton.SetText("Pause")
	} else {
		board.startButton.SetText("Start")
	}

	if snapshot.Mode == game.ModeSpecial {
		board.nextWordButton.Enable()
		board.modeButton.SetText("Turn & guess mode")
	} else {
		board.nextWordButton.Disable()
		board.modeButton.SetText("One-word mode")
	}
}

// ShowNotice surfaces a transient message below the countdown. A newer
// notice supersedes the pending expiry of an older one.
func (board *Window) ShowNotice(text string) {
	fyne.Do(func() {
		board.noticeSeq++
		seq := board.noticeSeq
		board.noticeLabel.Text = text
		board.noticeLabel.Refresh()

		time.AfterFunc(noticeDuration, func() {
			fyne.Do(func() {
				if board.noticeSeq != seq {
					return
				}
				board.noticeLabel.Text = ""
				board.noticeLabel.Refresh()
			})
		})
	})
}

func statusLine(snapshot game.Snapshot, words [model.DeckSize]string) string {
	if snapshot.Mode == game.ModeSpecial {
		word := words[snapshot.Word-1]
		return fmt.Sprintf("Word %d of %d: %s", snapshot.Word, model.DeckSize, word)
	}
	if snapshot.Phase == game.PhaseGuess {
		return "Guess the word!"
	}
	if snapshot.Finished {
		return "Turn over - next speaker"
	}
	return "Explain the words"
}

func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

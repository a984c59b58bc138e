package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"partyclock/internal/core/model"
)

// Window handles the settings UI: the three phase durations, each bounded,
// with invalid input silently reverting to the previous valid value.
type Window struct {
	window       fyne.Window
	settings     model.TimerSettings
	onSave       func(model.TimerSettings)
	turnEntry    *widget.Entry
	guessEntry   *widget.Entry
	specialEntry *widget.Entry
}

// New creates a settings window. onSave receives the updated durations when
// the user confirms the form.
func New(app fyne.App, settings model.TimerSettings, onSave func(model.TimerSettings)) *Window {
	window := app.NewWindow("PartyClock Settings")

	turnEntry := widget.NewEntry()
	guessEntry := widget.NewEntry()
	specialEntry := widget.NewEntry()

	turnEntry.SetText(fmt.Sprintf("%d", settings.TurnSeconds))
	guessEntry.SetText(fmt.Sprintf("%d", settings.GuessSeconds))
	specialEntry.SetText(fmt.Sprintf("%d", settings.SpecialTurnSeconds))

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Explaining time"), turnEntry,
			widget.NewLabel(fmt.Sprintf("sec (%d-%d)", model.MinTurnSeconds, model.MaxTurnSeconds))),
		container.NewHBox(widget.NewLabel("Guessing time"), guessEntry,
			widget.NewLabel(fmt.Sprintf("sec (%d-%d)", model.MinGuessSeconds, model.MaxGuessSeconds))),
		container.NewHBox(widget.NewLabel("One-word round"), specialEntry,
			widget.NewLabel(fmt.Sprintf("sec (%d-%d)", model.MinSpecialTurnSeconds, model.MaxSpecialTurnSeconds))),
	)

	saveButton := widget.NewButton("Apply", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 240))

	prefs := &Window{
		window:       window,
		settings:     settings,
		onSave:       onSave,
		turnEntry:    turnEntry,
		guessEntry:   guessEntry,
		specialEntry: specialEntry,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.TimerSettings) {
	prefs.settings = settings
	prefs.turnEntry.SetText(fmt.Sprintf("%d", settings.TurnSeconds))
	prefs.guessEntry.SetText(fmt.Sprintf("%d", settings.GuessSeconds))
	prefs.specialEntry.SetText(fmt.Sprintf("%d", settings.SpecialTurnSeconds))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parseBoundedInt(prefs.turnEntry.Text, model.MinTurnSeconds, model.MaxTurnSeconds); ok {
		settings.TurnSeconds = seconds
	}
	if seconds, ok := parseBoundedInt(prefs.guessEntry.Text, model.MinGuessSeconds, model.MaxGuessSeconds); ok {
		settings.GuessSeconds = seconds
	}
	if seconds, ok := parseBoundedInt(prefs.specialEntry.Text, model.MinSpecialTurnSeconds, model.MaxSpecialTurnSeconds); ok {
		settings.SpecialTurnSeconds = seconds
	}

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

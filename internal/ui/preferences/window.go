package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   model.Settings
	onSave     func(model.Settings)
	work       *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	cycles     *widget.Entry
	sessions   *widget.Entry
	breaks     *widget.Entry
	roundSize  *widget.Entry
	idleAfter  *widget.Entry
	idlePause  *widget.Check
	chime      *widget.Check
}

// New creates a preferences window. onSave receives validated settings.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Study Planner Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		work:       widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		cycles:     widget.NewEntry(),
		sessions:   widget.NewEntry(),
		breaks:     widget.NewEntry(),
		roundSize:  widget.NewEntry(),
		idleAfter:  widget.NewEntry(),
		idlePause:  widget.NewCheck("Pause the timer when I am away", nil),
		chime:      widget.NewCheck("Chime when a break ends", nil),
	}
	prefs.breaks.SetPlaceHolder("5, 7, 10")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		row("Work", prefs.work, "min"),
		row("Short break", prefs.shortBreak, "min"),
		row("Long break", prefs.longBreak, "min"),
		row("Cycles", prefs.cycles, ""),
		prefs.idlePause,
		row("Away after", prefs.idleAfter, "min"),
		widget.NewLabelWithStyle("Study sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		row("Sessions", prefs.sessions, ""),
		row("Breaks between sessions", prefs.breaks, "min"),
		row("Questions per session", prefs.roundSize, ""),
		prefs.chime,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(440, 480))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	values := valuesFrom(settings)
	prefs.work.SetText(values.work)
	prefs.shortBreak.SetText(values.shortBreak)
	prefs.longBreak.SetText(values.longBreak)
	prefs.cycles.SetText(values.cycles)
	prefs.sessions.SetText(values.sessions)
	prefs.breaks.SetText(values.breaks)
	prefs.roundSize.SetText(values.roundSize)
	prefs.idleAfter.SetText(values.idleAfter)
	prefs.idlePause.SetChecked(values.idlePause)
	prefs.chime.SetChecked(values.chime)
}

func (prefs *Window) handleSave() {
	values := formValues{
		work:       prefs.work.Text,
		shortBreak: prefs.shortBreak.Text,
		longBreak:  prefs.longBreak.Text,
		cycles:     prefs.cycles.Text,
		sessions:   prefs.sessions.Text,
		breaks:     prefs.breaks.Text,
		roundSize:  prefs.roundSize.Text,
		idleAfter:  prefs.idleAfter.Text,
		idlePause:  prefs.idlePause.Checked,
		chime:      prefs.chime.Checked,
	}
	settings, err := values.apply(prefs.settings)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func row(label string, entry *widget.Entry, unit string) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(label), widget.NewLabel(unit), entry)
}

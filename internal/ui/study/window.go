// Package study is the desktop window for question and answer sessions.
package study

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/core/command"
	"studyplanner/internal/core/scheduler"
)

// Callbacks defines study window action handlers. They run on the fyne
// goroutine and must not block.
type Callbacks struct {
	OnStart     func(notesPath string)
	OnInput     func(text string)
	OnCommand   func(cmd command.Type)
	OnSkipBreak func()
}

// Window shows the running session and takes the learner's answers.
type Window struct {
	window     fyne.Window
	callbacks  Callbacks
	lines      []string
	transcript *widget.Label
	scroll     *container.Scroll
	status     *widget.Label
	notes      *widget.Entry
	answer     *widget.Entry
	start      *widget.Button
	pause      *widget.Button
	resume     *widget.Button
	reset      *widget.Button
	back       *widget.Button
	skip       *widget.Button
	lastState  scheduler.State
}

// New creates the study window.
func New(app fyne.App, notesPath string, callbacks Callbacks) *Window {
	window := app.NewWindow("Study Session")
	study := &Window{
		window:     window,
		callbacks:  callbacks,
		transcript: widget.NewLabel(""),
		status:     widget.NewLabel(describe(scheduler.State{})),
		notes:      widget.NewEntry(),
		answer:     widget.NewEntry(),
	}
	study.transcript.Wrapping = fyne.TextWrapWord
	study.scroll = container.NewVScroll(study.transcript)
	study.notes.SetPlaceHolder("Notes file")
	study.notes.SetText(notesPath)
	study.answer.SetPlaceHolder("Type an answer, or pause, resume, reset, back")
	study.answer.OnSubmitted = study.submit

	browse := widget.NewButton("Browse...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			study.notes.SetText(reader.URI().Path())
		}, window)
	})
	study.start = widget.NewButton("Start", func() {
		if study.callbacks.OnStart != nil {
			study.callbacks.OnStart(strings.TrimSpace(study.notes.Text))
		}
	})
	study.pause = widget.NewButton("Pause", study.command(command.CmdPause))
	study.resume = widget.NewButton("Resume", study.command(command.CmdResume))
	study.reset = widget.NewButton("Reset", study.command(command.CmdReset))
	study.back = widget.NewButton("Back", study.command(command.CmdBack))
	study.skip = widget.NewButton("Skip break", func() {
		if study.callbacks.OnSkipBreak != nil {
			study.callbacks.OnSkipBreak()
		}
	})
	send := widget.NewButton("Send", func() { study.submit(study.answer.Text) })

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(browse, study.start), study.notes),
		study.status,
	)
	bottom := container.NewVBox(
		container.NewBorder(nil, nil, nil, send, study.answer),
		container.NewHBox(study.pause, study.resume, study.reset, study.back, study.skip),
	)
	window.SetContent(container.NewBorder(top, bottom, nil, nil, study.scroll))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(560, 520))

	study.applyState(scheduler.State{})
	return study
}

// Show displays the study window.
func (study *Window) Show() {
	study.window.Show()
	study.window.RequestFocus()
}

// SetNotesPath fills in the notes file field. Must be called on the fyne goroutine.
func (study *Window) SetNotesPath(notesPath string) {
	study.notes.SetText(notesPath)
}

// Update appends a status line. It may be called from any goroutine.
func (study *Window) Update(text string) {
	fyne.Do(func() {
		study.lines = appendLine(study.lines, text, maxTranscriptLines)
		study.transcript.SetText(strings.Join(study.lines, "\n"))
		study.scroll.ScrollToBottom()
	})
}

// State refreshes the status line and buttons. It may be called from any goroutine.
func (study *Window) State(state scheduler.State) {
	fyne.Do(func() {
		study.applyState(state)
	})
}

// BreakTick updates the status line during a break.
func (study *Window) BreakTick(remaining int) {
	fyne.Do(func() {
		state := study.lastState
		state.Round = scheduler.RoundBreak
		state.BreakRemaining = remaining
		study.applyState(state)
	})
}

func (study *Window) applyState(state scheduler.State) {
	study.status.SetText(describe(state))
	study.lastState = state

	running := state.Status == scheduler.StatusRunning
	setEnabled(study.start, !running)
	setEnabled(study.pause, running && !state.Paused)
	setEnabled(study.resume, running && state.Paused)
	setEnabled(study.reset, running)
	setEnabled(study.back, running)
	setEnabled(study.skip, running && state.Round == scheduler.RoundBreak)
}

func (study *Window) submit(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	study.answer.SetText("")
	if study.callbacks.OnInput != nil {
		study.callbacks.OnInput(text)
	}
}

func (study *Window) command(cmd command.Type) func() {
	return func() {
		if study.callbacks.OnCommand != nil {
			study.callbacks.OnCommand(cmd)
		}
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

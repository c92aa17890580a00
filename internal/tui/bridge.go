package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/scheduler"
)

// Bridge forwards session and timer events into a running program.
// It implements session.Listener.
type Bridge struct {
	program *tea.Program
}

// Attach sets the program events are sent to. Events before Attach are dropped.
func (bridge *Bridge) Attach(program *tea.Program) {
	bridge.program = program
}

func (bridge *Bridge) send(msg tea.Msg) {
	if bridge.program != nil {
		bridge.program.Send(msg)
	}
}

// Update forwards a status line.
func (bridge *Bridge) Update(text string) {
	bridge.send(lineMsg{text: text})
}

// State forwards a scheduler state.
func (bridge *Bridge) State(state scheduler.State) {
	bridge.send(stateMsg{state: state})
}

// BreakTick forwards the remaining seconds of a break.
func (bridge *Bridge) BreakTick(remaining int) {
	bridge.send(breakMsg{remaining: remaining})
}

// TimerTick forwards a focus timer snapshot.
func (bridge *Bridge) TimerTick(snapshot countdown.Snapshot) {
	bridge.send(timerMsg{snapshot: snapshot})
}

package countdown

import "time"

// State represents the engine's run state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

// Phase identifies the activity the current countdown is timing.
type Phase string

const (
	PhaseNone       Phase = ""
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
	PhaseDone       Phase = "done"
)

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// PhaseEvent is published when a phase begins and once more with PhaseDone
// when all cycles have completed.
type PhaseEvent struct {
	Phase   Phase
	Cycle   int
	Seconds int
	At      time.Time
}

// Snapshot is a consistent copy of the engine state.
type Snapshot struct {
	State     State
	Phase     Phase
	Cycle     int
	Remaining int
}

// Running reports whether a run is in progress, paused or not.
func (snapshot Snapshot) Running() bool {
	return snapshot.State == StateRunning || snapshot.State == StatePaused
}

// Paused reports whether the run is frozen.
func (snapshot Snapshot) Paused() bool {
	return snapshot.State == StatePaused
}

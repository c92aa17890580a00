package command

import (
	"log"
	"sync"

	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/scheduler"
)

// Target receives the transitions the interpreter decides on.
type Target interface {
	Pause()
	Resume()
	Reset()
	Back()
}

// Mode is the prompt the interpreter is answering.
type Mode int

const (
	// ModePrompt is the prompt shown between questions.
	ModePrompt Mode = iota
	// ModePaused is the sub-prompt shown while paused.
	ModePaused
)

// Result tells the caller what happened.
type Result int

const (
	ResultContinue Result = iota
	ResultPaused
	ResultResumed
	ResultReset
	// ResultBack means the caller should take over; the session will not resume.
	ResultBack
)

// Policy decides what an unrecognised token does while paused.
type Policy int

const (
	// PolicyBack treats an unrecognised token as back.
	PolicyBack Policy = iota
	// PolicyStayPaused reports the token and keeps waiting.
	PolicyStayPaused
)

type action int

const (
	actNone action = iota
	actPause
	actResume
	actReset
	actBack
)

type transition struct {
	next    Mode
	action  action
	result  Result
	message string
}

const pausedPrompt = "Session paused. Type 'resume' to continue, 'reset' to reset, or 'back' to return to the homescreen."

var transitions = map[Mode]map[Type]transition{
	ModePrompt: {
		CmdPause:  {next: ModePaused, action: actPause, result: ResultPaused, message: pausedPrompt},
		CmdResume: {next: ModePrompt, action: actNone, result: ResultContinue, message: "Continuing to next question..."},
		CmdReset:  {next: ModePrompt, action: actReset, result: ResultReset},
		CmdBack:   {next: ModePrompt, action: actBack, result: ResultBack, message: "Returning to homescreen."},
	},
	ModePaused: {
		CmdPause:  {next: ModePaused, action: actNone, result: ResultPaused, message: "Session is already paused."},
		CmdResume: {next: ModePrompt, action: actResume, result: ResultResumed, message: "Session resumed."},
		CmdReset:  {next: ModePrompt, action: actReset, result: ResultReset},
		CmdBack:   {next: ModePrompt, action: actBack, result: ResultBack, message: "Returning to homescreen."},
	},
}

var unrecognised = map[Mode]map[Policy]transition{
	ModePrompt: {
		PolicyBack:       {next: ModePrompt, action: actNone, result: ResultContinue, message: "Continuing to next question..."},
		PolicyStayPaused: {next: ModePrompt, action: actNone, result: ResultContinue, message: "Continuing to next question..."},
	},
	ModePaused: {
		PolicyBack:       {next: ModePrompt, action: actBack, result: ResultBack, message: "Invalid command. Returning to homescreen."},
		PolicyStayPaused: {next: ModePaused, action: actNone, result: ResultPaused, message: "Invalid command. Type 'resume', 'reset' or 'back'."},
	},
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithPolicy sets the handling of unrecognised tokens while paused.
func WithPolicy(policy Policy) Option {
	return func(interpreter *Interpreter) {
		interpreter.policy = policy
	}
}

// Interpreter is a two-mode state machine over the control vocabulary.
type Interpreter struct {
	mu     sync.Mutex
	target Target
	sink   scheduler.Sink
	policy Policy
	mode   Mode
}

// New creates an interpreter in prompt mode.
func New(target Target, sink scheduler.Sink, options ...Option) *Interpreter {
	interpreter := &Interpreter{
		target: target,
		sink:   sink,
		policy: PolicyBack,
		mode:   ModePrompt,
	}
	for _, option := range options {
		option(interpreter)
	}
	return interpreter
}

// Mode returns the current prompt mode.
func (interpreter *Interpreter) Mode() Mode {
	interpreter.mu.Lock()
	defer interpreter.mu.Unlock()
	return interpreter.mode
}

// Accepts reports whether text belongs to the interpreter rather than being
// an answer. Everything is a command while paused.
func (interpreter *Interpreter) Accepts(text string) bool {
	if _, ok := Parse(text); ok {
		return true
	}
	return interpreter.Mode() == ModePaused
}

// Handle applies one token. Commands are serialized; a reset may block until
// the previous run has stopped.
func (interpreter *Interpreter) Handle(token string) Result {
	interpreter.mu.Lock()
	defer interpreter.mu.Unlock()

	var next transition
	if cmd, ok := Parse(token); ok {
		next = transitions[interpreter.mode][cmd]
	} else {
		next = unrecognised[interpreter.mode][interpreter.policy]
		if interpreter.mode == ModePaused {
			log.Printf("command: unrecognised token %q while paused", token)
		}
	}

	interpreter.mode = next.next
	if next.message != "" && interpreter.sink != nil {
		interpreter.sink.Update(next.message)
	}
	interpreter.apply(next.action)
	return next.result
}

func (interpreter *Interpreter) apply(act action) {
	if interpreter.target == nil {
		return
	}
	switch act {
	case actPause:
		interpreter.target.Pause()
	case actResume:
		interpreter.target.Resume()
	case actReset:
		interpreter.target.Reset()
	case actBack:
		interpreter.target.Back()
	}
}

type schedulerTarget struct {
	scheduler *scheduler.Scheduler
}

// ForScheduler adapts a study scheduler to the interpreter.
func ForScheduler(s *scheduler.Scheduler) Target {
	return schedulerTarget{scheduler: s}
}

func (target schedulerTarget) Pause()  { target.scheduler.SetPausedState(true) }
func (target schedulerTarget) Resume() { target.scheduler.SetPausedState(false) }
func (target schedulerTarget) Back()   { target.scheduler.Back() }

func (target schedulerTarget) Reset() {
	if err := target.scheduler.Reset(); err != nil {
		log.Printf("command: reset session: %v", err)
	}
}

type engineTarget struct {
	engine *countdown.Engine
}

// ForEngine adapts a countdown engine to the interpreter; back stops the timer.
func ForEngine(engine *countdown.Engine) Target {
	return engineTarget{engine: engine}
}

func (target engineTarget) Pause()  { target.engine.Pause() }
func (target engineTarget) Resume() { target.engine.Resume() }
func (target engineTarget) Reset()  { target.engine.Reset() }
func (target engineTarget) Back()   { target.engine.Stop() }

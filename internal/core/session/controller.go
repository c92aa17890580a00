// Package session connects a learner's text input to a study scheduler and
// its command interpreter. Front ends own a Controller and forward every line
// the learner types to Input.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"studyplanner/internal/core/command"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/scheduler"
)

// ErrNotStarted is returned when there is no study run to act on.
var ErrNotStarted = errors.New("no study session started")

// Listener receives every status line together with the scheduler state
// observed right after it.
type Listener interface {
	Update(text string)
	State(state scheduler.State)
}

// Options configures a Controller.
type Options struct {
	Scheduler []scheduler.Option
	Command   []command.Option
	// OnBreak receives the remaining seconds of a break each second.
	OnBreak func(remaining int)
	// OnResult is called on the command goroutine after every command.
	OnResult func(command.Result)
}

// Controller owns the current study run. Start and Close must not be called
// from the listener.
type Controller struct {
	lifecycle sync.Mutex

	mu          sync.Mutex
	listener    Listener
	config      model.SchedulerConfig
	options     Options
	scheduler   *scheduler.Scheduler
	interpreter *command.Interpreter
	loop        *command.Loop
	cancel      context.CancelFunc
	loopDone    chan struct{}
}

// New creates a controller. config is validated when a run starts.
func New(listener Listener, config model.SchedulerConfig, options Options) *Controller {
	return &Controller{listener: listener, config: config, options: options}
}

// SetConfig replaces the scheduler config used by the next Start.
func (controller *Controller) SetConfig(config model.SchedulerConfig) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.config = config
}

// Start begins a new run with questions from source. A run in progress is
// left alone and ErrAlreadyStarted returned.
func (controller *Controller) Start(source scheduler.QuestionSource) error {
	controller.lifecycle.Lock()
	defer controller.lifecycle.Unlock()

	if current := controller.current(); current != nil && current.State().Status == scheduler.StatusRunning {
		return scheduler.ErrAlreadyStarted
	}
	controller.shutdown()

	controller.mu.Lock()
	config := controller.config
	controller.mu.Unlock()

	var bound atomic.Pointer[scheduler.Scheduler]
	sink := scheduler.SinkFunc(func(text string) {
		controller.publish(text, bound.Load())
	})
	s, err := scheduler.New(source, sink, config, controller.options.Scheduler...)
	if err != nil {
		return err
	}
	bound.Store(s)
	if controller.options.OnBreak != nil {
		s.AddBreakListener(controller.options.OnBreak)
	}

	interpreter := command.New(command.ForScheduler(s), sink, controller.options.Command...)
	loop := command.NewLoop(interpreter, controller.options.OnResult)
	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	controller.mu.Lock()
	controller.scheduler = s
	controller.interpreter = interpreter
	controller.loop = loop
	controller.cancel = cancel
	controller.loopDone = loopDone
	controller.mu.Unlock()

	if err := s.StartSession(); err != nil {
		controller.shutdown()
		return err
	}
	return nil
}

// Input routes one line of learner text. Control words, and anything typed
// while paused, go to the interpreter; everything else answers the current
// question. It returns false when the text was not accepted.
func (controller *Controller) Input(text string) bool {
	controller.mu.Lock()
	s, interpreter, loop := controller.scheduler, controller.interpreter, controller.loop
	controller.mu.Unlock()

	if s == nil {
		controller.publish("Start a session first.", nil)
		return false
	}
	if interpreter.Accepts(text) {
		return loop.Enqueue(text)
	}
	if !s.SubmitAnswer(text) {
		controller.publish("No question is waiting for an answer.", s)
		return false
	}
	return true
}

// Command sends a control word to the interpreter regardless of its text.
func (controller *Controller) Command(cmd command.Type) bool {
	controller.mu.Lock()
	loop := controller.loop
	controller.mu.Unlock()
	if loop == nil {
		return false
	}
	return loop.Enqueue(cmd.String())
}

// SkipBreak interrupts the break in progress.
func (controller *Controller) SkipBreak() bool {
	controller.mu.Lock()
	s := controller.scheduler
	controller.mu.Unlock()
	return s != nil && s.InterruptBreak()
}

// State returns the state of the current run.
func (controller *Controller) State() (scheduler.State, error) {
	controller.mu.Lock()
	s := controller.scheduler
	controller.mu.Unlock()
	if s == nil {
		return scheduler.State{}, ErrNotStarted
	}
	return s.State(), nil
}

// Results returns the graded answers of the current run.
func (controller *Controller) Results() []scheduler.Result {
	controller.mu.Lock()
	s := controller.scheduler
	controller.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Results()
}

// Close stops the current run and its command loop.
func (controller *Controller) Close() {
	controller.lifecycle.Lock()
	defer controller.lifecycle.Unlock()
	controller.shutdown()
}

func (controller *Controller) current() *scheduler.Scheduler {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.scheduler
}

// shutdown lets the command loop finish its current command, then stops the run.
func (controller *Controller) shutdown() {
	controller.mu.Lock()
	s, cancel, loopDone := controller.scheduler, controller.cancel, controller.loopDone
	controller.scheduler = nil
	controller.interpreter = nil
	controller.loop = nil
	controller.cancel = nil
	controller.loopDone = nil
	controller.mu.Unlock()

	if cancel != nil {
		cancel()
		<-loopDone
	}
	if s != nil {
		s.Stop()
		log.Printf("session: run %s closed", s.State().RunID)
	}
}

func (controller *Controller) publish(text string, s *scheduler.Scheduler) {
	if controller.listener == nil {
		return
	}
	controller.listener.Update(text)
	if s != nil {
		controller.listener.State(s.State())
	}
}

// Package countdown implements the work/break interval timer.
//
// The engine runs Cycles iterations of a work phase followed by a short break,
// or a long break after the last work phase. Each phase counts down one tick at
// a time on a dedicated goroutine and notifies listeners with the remaining
// seconds before sleeping. Pause, Resume, Reset and Stop may be called from any
// goroutine.
package countdown

import (
	"fmt"
	"log"
	"sync"
	"time"

	"studyplanner/internal/core/model"
	"studyplanner/internal/core/observer"
)

// Options contains runtime options for the engine.
type Options struct {
	// TickInterval is the length of one countdown second. Defaults to time.Second.
	TickInterval time.Duration
}

// Engine is a pausable work/break countdown.
type Engine struct {
	mu      sync.Mutex
	cond    *sync.Cond
	config  model.TimerConfig
	options Options

	state     State
	phase     Phase
	cycle     int
	remaining int

	workSeconds       int
	shortBreakSeconds int
	longBreakSeconds  int

	stopCh chan struct{}
	done   chan struct{}

	ticks  *observer.Registry[int]
	phases *observer.Registry[PhaseEvent]
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// New creates an idle engine with the provided configuration.
func New(config model.TimerConfig, options Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new countdown: %w", err)
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	engine := &Engine{
		config:  config,
		options: options,
		ticks:   observer.New[int]("countdown ticks"),
		phases:  observer.New[PhaseEvent]("countdown phases"),
		done:    closedDone,
	}
	engine.cond = sync.NewCond(&engine.mu)
	engine.restoreLocked()
	return engine, nil
}

// AddListener registers a per-tick callback receiving the remaining seconds.
func (engine *Engine) AddListener(listener func(remaining int)) (remove func()) {
	return engine.ticks.Add(listener)
}

// OnPhase registers a callback invoked when a phase starts or the run completes.
func (engine *Engine) OnPhase(listener func(PhaseEvent)) (remove func()) {
	return engine.phases.Add(listener)
}

// Start launches a run from Idle or Stopped. It is a no-op while a run is in progress.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.state == StateRunning || engine.state == StatePaused {
		engine.mu.Unlock()
		return
	}
	stopCh := make(chan struct{})
	done := make(chan struct{})
	engine.state = StateRunning
	engine.phase = PhaseNone
	engine.cycle = 0
	engine.stopCh = stopCh
	engine.done = done
	cycles := engine.config.Cycles
	engine.mu.Unlock()

	go engine.run(stopCh, done, cycles)
}

// Pause freezes a running countdown. It is ignored unless the engine is running.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRunning {
		return
	}
	engine.state = StatePaused
	log.Printf("countdown: paused at %d seconds", engine.remaining)
}

// Resume continues a paused countdown from the same remaining value.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StatePaused {
		return
	}
	engine.state = StateRunning
	engine.cond.Broadcast()
	log.Printf("countdown: resumed at %d seconds", engine.remaining)
}

// Stop ends the current run and waits for its goroutine to exit.
// It must not be called from a listener.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.state != StateRunning && engine.state != StatePaused {
		engine.mu.Unlock()
		return
	}
	engine.state = StateStopped
	done := engine.abortLocked()
	engine.mu.Unlock()

	<-done
}

// Reset returns the engine to Idle from any state, discarding progress and
// restoring the durations it was created with. It must not be called from a listener.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	done := closedDone
	if engine.state == StateRunning || engine.state == StatePaused {
		done = engine.abortLocked()
	}
	engine.state = StateIdle
	engine.restoreLocked()
	engine.mu.Unlock()

	<-done
	log.Printf("countdown: reset to original settings")
}

// SetDurations changes the live phase durations. Phases that start after the
// call use the new values; Reset restores the originals.
func (engine *Engine) SetDurations(workSeconds, shortBreakSeconds, longBreakSeconds int) error {
	if workSeconds < 0 || shortBreakSeconds < 0 || longBreakSeconds < 0 {
		return fmt.Errorf("set durations: %w: durations must not be negative", model.ErrInvalidConfig)
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.workSeconds = workSeconds
	engine.shortBreakSeconds = shortBreakSeconds
	engine.longBreakSeconds = longBreakSeconds
	if engine.state == StateIdle {
		engine.remaining = workSeconds
	}
	return nil
}

// Reconfigure replaces the configuration Reset restores. Live durations
// change at once, as with SetDurations; the cycle count applies from the next Start.
func (engine *Engine) Reconfigure(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.config = config
	engine.workSeconds = config.WorkSeconds
	engine.shortBreakSeconds = config.ShortBreakSeconds
	engine.longBreakSeconds = config.LongBreakSeconds
	if engine.state == StateIdle {
		engine.remaining = config.WorkSeconds
	}
	return nil
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		State:     engine.state,
		Phase:     engine.phase,
		Cycle:     engine.cycle,
		Remaining: engine.remaining,
	}
}

// Config returns the configuration Reset restores.
func (engine *Engine) Config() model.TimerConfig {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config
}

// Done returns a channel closed when the current run's goroutine has exited.
func (engine *Engine) Done() <-chan struct{} {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.done
}

func (engine *Engine) run(stopCh chan struct{}, done chan struct{}, cycles int) {
	defer close(done)

	for cycle := 1; cycle <= cycles; cycle++ {
		if !engine.runPhase(stopCh, PhaseWork, cycle) {
			return
		}
		breakPhase := PhaseShortBreak
		if cycle == cycles {
			breakPhase = PhaseLongBreak
		}
		if !engine.runPhase(stopCh, breakPhase, cycle) {
			return
		}
	}

	engine.mu.Lock()
	if isClosed(stopCh) {
		engine.mu.Unlock()
		return
	}
	engine.state = StateStopped
	engine.phase = PhaseDone
	engine.remaining = 0
	engine.mu.Unlock()

	log.Printf("countdown: %d cycles completed", cycles)
	engine.phases.Notify(PhaseEvent{Phase: PhaseDone, Cycle: cycles, At: time.Now()})
}

func (engine *Engine) runPhase(stopCh chan struct{}, phase Phase, cycle int) bool {
	engine.mu.Lock()
	if isClosed(stopCh) {
		engine.mu.Unlock()
		return false
	}
	seconds := engine.phaseSecondsLocked(phase)
	engine.phase = phase
	engine.cycle = cycle
	engine.remaining = seconds
	engine.mu.Unlock()

	log.Printf("countdown: cycle %d %s started for %d seconds", cycle, phase, seconds)
	engine.phases.Notify(PhaseEvent{Phase: phase, Cycle: cycle, Seconds: seconds, At: time.Now()})

	for i := seconds; i > 0; i-- {
		engine.mu.Lock()
		for engine.state == StatePaused && !isClosed(stopCh) {
			engine.cond.Wait()
		}
		if isClosed(stopCh) {
			engine.mu.Unlock()
			return false
		}
		engine.remaining = i
		engine.mu.Unlock()

		engine.ticks.Notify(i)

		if !engine.sleep(stopCh) {
			return false
		}
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if isClosed(stopCh) {
		return false
	}
	engine.remaining = 0
	return true
}

func (engine *Engine) sleep(stopCh chan struct{}) bool {
	timer := time.NewTimer(engine.options.TickInterval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stopCh:
		return false
	}
}

func (engine *Engine) phaseSecondsLocked(phase Phase) int {
	switch phase {
	case PhaseWork:
		return engine.workSeconds
	case PhaseShortBreak:
		return engine.shortBreakSeconds
	case PhaseLongBreak:
		return engine.longBreakSeconds
	}
	return 0
}

// abortLocked signals the run goroutine to exit and returns its done channel.
func (engine *Engine) abortLocked() chan struct{} {
	if engine.stopCh != nil && !isClosed(engine.stopCh) {
		close(engine.stopCh)
	}
	engine.cond.Broadcast()
	return engine.done
}

func (engine *Engine) restoreLocked() {
	engine.workSeconds = engine.config.WorkSeconds
	engine.shortBreakSeconds = engine.config.ShortBreakSeconds
	engine.longBreakSeconds = engine.config.LongBreakSeconds
	engine.phase = PhaseNone
	engine.cycle = 0
	engine.remaining = engine.config.WorkSeconds
}

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Package idlewatch pauses the work countdown when the learner walks away.
package idlewatch

import (
	"context"
	"errors"
	"log"
	"time"

	"studyplanner/internal/core/countdown"
	"studyplanner/internal/platform"
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Target is the countdown the watcher may pause.
type Target interface {
	Snapshot() countdown.Snapshot
	Pause()
}

// Config controls polling.
type Config struct {
	CheckInterval time.Duration
	PauseAfter    time.Duration
}

// Watcher polls an IdleChecker and pauses a running work phase once the
// learner has been idle for PauseAfter.
type Watcher struct {
	checker IdleChecker
	target  Target
	config  Config
	onPause func(idle time.Duration)
}

// New creates a watcher. onPause may be nil.
func New(checker IdleChecker, target Target, config Config, onPause func(idle time.Duration)) *Watcher {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	if config.PauseAfter <= 0 {
		config.PauseAfter = 5 * time.Minute
	}
	return &Watcher{checker: checker, target: target, config: config, onPause: onPause}
}

// Run polls until ctx is cancelled or idle detection turns out to be unsupported.
func (watcher *Watcher) Run(ctx context.Context) {
	if watcher.checker == nil || watcher.target == nil {
		return
	}
	ticker := time.NewTicker(watcher.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !watcher.Check() {
				return
			}
		}
	}
}

// Check performs one poll. It returns false when the watcher should stop.
func (watcher *Watcher) Check() bool {
	snapshot := watcher.target.Snapshot()
	if snapshot.State != countdown.StateRunning || snapshot.Phase != countdown.PhaseWork {
		return true
	}

	idle, err := watcher.checker.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			log.Printf("idlewatch: disabled: %v", err)
			return false
		}
		log.Printf("idlewatch: idle check failed: %v", err)
		return true
	}
	if idle < watcher.config.PauseAfter {
		return true
	}

	watcher.target.Pause()
	if watcher.onPause != nil {
		watcher.onPause(idle)
	}
	return true
}

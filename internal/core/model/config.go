package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a configuration cannot drive a timer or a session.
var ErrInvalidConfig = errors.New("invalid config")

// TimerConfig defines the work/break cycle of the countdown engine.
// It is never mutated after construction.
type TimerConfig struct {
	WorkSeconds       int
	ShortBreakSeconds int
	LongBreakSeconds  int
	Cycles            int
}

// Validate reports whether the config can drive a countdown.
func (config TimerConfig) Validate() error {
	if config.Cycles < 1 {
		return fmt.Errorf("%w: cycles must be positive, got %d", ErrInvalidConfig, config.Cycles)
	}
	if config.WorkSeconds < 0 || config.ShortBreakSeconds < 0 || config.LongBreakSeconds < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	return nil
}

// SchedulerConfig defines how many sessions a study run has and how long the breaks between them last.
type SchedulerConfig struct {
	TotalSessions  int
	BreakDurations []time.Duration
	// RoundSize caps the number of questions per round. Zero means all questions.
	RoundSize int
}

// Validate reports whether the config can drive a study run.
func (config SchedulerConfig) Validate() error {
	if config.TotalSessions < 1 {
		return fmt.Errorf("%w: total sessions must be positive, got %d", ErrInvalidConfig, config.TotalSessions)
	}
	if config.TotalSessions > 1 && len(config.BreakDurations) == 0 {
		return fmt.Errorf("%w: at least one break duration is required for %d sessions", ErrInvalidConfig, config.TotalSessions)
	}
	for _, duration := range config.BreakDurations {
		if duration < 0 {
			return fmt.Errorf("%w: break durations must not be negative", ErrInvalidConfig)
		}
	}
	if config.RoundSize < 0 {
		return fmt.Errorf("%w: round size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// BreakFor returns the break that follows the given 1-based session, rotating through BreakDurations.
func (config SchedulerConfig) BreakFor(session int) time.Duration {
	if len(config.BreakDurations) == 0 || session < 1 {
		return 0
	}
	return config.BreakDurations[(session-1)%len(config.BreakDurations)]
}

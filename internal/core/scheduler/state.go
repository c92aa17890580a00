package scheduler

import (
	"errors"
	"time"
)

var (
	// ErrNoInput is returned when the question source is missing, fails, or yields no questions.
	ErrNoInput = errors.New("no input provided")
	// ErrAlreadyStarted is returned by StartSession while a run is in progress.
	ErrAlreadyStarted = errors.New("session already started")
)

// Round is the kind of activity within a session.
type Round string

const (
	RoundPractice Round = "practice"
	RoundRecall   Round = "recall"
	RoundBreak    Round = "break"
)

// Status is the lifecycle of a study run.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	// StatusAbandoned means the learner went back; nothing resumes the run.
	StatusAbandoned Status = "abandoned"
	StatusStopped   Status = "stopped"
)

// Terminal reports whether a run in this status has ended.
func (status Status) Terminal() bool {
	return status == StatusComplete || status == StatusAbandoned || status == StatusStopped
}

// State is a consistent copy of the scheduler state.
type State struct {
	RunID           string
	SessionCount    int
	TotalSessions   int
	Round           Round
	Status          Status
	Paused          bool
	Awaiting        bool
	CurrentQuestion int
	Questions       int
	BreakRemaining  int
}

// Result is the outcome of one recall question.
type Result struct {
	Session   int
	Index     int
	Question  string
	Reference string
	Answer    string
	Correct   bool
}

// QuestionSource produces the ordered questions for a run.
type QuestionSource func() ([]string, error)

// Sink receives status text for the learner. Update may be called from
// several goroutines. It may read State but must not call the scheduler's
// control operations.
type Sink interface {
	Update(text string)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(text string)

// Update calls f(text).
func (f SinkFunc) Update(text string) {
	f(text)
}

// ShuffleFunc returns a permutation of the given indices.
type ShuffleFunc func(indices []int) []int

// Chime signals the end of a break.
type Chime interface {
	Play()
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithShuffle replaces the recall-round shuffle.
func WithShuffle(shuffle ShuffleFunc) Option {
	return func(s *Scheduler) {
		if shuffle != nil {
			s.shuffle = shuffle
		}
	}
}

// WithTickInterval sets the length of one break countdown second.
func WithTickInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		if interval > 0 {
			s.tick = interval
		}
	}
}

// WithChime plays chime whenever a break ends.
func WithChime(chime Chime) Option {
	return func(s *Scheduler) {
		s.chime = chime
	}
}

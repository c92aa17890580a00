// Package scheduler runs a multi-session study drill: a practice round in
// question order, a shuffled recall round graded against the practice answers,
// and a timed break between sessions.
//
// The round loop runs on its own goroutine and blocks on a condition variable
// while it waits for answers. SubmitAnswer, SetPausedState, InterruptBreak,
// Reset, Back and Stop may be called from any goroutine except the sink's
// Update and the break listeners, which run on the round loop. State is safe
// everywhere.
package scheduler

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyplanner/internal/core/ledger"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/observer"
)

// Scheduler sequences practice, recall and break phases across sessions.
type Scheduler struct {
	mu      sync.Mutex
	cond    *sync.Cond
	emitMu  sync.Mutex
	resetMu sync.Mutex

	source  QuestionSource
	sink    Sink
	config  model.SchedulerConfig
	shuffle ShuffleFunc
	tick    time.Duration
	chime   Chime

	questions []string
	practice  []string
	ledger    *ledger.Ledger
	results   []Result
	state     State
	awaiting  bool

	gen     int
	abortCh chan struct{}
	breakCh chan struct{}
	done    chan struct{}

	breakTicks *observer.Registry[int]
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// New creates an idle scheduler.
func New(source QuestionSource, sink Sink, config model.SchedulerConfig, options ...Option) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}

	s := &Scheduler{
		source:     source,
		sink:       sink,
		config:     config,
		shuffle:    randomShuffle,
		tick:       time.Second,
		ledger:     ledger.New(0),
		done:       closedDone,
		breakTicks: observer.New[int]("scheduler breaks"),
		state: State{
			TotalSessions: config.TotalSessions,
			Status:        StatusIdle,
		},
	}
	s.cond = sync.NewCond(&s.mu)
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// AddBreakListener registers a per-second callback for break countdowns.
func (s *Scheduler) AddBreakListener(listener func(remaining int)) (remove func()) {
	return s.breakTicks.Add(listener)
}

// StartSession loads the questions and starts the first practice round.
// When no questions are available it reports that to the sink and stays idle.
func (s *Scheduler) StartSession() error {
	s.mu.Lock()
	if s.state.Status == StatusRunning {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.mu.Unlock()

	questions, err := s.loadQuestions()
	if err != nil {
		log.Printf("scheduler: start session: %v", err)
		s.emitDirect("No input provided. Please ensure a file is correctly selected.")
		return fmt.Errorf("start session: %w", err)
	}

	s.mu.Lock()
	if s.state.Status == StatusRunning {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.gen++
	gen := s.gen
	abortCh := make(chan struct{})
	done := make(chan struct{})
	s.abortCh = abortCh
	s.done = done
	s.breakCh = nil
	s.questions = questions
	s.practice = nil
	s.results = nil
	s.awaiting = false
	s.ledger.Reset(len(questions))
	s.state = State{
		RunID:         uuid.NewString(),
		SessionCount:  1,
		TotalSessions: s.config.TotalSessions,
		Round:         RoundPractice,
		Status:        StatusRunning,
		Questions:     len(questions),
	}
	runID := s.state.RunID
	s.mu.Unlock()

	log.Printf("scheduler: run %s started with %d questions over %d sessions", runID, len(questions), s.config.TotalSessions)
	go s.run(gen, abortCh, done)
	return nil
}

// SubmitAnswer records the answer to the question currently presented.
// It returns false and changes nothing when no question is awaiting an answer.
func (s *Scheduler) SubmitAnswer(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != StatusRunning || !s.awaiting || s.state.Paused {
		log.Printf("scheduler: answer ignored, no question is awaiting an answer")
		return false
	}
	if _, ok := s.ledger.Record(text); !ok {
		log.Printf("scheduler: answer ignored, round already complete")
		return false
	}
	s.awaiting = false
	s.cond.Broadcast()
	return true
}

// SetPausedState freezes or unfreezes round advancement and break countdowns.
func (s *Scheduler) SetPausedState(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != StatusRunning || s.state.Paused == paused {
		return
	}
	s.state.Paused = paused
	if !paused {
		s.cond.Broadcast()
	}
	log.Printf("scheduler: run %s paused=%t", s.state.RunID, paused)
}

// IsSessionComplete reports whether every question of the current round has an answer.
func (s *Scheduler) IsSessionComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Complete()
}

// InterruptBreak abandons the break in progress; scheduling continues with the next session.
func (s *Scheduler) InterruptBreak() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != StatusRunning || s.state.Round != RoundBreak || s.breakCh == nil || isClosed(s.breakCh) {
		return false
	}
	close(s.breakCh)
	s.cond.Broadcast()
	return true
}

// Reset abandons the current run, clears all answers and starts again from session one.
// Resets that overlap collapse into one: a call whose run was already
// replaced by another Reset returns without restarting again.
func (s *Scheduler) Reset() error {
	s.mu.Lock()
	observed := s.gen
	s.mu.Unlock()

	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	s.mu.Lock()
	superseded := s.gen != observed
	s.mu.Unlock()
	if superseded {
		return nil
	}

	<-s.abort(StatusIdle)

	s.mu.Lock()
	if s.state.Status == StatusRunning {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.ledger.Reset(0)
	s.practice = nil
	s.results = nil
	s.state.Paused = false
	s.state.Status = StatusIdle
	s.mu.Unlock()

	s.emitDirect("Session reset. Starting from question 1.")
	return s.StartSession()
}

// Back ends the run so the caller can take over; no round resumes afterwards.
func (s *Scheduler) Back() {
	done := s.abort(StatusAbandoned)
	<-done
}

// Stop ends the run on shutdown.
func (s *Scheduler) Stop() {
	done := s.abort(StatusStopped)
	<-done
}

// State returns the current session state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.Awaiting = s.awaiting
	state.CurrentQuestion = s.ledger.Current()
	return state
}

// Results returns the graded recall answers of the current run.
func (s *Scheduler) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.results...)
}

// Questions returns the question set of the current run.
func (s *Scheduler) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

// Done returns a channel closed when the current run's goroutine has exited.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Scheduler) run(gen int, abortCh chan struct{}, done chan struct{}) {
	defer close(done)

	total := s.config.TotalSessions
	for session := 1; session <= total; session++ {
		if !s.enterRound(gen, session, RoundPractice, len(s.questionsFor(gen))) {
			return
		}
		s.emit(gen, fmt.Sprintf("Session %d of %d", session, total))

		if !s.practiceRound(gen) {
			return
		}
		if !s.recallRound(gen, session) {
			return
		}
		if session < total {
			if !s.takeBreak(gen, abortCh, session) {
				return
			}
		}
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.state.Status = StatusComplete
	s.state.Paused = false
	runID := s.state.RunID
	s.mu.Unlock()

	log.Printf("scheduler: run %s complete", runID)
	s.emit(gen, "All sessions complete! Thank you for participating.")
}

func (s *Scheduler) practiceRound(gen int) bool {
	questions := s.questionsFor(gen)
	s.emit(gen, "Practice Round: Answer the following questions.")

	for index, question := range questions {
		if _, ok := s.ask(gen, index, fmt.Sprintf("Question %d: %s", index+1, question)); !ok {
			return false
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.practice = s.ledger.Answers()
	return true
}

func (s *Scheduler) recallRound(gen int, session int) bool {
	questions := s.questionsFor(gen)
	if !s.enterRound(gen, session, RoundRecall, len(questions)) {
		return false
	}
	order := s.recallOrder(len(questions))

	s.mu.Lock()
	practice := append([]string(nil), s.practice...)
	s.mu.Unlock()

	s.emit(gen, "Recall Round: Let's review the questions again.")

	correct := 0
	for position, index := range order {
		answer, ok := s.ask(gen, position, fmt.Sprintf("Question %d: %s", index+1, questions[index]))
		if !ok {
			return false
		}
		reference := practice[index]
		result := Result{
			Session:   session,
			Index:     index,
			Question:  questions[index],
			Reference: reference,
			Answer:    answer,
			Correct:   strings.EqualFold(answer, reference),
		}
		if result.Correct {
			correct++
		}

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return false
		}
		s.results = append(s.results, result)
		s.mu.Unlock()

		s.emit(gen, "Your initial answer was: "+reference)
	}

	accuracy := float64(correct) / float64(len(questions)) * 100
	s.emit(gen, fmt.Sprintf("Recall round completed. Accuracy rate: %.0f%%", accuracy))
	if accuracy < 50 {
		s.emit(gen, "You need improvement in understanding the material.")
	} else {
		s.emit(gen, "Good job! Keep practicing to improve further.")
	}
	return true
}

func (s *Scheduler) takeBreak(gen int, abortCh chan struct{}, session int) bool {
	duration := s.config.BreakFor(session)
	seconds := int(duration / time.Second)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return false
	}
	interrupt := make(chan struct{})
	s.breakCh = interrupt
	s.state.Round = RoundBreak
	s.state.BreakRemaining = seconds
	s.mu.Unlock()

	s.emit(gen, fmt.Sprintf("Taking a %s break.", formatBreak(duration)))

	interrupted := false
	for i := seconds; i > 0 && !interrupted; i-- {
		s.mu.Lock()
		for s.gen == gen && s.state.Paused && !isClosed(interrupt) {
			s.cond.Wait()
		}
		if s.gen != gen {
			s.mu.Unlock()
			return false
		}
		if isClosed(interrupt) {
			s.mu.Unlock()
			interrupted = true
			break
		}
		s.state.BreakRemaining = i
		s.mu.Unlock()

		s.breakTicks.Notify(i)

		timer := time.NewTimer(s.tick)
		select {
		case <-timer.C:
		case <-abortCh:
			timer.Stop()
			return false
		case <-interrupt:
			timer.Stop()
			interrupted = true
		}
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return false
	}
	s.state.BreakRemaining = 0
	s.breakCh = nil
	s.mu.Unlock()

	if interrupted {
		s.emit(gen, "Break interrupted.")
	}
	if s.chime != nil {
		s.chime.Play()
	}
	s.emit(gen, "Break over! Let's continue.")
	return true
}

// ask presents a question and blocks until it is answered, the run is
// aborted, or, while paused, until it is resumed.
func (s *Scheduler) ask(gen int, position int, prompt string) (string, bool) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return "", false
	}
	s.awaiting = true
	s.mu.Unlock()

	s.emit(gen, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.gen == gen && (s.state.Paused || s.ledger.Len() <= position) {
		s.cond.Wait()
	}
	if s.gen != gen {
		return "", false
	}
	answer, _ := s.ledger.Answer(position)
	return answer, true
}

func (s *Scheduler) enterRound(gen int, session int, round Round, size int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.state.SessionCount = session
	s.state.Round = round
	s.awaiting = false
	s.ledger.Reset(size)
	return true
}

func (s *Scheduler) questionsFor(gen int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	return s.questions
}

func (s *Scheduler) recallOrder(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	order := s.shuffle(append([]int(nil), indices...))
	if !isPermutation(order, n) {
		log.Printf("scheduler: shuffle returned %v, which is not a permutation of %d indices; using question order", order, n)
		return indices
	}
	return order
}

func (s *Scheduler) loadQuestions() ([]string, error) {
	if s.source == nil {
		return nil, ErrNoInput
	}
	questions, err := s.source()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInput, err)
	}
	if len(questions) == 0 {
		return nil, ErrNoInput
	}
	if s.config.RoundSize > 0 && len(questions) > s.config.RoundSize {
		questions = questions[:s.config.RoundSize]
	}
	return append([]string(nil), questions...), nil
}

// abort ends a running run with the given status and returns its done channel.
func (s *Scheduler) abort(status Status) <-chan struct{} {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != StatusRunning {
		return closedDone
	}
	s.gen++
	close(s.abortCh)
	s.state.Status = status
	s.state.Paused = false
	s.awaiting = false
	s.cond.Broadcast()
	log.Printf("scheduler: run %s ended: %s", s.state.RunID, status)
	return s.done
}

// emit forwards text to the sink unless the run has been superseded.
func (s *Scheduler) emit(gen int, text string) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()
	current := s.gen == gen
	s.mu.Unlock()
	if current && s.sink != nil {
		s.sink.Update(text)
	}
}

func (s *Scheduler) emitDirect(text string) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	if s.sink != nil {
		s.sink.Update(text)
	}
}

func randomShuffle(indices []int) []int {
	rand.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return indices
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, index := range order {
		if index < 0 || index >= n || seen[index] {
			return false
		}
		seen[index] = true
	}
	return true
}

func formatBreak(duration time.Duration) string {
	if duration >= time.Minute && duration%time.Minute == 0 {
		return fmt.Sprintf("%d minute", int(duration/time.Minute))
	}
	return duration.String()
}

func isClosed(ch chan struct{}) bool {
	if ch == nil {
		return false
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

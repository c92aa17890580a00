package command_test

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"studyplanner/internal/core/command"
	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/scheduler"
)

type fakeTarget struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeTarget) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeTarget) Pause()  { f.record("pause") }
func (f *fakeTarget) Resume() { f.record("resume") }
func (f *fakeTarget) Reset()  { f.record("reset") }
func (f *fakeTarget) Back()   { f.record("back") }

func (f *fakeTarget) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type lines struct {
	mu   sync.Mutex
	text []string
}

func (l *lines) Update(text string) {
	l.mu.Lock()
	l.text = append(l.text, text)
	l.mu.Unlock()
}

func (l *lines) last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.text) == 0 {
		return ""
	}
	return l.text[len(l.text)-1]
}

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  command.Type
		ok    bool
	}{
		{"pause", command.CmdPause, true},
		{"resume", command.CmdResume, true},
		{"reset", command.CmdReset, true},
		{"back", command.CmdBack, true},
		{"Pause", 0, false},
		{" pause", 0, false},
		{"quit", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := command.Parse(tt.token)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.token, got, ok, tt.want, tt.ok)
		}
		if ok && got.String() != tt.token {
			t.Errorf("%v.String() = %q", got, got.String())
		}
	}
}

func TestInterpreter_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		policy  command.Policy
		tokens  []string
		results []command.Result
		calls   []string
		mode    command.Mode
	}{
		{
			name:    "unknown token between questions continues",
			tokens:  []string{"next"},
			results: []command.Result{command.ResultContinue},
			mode:    command.ModePrompt,
		},
		{
			name:    "pause then resume",
			tokens:  []string{"pause", "resume"},
			results: []command.Result{command.ResultPaused, command.ResultResumed},
			calls:   []string{"pause", "resume"},
			mode:    command.ModePrompt,
		},
		{
			name:    "pause then reset",
			tokens:  []string{"pause", "reset"},
			results: []command.Result{command.ResultPaused, command.ResultReset},
			calls:   []string{"pause", "reset"},
			mode:    command.ModePrompt,
		},
		{
			name:    "pause then back",
			tokens:  []string{"pause", "back"},
			results: []command.Result{command.ResultPaused, command.ResultBack},
			calls:   []string{"pause", "back"},
			mode:    command.ModePrompt,
		},
		{
			name:    "invalid while paused goes back by default",
			tokens:  []string{"pause", "whatever"},
			results: []command.Result{command.ResultPaused, command.ResultBack},
			calls:   []string{"pause", "back"},
			mode:    command.ModePrompt,
		},
		{
			name:    "invalid while paused can stay paused",
			policy:  command.PolicyStayPaused,
			tokens:  []string{"pause", "whatever", "resume"},
			results: []command.Result{command.ResultPaused, command.ResultPaused, command.ResultResumed},
			calls:   []string{"pause", "resume"},
			mode:    command.ModePrompt,
		},
		{
			name:    "pause twice",
			tokens:  []string{"pause", "pause"},
			results: []command.Result{command.ResultPaused, command.ResultPaused},
			calls:   []string{"pause"},
			mode:    command.ModePaused,
		},
		{
			name:    "resume without pause",
			tokens:  []string{"resume"},
			results: []command.Result{command.ResultContinue},
			mode:    command.ModePrompt,
		},
		{
			name:    "reset between questions",
			tokens:  []string{"reset"},
			results: []command.Result{command.ResultReset},
			calls:   []string{"reset"},
			mode:    command.ModePrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{}
			interpreter := command.New(target, &lines{}, command.WithPolicy(tt.policy))

			var results []command.Result
			for _, token := range tt.tokens {
				results = append(results, interpreter.Handle(token))
			}

			if !reflect.DeepEqual(results, tt.results) {
				t.Errorf("results = %v, want %v", results, tt.results)
			}
			if got := target.snapshot(); !reflect.DeepEqual(got, tt.calls) {
				t.Errorf("calls = %v, want %v", got, tt.calls)
			}
			if interpreter.Mode() != tt.mode {
				t.Errorf("mode = %v, want %v", interpreter.Mode(), tt.mode)
			}
		})
	}
}

func TestInterpreter_Accepts(t *testing.T) {
	interpreter := command.New(&fakeTarget{}, nil)

	if interpreter.Accepts("Paris") {
		t.Error("answers should not be taken as commands")
	}
	if !interpreter.Accepts("pause") {
		t.Error("pause should be a command")
	}
	interpreter.Handle("pause")
	if !interpreter.Accepts("Paris") {
		t.Error("everything is a command while paused")
	}
}

func TestInterpreter_ReportsInvalidPausedToken(t *testing.T) {
	sink := &lines{}
	interpreter := command.New(&fakeTarget{}, sink)

	interpreter.Handle("pause")
	interpreter.Handle("nope")

	if got := sink.last(); got != "Invalid command. Returning to homescreen." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestInterpreter_DrivesScheduler(t *testing.T) {
	sink := &lines{}
	s, err := scheduler.New(func() ([]string, error) { return []string{"q0", "q1"}, nil }, sink, model.SchedulerConfig{TotalSessions: 1})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(s.Stop)
	if err := s.StartSession(); err != nil {
		t.Fatalf("start: %v", err)
	}
	interpreter := command.New(command.ForScheduler(s), sink)

	waitFor(t, func() bool { return s.State().Awaiting })
	interpreter.Handle("pause")
	if !s.State().Paused {
		t.Fatal("expected scheduler to be paused")
	}
	if s.SubmitAnswer("x") {
		t.Error("expected answer to be refused while paused")
	}

	interpreter.Handle("resume")
	if s.State().Paused {
		t.Fatal("expected scheduler to resume")
	}
	if !s.SubmitAnswer("x") {
		t.Fatal("expected answer after resume")
	}

	if result := interpreter.Handle("back"); result != command.ResultBack {
		t.Fatalf("expected back, got %v", result)
	}
	if state := s.State(); state.Status != scheduler.StatusAbandoned {
		t.Errorf("expected abandoned session, got %s", state.Status)
	}
}

func TestInterpreter_DrivesEngine(t *testing.T) {
	engine, err := countdown.New(model.TimerConfig{WorkSeconds: 1000, Cycles: 1}, countdown.Options{TickInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	interpreter := command.New(command.ForEngine(engine), nil)

	engine.Start()
	interpreter.Handle("pause")
	if snap := engine.Snapshot(); !snap.Paused() {
		t.Fatalf("expected paused engine, got %s", snap.State)
	}
	interpreter.Handle("resume")
	if snap := engine.Snapshot(); snap.State != countdown.StateRunning {
		t.Fatalf("expected running engine, got %s", snap.State)
	}
	interpreter.Handle("back")
	if snap := engine.Snapshot(); snap.State != countdown.StateStopped {
		t.Fatalf("expected stopped engine, got %s", snap.State)
	}
	interpreter.Handle("reset")
	if snap := engine.Snapshot(); snap.State != countdown.StateIdle || snap.Remaining != 1000 {
		t.Errorf("expected idle engine at 1000, got %+v", snap)
	}
}

func TestLoop_SerializesCommands(t *testing.T) {
	target := &fakeTarget{}
	var mu sync.Mutex
	var results []command.Result
	loop := command.NewLoop(command.New(target, nil), func(result command.Result) {
		mu.Lock()
		results = append(results, result)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	if !loop.Enqueue("pause") {
		t.Fatal("enqueue failed")
	}
	result, err := loop.Do(ctx, "resume")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if result != command.ResultResumed {
		t.Errorf("expected resumed, got %v", result)
	}
	if got := target.snapshot(); !reflect.DeepEqual(got, []string{"pause", "resume"}) {
		t.Errorf("unexpected calls %v", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 2 {
		t.Errorf("expected onResult for both commands, got %v", results)
	}
}

func TestLoop_DoHonoursCancellation(t *testing.T) {
	loop := command.NewLoop(command.New(&fakeTarget{}, nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loop.Do(ctx, "pause"); err == nil {
		t.Error("expected context error when loop is not running")
	}
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

package study

import (
	"reflect"
	"testing"

	"studyplanner/internal/core/scheduler"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		state scheduler.State
		want  string
	}{
		{"zero", scheduler.State{}, "No session running."},
		{"complete", scheduler.State{Status: scheduler.StatusComplete}, "All sessions complete."},
		{"abandoned", scheduler.State{Status: scheduler.StatusAbandoned}, "Session ended."},
		{
			"practice",
			scheduler.State{Status: scheduler.StatusRunning, SessionCount: 1, TotalSessions: 4, Round: scheduler.RoundPractice, CurrentQuestion: 1, Questions: 3},
			"Session 1 of 4 · practice round, question 2 of 3",
		},
		{
			"last answer recorded",
			scheduler.State{Status: scheduler.StatusRunning, SessionCount: 1, TotalSessions: 1, Round: scheduler.RoundRecall, CurrentQuestion: 3, Questions: 3},
			"Session 1 of 1 · recall round, question 3 of 3",
		},
		{
			"paused break",
			scheduler.State{Status: scheduler.StatusRunning, SessionCount: 2, TotalSessions: 4, Round: scheduler.RoundBreak, BreakRemaining: 299, Paused: true},
			"Session 2 of 4 · break 04:59 · paused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.state); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendLine(t *testing.T) {
	var lines []string
	for _, text := range []string{"a", "b", "c", "d"} {
		lines = appendLine(lines, text, 3)
	}
	if want := []string{"b", "c", "d"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

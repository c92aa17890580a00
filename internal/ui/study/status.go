package study

import (
	"fmt"
	"strings"
	"time"

	"studyplanner/internal/core/scheduler"
	"studyplanner/internal/ui/overlay"
)

const maxTranscriptLines = 300

// describe renders the one-line status shown above the transcript.
func describe(state scheduler.State) string {
	switch state.Status {
	case scheduler.StatusIdle, "":
		return "No session running."
	case scheduler.StatusComplete:
		return "All sessions complete."
	case scheduler.StatusAbandoned, scheduler.StatusStopped:
		return "Session ended."
	}

	parts := []string{fmt.Sprintf("Session %d of %d", state.SessionCount, state.TotalSessions)}
	switch state.Round {
	case scheduler.RoundBreak:
		parts = append(parts, "break "+overlay.FormatDuration(secondsToDuration(state.BreakRemaining)))
	default:
		parts = append(parts, fmt.Sprintf("%s round, question %d of %d", state.Round, min(state.CurrentQuestion+1, state.Questions), state.Questions))
	}
	if state.Paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, " · ")
}

// appendLine adds text to a transcript, dropping the oldest lines past limit.
func appendLine(lines []string, text string, limit int) []string {
	lines = append(lines, text)
	if len(lines) > limit {
		lines = append([]string(nil), lines[len(lines)-limit:]...)
	}
	return lines
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

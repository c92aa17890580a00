package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/scheduler"
	"studyplanner/internal/ui/overlay"
	"studyplanner/internal/ui/study"
)

// studyListener fans session events out to the study window and the break overlay.
type studyListener struct {
	window  *study.Window
	overlay *overlay.Window
	showing bool
}

func (listener *studyListener) Update(text string) {
	listener.window.Update(text)
}

func (listener *studyListener) State(state scheduler.State) {
	listener.window.State(state)
	if !inBreak(state) {
		fyne.Do(func() {
			if listener.showing {
				listener.showing = false
				listener.overlay.Hide()
			}
		})
	}
}

func (listener *studyListener) BreakTick(remaining int) {
	listener.window.BreakTick(remaining)
	fyne.Do(func() {
		if listener.showing {
			listener.overlay.SetRemaining(time.Duration(remaining) * time.Second)
			return
		}
		listener.showing = true
		listener.overlay.Show(overlay.Session{
			Title:     "Study break",
			Remaining: time.Duration(remaining) * time.Second,
			Skippable: true,
		})
	})
}

func inBreak(state scheduler.State) bool {
	return state.Status == scheduler.StatusRunning && state.Round == scheduler.RoundBreak && state.BreakRemaining > 0
}

// dispatcher runs blocking session and timer calls off the fyne goroutine, in order.
type dispatcher struct {
	actions chan func()
}

func newDispatcher() *dispatcher {
	d := &dispatcher{actions: make(chan func(), 32)}
	go func() {
		for action := range d.actions {
			action()
		}
	}()
	return d
}

func (d *dispatcher) Do(action func()) {
	d.actions <- action
}

func (d *dispatcher) Close() {
	close(d.actions)
}

func timerStatus(snapshot countdown.Snapshot) string {
	switch snapshot.State {
	case countdown.StateRunning, countdown.StatePaused:
		label := "focus"
		if snapshot.Phase.IsBreak() {
			label = "break"
		}
		return fmt.Sprintf("%s %s (cycle %d)", label, overlay.FormatDuration(time.Duration(snapshot.Remaining)*time.Second), snapshot.Cycle)
	case countdown.StateStopped:
		return "all cycles done"
	default:
		return "idle"
	}
}

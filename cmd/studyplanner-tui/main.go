package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studyplanner/internal/audio"
	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/scheduler"
	"studyplanner/internal/core/session"
	"studyplanner/internal/questions"
	"studyplanner/internal/storage"
	"studyplanner/internal/tui"
)

const appName = "studyplanner"

func main() {
	notesPath := flag.String("notes", "", "study notes file to generate questions from")
	withTimer := flag.Bool("timer", false, "show the focus timer (ctrl+t starts and pauses it)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if *logPath != "" {
		logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	store, err := storage.OpenStore(appName, storage.EnvOverlay())
	if err != nil {
		log.Printf("settings: %v; using defaults", err)
	}
	settings := store.Runtime()
	if *notesPath != "" {
		settings.NotesPath = *notesPath
	}

	chime := audio.NewChime(audio.DefaultNotes)
	chime.SetEnabled(settings.ChimeEnabled)

	bridge := &tui.Bridge{}
	controller := session.New(bridge, settings.SchedulerConfig(), session.Options{
		Scheduler: []scheduler.Option{scheduler.WithChime(chime)},
		OnBreak:   bridge.BreakTick,
	})
	defer controller.Close()

	var timer tui.Timer
	if *withTimer {
		engine, err := countdown.New(settings.TimerConfig(), countdown.Options{TickInterval: time.Second})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating timer: %v\n", err)
			os.Exit(1)
		}
		engine.AddListener(func(int) {
			bridge.TimerTick(engine.Snapshot())
		})
		engine.OnPhase(func(event countdown.PhaseEvent) {
			chime.Play()
			bridge.TimerTick(engine.Snapshot())
		})
		defer engine.Stop()
		timer = engine
	}

	program := tea.NewProgram(
		tui.NewModel(controller, questions.FromFile(settings.NotesPath, 0), timer),
		tea.WithAltScreen(),
	)
	bridge.Attach(program)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

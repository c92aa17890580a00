package main

import (
	"context"
	"flag"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/audio"
	"studyplanner/internal/core/command"
	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/idlewatch"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/scheduler"
	"studyplanner/internal/core/session"
	"studyplanner/internal/platform"
	"studyplanner/internal/questions"
	"studyplanner/internal/storage"
	"studyplanner/internal/ui/overlay"
	"studyplanner/internal/ui/preferences"
	"studyplanner/internal/ui/study"
	"studyplanner/internal/ui/tray"
)

const appName = "studyplanner"

func main() {
	notesArg := flag.String("notes", "", "study notes file to open in the study window")
	flag.Parse()

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		if err := platform.HandOff(appName, *notesArg); err != nil {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := storage.OpenStore(appName, storage.EnvOverlay())
	if err != nil {
		log.Printf("settings: %v; using defaults", err)
	}
	settings := store.Runtime()

	fyneApp := app.NewWithID("com.studyplanner.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow("Study Planner")
	trayWindow.SetContent(widget.NewLabel("Study Planner is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	engine, err := countdown.New(settings.TimerConfig(), countdown.Options{TickInterval: time.Second})
	if err != nil {
		log.Printf("timer: %v; using defaults", err)
		settings = model.DefaultSettings()
		engine, _ = countdown.New(settings.TimerConfig(), countdown.Options{TickInterval: time.Second})
	}

	chime := audio.NewChime(audio.DefaultNotes)
	chime.SetEnabled(settings.ChimeEnabled)

	actions := newDispatcher()
	defer actions.Close()

	breakOverlay := overlay.New(fyneApp, overlay.Config{Opacity: 216, Message: "Step away from the notes for a moment."})

	var studyWindow *study.Window
	var controller *session.Controller
	listener := &studyListener{overlay: breakOverlay}
	controller = session.New(listener, settings.SchedulerConfig(), session.Options{
		Scheduler: []scheduler.Option{scheduler.WithChime(chime)},
		OnBreak:   listener.BreakTick,
		OnResult: func(result command.Result) {
			if result == command.ResultBack {
				log.Printf("study: learner went back to the homescreen")
			}
		},
	})
	breakOverlay.SetOnSkip(func() {
		actions.Do(func() { controller.SkipBreak() })
	})

	initialNotes := settings.NotesPath
	if *notesArg != "" {
		initialNotes = *notesArg
	}
	studyWindow = study.New(fyneApp, initialNotes, study.Callbacks{
		OnStart: func(notesPath string) {
			if notesPath != store.Saved().NotesPath {
				settings = store.Update(func(saved *model.Settings) {
					saved.NotesPath = notesPath
				})
				actions.Do(func() { saveSettings(store) })
			}
			actions.Do(func() {
				if err := controller.Start(questions.FromFile(notesPath, 0)); err != nil {
					log.Printf("study: start: %v", err)
				}
			})
		},
		OnInput: func(text string) {
			actions.Do(func() { controller.Input(text) })
		},
		OnCommand: func(cmd command.Type) {
			actions.Do(func() { controller.Command(cmd) })
		},
		OnSkipBreak: func() {
			actions.Do(func() { controller.SkipBreak() })
		},
	})
	listener.window = studyWindow
	lock.Serve(func(notesPath string) {
		log.Printf("study: opened by another launch")
		fyne.Do(func() {
			if notesPath != "" {
				studyWindow.SetNotesPath(notesPath)
			}
			studyWindow.Show()
		})
	})

	activeIcon := theme.MediaPlayIcon()
	pausedIcon := theme.MediaPauseIcon()

	var trayManager *tray.Manager
	refreshTimer := func() {
		snapshot := engine.Snapshot()
		trayManager.SetRunning(snapshot.Running(), snapshot.Paused())
		trayManager.SetStatus(timerStatus(snapshot))
		if snapshot.Paused() {
			desktopApp.SetSystemTrayIcon(pausedIcon)
		} else {
			desktopApp.SetSystemTrayIcon(activeIcon)
		}
	}

	idle := newIdleRunner(engine, func() {
		fyne.Do(refreshTimer)
	})
	idle.Apply(settings)
	defer idle.Stop()

	var prefsWindow *preferences.Window
	prefsWindow = preferences.New(fyneApp, store.Saved(), func(edited model.Settings) {
		settings = store.Update(func(saved *model.Settings) {
			notesPath := saved.NotesPath
			*saved = edited
			saved.NotesPath = notesPath
		})
		if err := engine.Reconfigure(settings.TimerConfig()); err != nil {
			log.Printf("timer: %v", err)
		}
		controller.SetConfig(settings.SchedulerConfig())
		chime.SetEnabled(settings.ChimeEnabled)
		idle.Apply(settings)
		refreshTimer()
		actions.Do(func() { saveSettings(store) })
	})

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStudy: func() {
			studyWindow.Show()
		},
		OnStartTimer: func() {
			engine.Start()
			refreshTimer()
		},
		OnTogglePause: func() {
			if engine.Snapshot().Paused() {
				engine.Resume()
			} else {
				engine.Pause()
			}
			refreshTimer()
		},
		OnResetTimer: func() {
			actions.Do(func() {
				engine.Reset()
				fyne.Do(refreshTimer)
			})
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			idle.Stop()
			actions.Do(func() {
				controller.Close()
				engine.Stop()
				fyne.Do(fyneApp.Quit)
			})
		},
	})

	engine.AddListener(func(int) {
		fyne.Do(refreshTimer)
	})
	engine.OnPhase(func(event countdown.PhaseEvent) {
		if event.Phase != countdown.PhaseWork || event.Cycle > 1 {
			chime.Play()
		}
		log.Printf("timer: %s phase, cycle %d, %d seconds", event.Phase, event.Cycle, event.Seconds)
		fyne.Do(refreshTimer)
	})

	refreshTimer()
	studyWindow.Show()
	fyneApp.Run()
}

func saveSettings(store *storage.Store) {
	if err := store.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}

// idleRunner restarts the idle watcher whenever its settings change.
type idleRunner struct {
	engine  *countdown.Engine
	onPause func()
	cancel  context.CancelFunc
}

func newIdleRunner(engine *countdown.Engine, onPause func()) *idleRunner {
	return &idleRunner{engine: engine, onPause: onPause}
}

func (runner *idleRunner) Apply(settings model.Settings) {
	runner.Stop()
	if !settings.IdlePauseEnabled {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	runner.cancel = cancel
	watcher := idlewatch.New(platform.NewIdleProvider(), runner.engine, idlewatch.Config{
		CheckInterval: 5 * time.Second,
		PauseAfter:    settings.IdlePauseAfter,
	}, func(idle time.Duration) {
		log.Printf("timer: paused after %s idle", idle.Round(time.Second))
		runner.onPause()
	})
	go watcher.Run(ctx)
}

func (runner *idleRunner) Stop() {
	if runner.cancel != nil {
		runner.cancel()
		runner.cancel = nil
	}
}

package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "Study Planner"

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStudy       func()
	OnStartTimer  func()
	OnTogglePause func()
	OnResetTimer  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	resetItem   *fyne.MenuItem
	paused      bool
	running     bool
	statusLabel string
}

// New creates a tray manager and installs its menu.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start timer", invoke(callbacks.OnStartTimer))
	manager.pauseItem = fyne.NewMenuItem("Pause timer", invoke(callbacks.OnTogglePause))
	manager.resetItem = fyne.NewMenuItem("Reset timer", invoke(callbacks.OnResetTimer))

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning toggles the timer items between a running and an idle timer.
func (manager *Manager) SetRunning(running, paused bool) {
	manager.running = running
	manager.paused = paused && running
	manager.startItem.Disabled = running
	if manager.paused {
		manager.pauseItem.Label = "Resume timer"
	} else {
		manager.pauseItem.Label = "Pause timer"
	}
	manager.refreshStatus()
}

// StatusText returns the label shown at the top of the menu.
func (manager *Manager) StatusText() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Timer: %s", status)
	manager.pauseItem.Disabled = !manager.running
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Open study session", invoke(manager.callbacks.OnStudy)),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(manager.callbacks.OnQuit)),
	))
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}

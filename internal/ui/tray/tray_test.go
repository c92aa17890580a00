package tray

import (
	"testing"

	"fyne.io/fyne/v2"
)

type fakeHost struct {
	menus []*fyne.Menu
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func (host *fakeHost) last() *fyne.Menu {
	return host.menus[len(host.menus)-1]
}

func item(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, candidate := range menu.Items {
		if candidate.Label == label {
			return candidate
		}
	}
	return nil
}

func TestManager_StatusAndToggle(t *testing.T) {
	host := &fakeHost{}
	toggles := 0
	manager := New(host, Callbacks{OnTogglePause: func() { toggles++ }})

	if got := manager.StatusText(); got != "Timer: idle" {
		t.Errorf("status = %q", got)
	}
	if item(host.last(), "Pause timer") == nil || !item(host.last(), "Pause timer").Disabled {
		t.Error("pause should be disabled while idle")
	}

	manager.SetRunning(true, false)
	manager.SetStatus("work 24:59")
	if got := manager.StatusText(); got != "Timer: work 24:59" {
		t.Errorf("status = %q", got)
	}

	manager.SetRunning(true, true)
	if got := manager.StatusText(); got != "Timer: work 24:59 (paused)" {
		t.Errorf("status = %q", got)
	}
	resume := item(host.last(), "Resume timer")
	if resume == nil || resume.Disabled {
		t.Fatal("expected an enabled resume item")
	}
	resume.Action()
	if toggles != 1 {
		t.Errorf("expected toggle callback, got %d", toggles)
	}
	if !item(host.last(), "Start timer").Disabled {
		t.Error("start should be disabled while running")
	}
}

func TestManager_MissingCallbacksAreIgnored(t *testing.T) {
	host := &fakeHost{}
	New(host, Callbacks{})

	for _, entry := range host.last().Items {
		if entry.Action != nil {
			entry.Action()
		}
	}
}

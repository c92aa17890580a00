package storage

import (
	"errors"
	"sync"
	"time"

	"studyplanner/internal/core/model"
)

var errNoConfigPath = errors.New("no settings file path")

// Store keeps the settings read from the settings file apart from the
// runtime settings, which also carry the environment overrides. Only the
// file settings and the user's edits to them are ever written back.
type Store struct {
	mu      sync.Mutex
	path    string
	saved   model.Settings
	overlay func(model.Settings) model.Settings
}

// OpenStore loads the per-user settings file. On a load error the store
// still holds defaults and the error is returned alongside it.
func OpenStore(appName string, overlay func(model.Settings) model.Settings) (*Store, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return &Store{saved: model.DefaultSettings(), overlay: overlay}, err
	}
	return NewStore(configPath, overlay)
}

// NewStore loads settings from configPath. overlay may be nil.
func NewStore(configPath string, overlay func(model.Settings) model.Settings) (*Store, error) {
	saved, err := LoadSettingsFrom(configPath)
	return &Store{path: configPath, saved: saved, overlay: overlay}, err
}

// Saved returns the settings as they are in the file.
func (store *Store) Saved() model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return cloneSettings(store.saved)
}

// Runtime returns the file settings with the overrides applied.
func (store *Store) Runtime() model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.runtimeLocked()
}

// Update edits the file settings in memory and returns the new runtime
// settings. Call Save to write them.
func (store *Store) Update(edit func(*model.Settings)) model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	saved := cloneSettings(store.saved)
	edit(&saved)
	store.saved = saved
	return store.runtimeLocked()
}

// Save writes the file settings.
func (store *Store) Save() error {
	store.mu.Lock()
	saved, configPath := cloneSettings(store.saved), store.path
	store.mu.Unlock()
	if configPath == "" {
		return errNoConfigPath
	}
	return SaveSettingsTo(configPath, saved)
}

func (store *Store) runtimeLocked() model.Settings {
	settings := cloneSettings(store.saved)
	if store.overlay != nil {
		settings = store.overlay(settings)
	}
	return settings
}

func cloneSettings(settings model.Settings) model.Settings {
	settings.BreakDurations = append([]time.Duration(nil), settings.BreakDurations...)
	return settings
}

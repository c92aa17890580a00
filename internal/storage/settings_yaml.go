package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"studyplanner/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes       minutesValue   `yaml:"work_minutes"`
	ShortBreakMinutes minutesValue   `yaml:"short_break_minutes"`
	LongBreakMinutes  minutesValue   `yaml:"long_break_minutes"`
	Cycles            int            `yaml:"cycles"`
	TotalSessions     int            `yaml:"total_sessions"`
	BreakMinutes      []minutesValue `yaml:"break_minutes,omitempty"`
	RoundSize         int            `yaml:"round_size"`
	IdlePauseEnabled  bool           `yaml:"idle_pause_enabled"`
	IdlePauseMinutes  minutesValue   `yaml:"idle_pause_minutes"`
	ChimeEnabled      *bool          `yaml:"chime_enabled,omitempty"`
	NotesPath         string         `yaml:"notes_path,omitempty"`
}

// minutesValue is written as whole minutes when it has no seconds part and
// as a duration string such as "1m30s" otherwise. Both forms are read back.
type minutesValue time.Duration

func (value minutesValue) MarshalYAML() (interface{}, error) {
	duration := time.Duration(value)
	if duration%time.Minute == 0 {
		return int(duration / time.Minute), nil
	}
	return duration.String(), nil
}

func (value *minutesValue) UnmarshalYAML(node *yaml.Node) error {
	var whole int
	if err := node.Decode(&whole); err == nil {
		*value = minutesValue(time.Duration(whole) * time.Minute)
		return nil
	}
	var text string
	if err := node.Decode(&text); err != nil {
		return fmt.Errorf("line %d: %q is not minutes or a duration", node.Line, node.Value)
	}
	duration, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("line %d: %q is not minutes or a duration", node.Line, node.Value)
	}
	*value = minutesValue(duration)
	return nil
}

// LoadSettingsFrom reads preferences from configPath. Missing or
// non-positive values keep their defaults.
func LoadSettingsFrom(configPath string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsTo writes preferences to configPath, creating its directory.
func SaveSettingsTo(configPath string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	chime := settings.ChimeEnabled
	fileData := yamlSettings{
		WorkMinutes:       minutesValue(settings.WorkDuration),
		ShortBreakMinutes: minutesValue(settings.ShortBreakDuration),
		LongBreakMinutes:  minutesValue(settings.LongBreakDuration),
		Cycles:            settings.Cycles,
		TotalSessions:     settings.TotalSessions,
		RoundSize:         settings.RoundSize,
		IdlePauseEnabled:  settings.IdlePauseEnabled,
		IdlePauseMinutes:  minutesValue(settings.IdlePauseAfter),
		ChimeEnabled:      &chime,
		NotesPath:         settings.NotesPath,
	}
	for _, breakDuration := range settings.BreakDurations {
		fileData.BreakMinutes = append(fileData.BreakMinutes, minutesValue(breakDuration))
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	setPositive(&settings.WorkDuration, fileData.WorkMinutes)
	setPositive(&settings.ShortBreakDuration, fileData.ShortBreakMinutes)
	setPositive(&settings.LongBreakDuration, fileData.LongBreakMinutes)
	if fileData.Cycles > 0 {
		settings.Cycles = fileData.Cycles
	}
	if fileData.TotalSessions > 0 {
		settings.TotalSessions = fileData.TotalSessions
	}
	if breaks := positiveDurations(fileData.BreakMinutes); len(breaks) > 0 {
		settings.BreakDurations = breaks
	}
	if fileData.RoundSize > 0 {
		settings.RoundSize = fileData.RoundSize
	}
	setPositive(&settings.IdlePauseAfter, fileData.IdlePauseMinutes)
	if fileData.ChimeEnabled != nil {
		settings.ChimeEnabled = *fileData.ChimeEnabled
	}

	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
	settings.NotesPath = fileData.NotesPath
}

func setPositive(target *time.Duration, value minutesValue) {
	if value > 0 {
		*target = time.Duration(value)
	}
}

func positiveDurations(values []minutesValue) []time.Duration {
	var durations []time.Duration
	for _, value := range values {
		if value > 0 {
			durations = append(durations, time.Duration(value))
		}
	}
	return durations
}

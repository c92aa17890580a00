package model

import "time"

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	Cycles             int

	TotalSessions  int
	BreakDurations []time.Duration
	RoundSize      int

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration
	ChimeEnabled     bool

	// NotesPath is the study notes file questions are generated from.
	NotesPath string
}

// DefaultSettings returns the defaults: a 25/5/30 minute pomodoro over four cycles
// and four study sessions separated by 5, 7 and 10 minute breaks.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:       25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  30 * time.Minute,
		Cycles:             4,
		TotalSessions:      4,
		BreakDurations:     []time.Duration{5 * time.Minute, 7 * time.Minute, 10 * time.Minute},
		RoundSize:          5,
		IdlePauseEnabled:   false,
		IdlePauseAfter:     5 * time.Minute,
		ChimeEnabled:       true,
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() TimerConfig {
	return TimerConfig{
		WorkSeconds:       int(settings.WorkDuration / time.Second),
		ShortBreakSeconds: int(settings.ShortBreakDuration / time.Second),
		LongBreakSeconds:  int(settings.LongBreakDuration / time.Second),
		Cycles:            settings.Cycles,
	}
}

// SchedulerConfig converts settings to a SchedulerConfig.
func (settings Settings) SchedulerConfig() SchedulerConfig {
	breaks := append([]time.Duration(nil), settings.BreakDurations...)
	return SchedulerConfig{
		TotalSessions:  settings.TotalSessions,
		BreakDurations: breaks,
		RoundSize:      settings.RoundSize,
	}
}

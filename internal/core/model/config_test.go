package model_test

import (
	"errors"
	"testing"
	"time"

	"studyplanner/internal/core/model"
)

func TestTimerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  model.TimerConfig
		wantErr bool
	}{
		{"valid", model.TimerConfig{WorkSeconds: 3, ShortBreakSeconds: 1, LongBreakSeconds: 2, Cycles: 2}, false},
		{"zero cycles", model.TimerConfig{WorkSeconds: 3, Cycles: 0}, true},
		{"negative work", model.TimerConfig{WorkSeconds: -1, Cycles: 1}, true},
		{"zero durations allowed", model.TimerConfig{Cycles: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && !errors.Is(err, model.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSchedulerConfig_Validate(t *testing.T) {
	breaks := []time.Duration{time.Second}
	tests := []struct {
		name    string
		config  model.SchedulerConfig
		wantErr bool
	}{
		{"valid", model.SchedulerConfig{TotalSessions: 4, BreakDurations: breaks}, false},
		{"single session needs no breaks", model.SchedulerConfig{TotalSessions: 1}, false},
		{"no sessions", model.SchedulerConfig{TotalSessions: 0, BreakDurations: breaks}, true},
		{"missing breaks", model.SchedulerConfig{TotalSessions: 2}, true},
		{"negative break", model.SchedulerConfig{TotalSessions: 2, BreakDurations: []time.Duration{-time.Second}}, true},
		{"negative round size", model.SchedulerConfig{TotalSessions: 1, RoundSize: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSchedulerConfig_BreakForRotates(t *testing.T) {
	config := model.SchedulerConfig{
		TotalSessions:  4,
		BreakDurations: []time.Duration{5 * time.Minute, 7 * time.Minute, 10 * time.Minute},
	}

	want := []time.Duration{5 * time.Minute, 7 * time.Minute, 10 * time.Minute, 5 * time.Minute}
	for i, expected := range want {
		if got := config.BreakFor(i + 1); got != expected {
			t.Errorf("BreakFor(%d) = %v, want %v", i+1, got, expected)
		}
	}
	if got := config.BreakFor(0); got != 0 {
		t.Errorf("BreakFor(0) = %v, want 0", got)
	}
}

func TestDefaultSettings_Conversions(t *testing.T) {
	settings := model.DefaultSettings()

	timer := settings.TimerConfig()
	if timer.WorkSeconds != 25*60 || timer.ShortBreakSeconds != 5*60 || timer.LongBreakSeconds != 30*60 || timer.Cycles != 4 {
		t.Errorf("unexpected timer config: %+v", timer)
	}

	scheduler := settings.SchedulerConfig()
	if scheduler.TotalSessions != 4 || len(scheduler.BreakDurations) != 3 || scheduler.RoundSize != 5 {
		t.Errorf("unexpected scheduler config: %+v", scheduler)
	}

	scheduler.BreakDurations[0] = 0
	if settings.BreakDurations[0] == 0 {
		t.Error("SchedulerConfig must not alias the settings break list")
	}
}

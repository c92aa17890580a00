package preferences

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"studyplanner/internal/core/model"
)

func TestFormValues_RoundTrip(t *testing.T) {
	defaults := model.DefaultSettings()

	got, err := valuesFrom(defaults).apply(defaults)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(got, defaults) {
		t.Errorf("expected %+v, got %+v", defaults, got)
	}
}

func TestFormValues_Apply(t *testing.T) {
	values := valuesFrom(model.DefaultSettings())
	values.work = "45"
	values.breaks = "3, 4,,"
	values.chime = false

	got, err := values.apply(model.DefaultSettings())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.WorkDuration != 45*time.Minute {
		t.Errorf("work = %v", got.WorkDuration)
	}
	if !reflect.DeepEqual(got.BreakDurations, []time.Duration{3 * time.Minute, 4 * time.Minute}) {
		t.Errorf("breaks = %v", got.BreakDurations)
	}
	if got.ChimeEnabled {
		t.Error("chime should be off")
	}
}

func TestFormValues_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*formValues)
	}{
		{"non-numeric work", func(v *formValues) { v.work = "lots" }},
		{"zero cycles", func(v *formValues) { v.cycles = "0" }},
		{"bad break", func(v *formValues) { v.breaks = "5, x" }},
		{"several sessions without breaks", func(v *formValues) { v.sessions = "3"; v.breaks = "" }},
	}

	defaults := model.DefaultSettings()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := valuesFrom(defaults)
			tt.mutate(&values)
			got, err := values.apply(defaults)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !reflect.DeepEqual(got, defaults) {
				t.Error("rejected input must leave settings unchanged")
			}
		})
	}
}

func TestFormValues_MissingBreaksIsConfigError(t *testing.T) {
	values := valuesFrom(model.DefaultSettings())
	values.breaks = ""
	if _, err := values.apply(model.DefaultSettings()); !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

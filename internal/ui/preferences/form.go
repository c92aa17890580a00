package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studyplanner/internal/core/model"
)

// formValues is the raw text of the preferences form.
type formValues struct {
	work       string
	shortBreak string
	longBreak  string
	cycles     string
	sessions   string
	breaks     string
	roundSize  string
	idleAfter  string
	idlePause  bool
	chime      bool
}

func valuesFrom(settings model.Settings) formValues {
	breaks := make([]string, 0, len(settings.BreakDurations))
	for _, breakDuration := range settings.BreakDurations {
		breaks = append(breaks, strconv.Itoa(int(breakDuration/time.Minute)))
	}
	return formValues{
		work:       strconv.Itoa(int(settings.WorkDuration / time.Minute)),
		shortBreak: strconv.Itoa(int(settings.ShortBreakDuration / time.Minute)),
		longBreak:  strconv.Itoa(int(settings.LongBreakDuration / time.Minute)),
		cycles:     strconv.Itoa(settings.Cycles),
		sessions:   strconv.Itoa(settings.TotalSessions),
		breaks:     strings.Join(breaks, ", "),
		roundSize:  strconv.Itoa(settings.RoundSize),
		idleAfter:  strconv.Itoa(int(settings.IdlePauseAfter / time.Minute)),
		idlePause:  settings.IdlePauseEnabled,
		chime:      settings.ChimeEnabled,
	}
}

// apply parses values over base and validates the result.
func (values formValues) apply(base model.Settings) (model.Settings, error) {
	settings := base
	var err error

	if settings.WorkDuration, err = parseMinutes("work", values.work); err != nil {
		return base, err
	}
	if settings.ShortBreakDuration, err = parseMinutes("short break", values.shortBreak); err != nil {
		return base, err
	}
	if settings.LongBreakDuration, err = parseMinutes("long break", values.longBreak); err != nil {
		return base, err
	}
	if settings.Cycles, err = parsePositiveInt("cycles", values.cycles); err != nil {
		return base, err
	}
	if settings.TotalSessions, err = parsePositiveInt("sessions", values.sessions); err != nil {
		return base, err
	}
	if settings.RoundSize, err = parsePositiveInt("questions per session", values.roundSize); err != nil {
		return base, err
	}
	if settings.IdlePauseAfter, err = parseMinutes("idle pause", values.idleAfter); err != nil {
		return base, err
	}

	settings.BreakDurations = nil
	for _, part := range strings.Split(values.breaks, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		breakDuration, err := parseMinutes("breaks", part)
		if err != nil {
			return base, err
		}
		settings.BreakDurations = append(settings.BreakDurations, breakDuration)
	}

	settings.IdlePauseEnabled = values.idlePause
	settings.ChimeEnabled = values.chime

	if err := settings.TimerConfig().Validate(); err != nil {
		return base, err
	}
	if err := settings.SchedulerConfig().Validate(); err != nil {
		return base, err
	}
	return settings, nil
}

func parseMinutes(field, value string) (time.Duration, error) {
	minutes, err := parsePositiveInt(field, value)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

func parsePositiveInt(field, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%s must be a positive whole number, got %q", field, value)
	}
	return parsed, nil
}

package storage

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"studyplanner/internal/core/model"
)

const envPrefix = "STUDYPLANNER_"

// EnvOverlay loads a .env file from the working directory, if present, and
// returns a function that applies STUDYPLANNER_* overrides to settings.
// Durations use Go syntax ("25m", "90s"); STUDYPLANNER_BREAKS is a comma
// separated list. Invalid values are logged and ignored. Overrides are
// runtime only and never belong in the saved settings file.
func EnvOverlay() func(model.Settings) model.Settings {
	_ = godotenv.Load()
	return func(settings model.Settings) model.Settings {
		return applyEnv(settings, os.Getenv)
	}
}

func applyEnv(settings model.Settings, getenv func(string) string) model.Settings {
	lookup := func(key string) (string, bool) {
		value := strings.TrimSpace(getenv(envPrefix + key))
		return value, value != ""
	}

	if value, ok := lookup("WORK"); ok {
		setDuration(&settings.WorkDuration, "WORK", value)
	}
	if value, ok := lookup("SHORT_BREAK"); ok {
		setDuration(&settings.ShortBreakDuration, "SHORT_BREAK", value)
	}
	if value, ok := lookup("LONG_BREAK"); ok {
		setDuration(&settings.LongBreakDuration, "LONG_BREAK", value)
	}
	if value, ok := lookup("CYCLES"); ok {
		setCount(&settings.Cycles, "CYCLES", value)
	}
	if value, ok := lookup("SESSIONS"); ok {
		setCount(&settings.TotalSessions, "SESSIONS", value)
	}
	if value, ok := lookup("ROUND_SIZE"); ok {
		setCount(&settings.RoundSize, "ROUND_SIZE", value)
	}
	if value, ok := lookup("BREAKS"); ok {
		if breaks, ok := parseBreaks(value); ok {
			settings.BreakDurations = breaks
		} else {
			log.Printf("storage: %sBREAKS=%q is not a list of durations", envPrefix, value)
		}
	}
	if value, ok := lookup("IDLE_PAUSE"); ok {
		if value == "off" {
			settings.IdlePauseEnabled = false
		} else if setDuration(&settings.IdlePauseAfter, "IDLE_PAUSE", value) {
			settings.IdlePauseEnabled = true
		}
	}
	if value, ok := lookup("CHIME"); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("storage: %sCHIME=%q is not a boolean", envPrefix, value)
		} else {
			settings.ChimeEnabled = enabled
		}
	}
	if value, ok := lookup("NOTES"); ok {
		settings.NotesPath = value
	}
	return settings
}

func setDuration(target *time.Duration, key, value string) bool {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		log.Printf("storage: %s%s=%q is not a positive duration", envPrefix, key, value)
		return false
	}
	*target = duration
	return true
}

func setCount(target *int, key, value string) {
	count, err := strconv.Atoi(value)
	if err != nil || count <= 0 {
		log.Printf("storage: %s%s=%q is not a positive integer", envPrefix, key, value)
		return
	}
	*target = count
}

func parseBreaks(value string) ([]time.Duration, bool) {
	var breaks []time.Duration
	for _, part := range strings.Split(value, ",") {
		duration, err := time.ParseDuration(strings.TrimSpace(part))
		if err != nil || duration < 0 {
			return nil, false
		}
		breaks = append(breaks, duration)
	}
	return breaks, len(breaks) > 0
}

// Package audio synthesises the chime played when a break ends.
package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate beep.SampleRate = 44100

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Note is one tone of a chime.
type Note struct {
	Frequency float64
	Length    time.Duration
}

// DefaultNotes is a rising two-tone chime.
var DefaultNotes = []Note{
	{Frequency: 660, Length: 180 * time.Millisecond},
	{Frequency: 880, Length: 260 * time.Millisecond},
}

const gap = 60 * time.Millisecond

// Chime plays a pre-rendered tone sequence on the default speaker.
// A Chime whose speaker failed to initialise is silent.
type Chime struct {
	mu      sync.Mutex
	buffer  *beep.Buffer
	play    func(beep.Streamer)
	enabled bool
}

// NewChime renders notes and initialises the speaker. Audio problems are
// logged and yield a silent chime rather than an error.
func NewChime(notes []Note) *Chime {
	return newChime(notes, func() error {
		return speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	}, func(streamer beep.Streamer) {
		speaker.Play(streamer)
	})
}

func newChime(notes []Note, initSpeaker func() error, play func(beep.Streamer)) *Chime {
	chime := &Chime{play: play}
	buffer, err := render(notes)
	if err != nil {
		log.Printf("audio: chime disabled: %v", err)
		return chime
	}
	if err := initSpeaker(); err != nil {
		log.Printf("audio: chime disabled: failed to initialise speaker: %v", err)
		return chime
	}
	chime.buffer = buffer
	chime.enabled = true
	return chime
}

// Enabled reports whether Play produces sound.
func (chime *Chime) Enabled() bool {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	return chime.enabled
}

// SetEnabled mutes or unmutes a chime whose speaker is available.
func (chime *Chime) SetEnabled(enabled bool) {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	chime.enabled = enabled && chime.buffer != nil
}

// Play starts the chime and returns immediately.
func (chime *Chime) Play() {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	if !chime.enabled {
		return
	}
	chime.play(chime.buffer.Streamer(0, chime.buffer.Len()))
}

func render(notes []Note) (*beep.Buffer, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("no notes")
	}
	buffer := beep.NewBuffer(format)
	for i, note := range notes {
		tone, err := generators.SineTone(sampleRate, note.Frequency)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		buffer.Append(beep.Take(sampleRate.N(note.Length), tone))
		if i < len(notes)-1 {
			buffer.Append(beep.Silence(sampleRate.N(gap)))
		}
	}
	return buffer, nil
}

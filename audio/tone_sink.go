// Package audio plays encounter sound cues as short synthesized tones.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone is the synthesized stand-in for one cue.
type Tone struct {
	Freq     float64
	Duration time.Duration
	// Volume is a base-2 gain; 0 leaves the tone unchanged.
	Volume float64
}

var cueTones = map[string]Tone{
	"shoot":        {Freq: 1320, Duration: 40 * time.Millisecond, Volume: -3},
	"blast_2":      {Freq: 330, Duration: 120 * time.Millisecond, Volume: -1},
	"bassy_blast":  {Freq: 110, Duration: 180 * time.Millisecond},
	"chill_shoot":  {Freq: 660, Duration: 80 * time.Millisecond, Volume: -2},
	"burst":        {Freq: 220, Duration: 200 * time.Millisecond},
	"explosion_2":  {Freq: 70, Duration: 250 * time.Millisecond},
	"defeat":       {Freq: 55, Duration: 900 * time.Millisecond},
	"mecha_dragon": {Freq: 147, Duration: 400 * time.Millisecond},
}

var fallbackTone = Tone{Freq: 440, Duration: 60 * time.Millisecond, Volume: -2}

// ToneFor returns the tone for cue id and whether the cue is known.
func ToneFor(id string) (Tone, bool) {
	t, ok := cueTones[id]
	if !ok {
		return fallbackTone, false
	}
	return t, true
}

// Streamer renders t at sr.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("audio: tone %.0fHz: %w", t.Freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(t.Duration), sine),
		Base:     2,
		Volume:   t.Volume,
	}, nil
}

// ToneSink is an AudioSink that mixes one tone per cue into the speaker.
// PlaySound never blocks the caller.
type ToneSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewToneSink() *ToneSink {
	return &ToneSink{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. A sink that failed to initialize drops every
// cue.
func (s *ToneSink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *ToneSink) PlaySound(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	tone, _ := ToneFor(id)
	streamer, err := tone.Streamer(sampleRate)
	if err != nil {
		fmt.Printf("audio: cue %s: %v\n", id, err)
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *ToneSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

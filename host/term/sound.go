package term

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockfall/loop"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

// toneFor picks the cue for a lock event. Line clears rise in pitch with the
// number of rows removed.
func toneFor(ev loop.Event) tone {
	switch {
	case ev.Kind == loop.EventGameOver:
		return tone{freq: 110, duration: 600 * time.Millisecond}
	case ev.Cleared() > 0:
		return tone{freq: 440 + 110*float64(ev.Cleared()), duration: 150 * time.Millisecond}
	default:
		return tone{freq: 220, duration: 40 * time.Millisecond}
	}
}

// Sound plays short tones for lock events. It is a no-op until Init
// succeeds.
type Sound struct {
	mu          sync.Mutex
	initialized bool
}

func NewSound() *Sound {
	return &Sound{}
}

// Init opens the audio device.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Close releases the audio device.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Close()
	s.initialized = false
}

func (s *Sound) Execute(frame *loop.Frame) {
	for _, ev := range frame.Events {
		s.play(toneFor(ev))
	}
}

func (s *Sound) play(t tone) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return
	}
	quiet := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(t.duration), sine),
		Base:     2,
		Volume:   -3,
	}
	speaker.Play(quiet)
}

package termview

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeFreq     = 880
	chimeDuration = 50 * time.Millisecond
)

var sampleRate = beep.SampleRate(44100)

// chime plays a short tone when a snack is eaten. Without an audio device it stays silent.
type chime struct {
	enabled bool
}

func newChime() *chime {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, game can run without sound
		log.Printf("Audio initialization failed: %v", err)
		return &chime{}
	}
	return &chime{enabled: true}
}

func (c *chime) Play() {
	if c == nil || !c.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, chimeFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(chimeDuration), sine))
}

// Package audio plays the optional unlock chime.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// chime is a sine tone with a linear fade out over its whole length.
type chime struct {
	freq     float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

// NewChime creates a decaying sine streamer.
func NewChime(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &chime{freq: freq, total: rate.N(duration), rate: rate}
}

func (c *chime) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}
		vol := float64(c.total-c.position) / float64(c.total)
		val := 0.5 * vol * math.Sin(2*math.Pi*c.phase)
		samples[i][0] = val
		samples[i][1] = val

		c.phase += c.freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *chime) Err() error { return nil }

// Player owns the speaker. A nil Player is silent.
type Player struct {
	mixer    *beep.Mixer
	freq     float64
	duration time.Duration
}

// NewPlayer initializes the speaker. It returns nil without error when
// enabled is false.
func NewPlayer(enabled bool, freq float64, duration time.Duration) (*Player, error) {
	if !enabled {
		return nil, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &Player{mixer: &beep.Mixer{}, freq: freq, duration: duration}
	speaker.Play(p.mixer)
	return p, nil
}

// PlayUnlock queues the chime. Safe to call on a nil Player.
func (p *Player) PlayUnlock() {
	if p == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(NewChime(p.freq, p.duration, sampleRate))
	speaker.Unlock()
	slog.Debug("unlock chime queued")
}

// Close stops playback.
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}

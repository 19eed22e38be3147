package output

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/metro/config"
	"github.com/robmorgan/metro/rhythm"
)

// lowGain is the click volume for weak accents relative to strong ones.
const lowGain = 0.5

// ClickSink synthesizes a short sine click for each audible pulse.
type ClickSink struct {
	sampleRate beep.SampleRate
	high       float64
	low        float64
	length     time.Duration
	play       func(s ...beep.Streamer)
}

// NewClickSink opens the speaker and returns a sink playing through it.
func NewClickSink(cfg config.AudioConfig) (*ClickSink, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return newClickSink(cfg, speaker.Play), nil
}

func newClickSink(cfg config.AudioConfig, play func(s ...beep.Streamer)) *ClickSink {
	return &ClickSink{
		sampleRate: beep.SampleRate(cfg.SampleRate),
		high:       cfg.HighFrequency,
		low:        cfg.LowFrequency,
		length:     cfg.Click,
		play:       play,
	}
}

func (c *ClickSink) Name() string {
	return "audio"
}

func (c *ClickSink) Pulse(p rhythm.Pulse) error {
	if s := c.Click(p.Accent); s != nil {
		c.play(s)
	}
	return nil
}

// Click returns the streamer for one click, or nil for Off. High accents are louder and higher pitched.
func (c *ClickSink) Click(a rhythm.Accent) beep.Streamer {
	var freq, gain float64
	switch a {
	case rhythm.High:
		freq, gain = c.high, 1
	case rhythm.Low:
		freq, gain = c.low, lowGain
	default:
		return nil
	}

	total := c.sampleRate.N(c.length)
	step := 2 * math.Pi * freq / float64(c.sampleRate)
	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			// linear fade so the click ends without a pop
			env := gain * (1 - float64(pos)/float64(total))
			v := env * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	}))
}

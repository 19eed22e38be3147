package ui

import "github.com/robmorgan/metro/rhythm"

// PulseSink forwards pulses to the UI. It keeps only the latest undelivered pulse.
type PulseSink struct {
	pulses chan rhythm.Pulse
}

func NewPulseSink() *PulseSink {
	return &PulseSink{pulses: make(chan rhythm.Pulse, 1)}
}

func (s *PulseSink) Name() string {
	return "ui"
}

func (s *PulseSink) Pulse(p rhythm.Pulse) error {
	select {
	case s.pulses <- p:
	default:
		// replace the stale pulse
		select {
		case <-s.pulses:
		default:
		}
		select {
		case s.pulses <- p:
		default:
		}
	}
	return nil
}

// Pulses is the channel the model reads from.
func (s *PulseSink) Pulses() <-chan rhythm.Pulse {
	return s.pulses
}

package effect

import (
	"time"

	"github.com/fogleman/ease"
	"github.com/robmorgan/metro/engine/scale"
)

// Flash is a decaying envelope started by a pulse. Level returns the peak when the flash is triggered and eases
// down to zero over Decay.
type Flash struct {
	// Decay is how long the flash takes to fade out.
	Decay time.Duration

	// Curve shapes the fade. Nil means ease.OutCubic.
	Curve ease.Function

	peak    float64
	started time.Time
}

// NewFlash creates a Flash which fades out over decay.
func NewFlash(decay time.Duration) *Flash {
	return &Flash{
		Decay: decay,
		Curve: ease.OutCubic,
	}
}

// Trigger restarts the flash at now with the given peak level in [0,1].
func (f *Flash) Trigger(now time.Time, peak float64) {
	f.peak = scale.Clamp(peak, 0, 1)
	f.started = now
}

// Level returns the envelope value at now.
func (f *Flash) Level(now time.Time) float64 {
	if f.peak == 0 || f.started.IsZero() || f.Decay <= 0 {
		return 0
	}

	elapsed := now.Sub(f.started)
	if elapsed < 0 {
		return f.peak
	}
	if elapsed >= f.Decay {
		return 0
	}

	curve := f.Curve
	if curve == nil {
		curve = ease.OutCubic
	}
	progress := float64(elapsed) / float64(f.Decay)
	return f.peak * (1 - curve(progress))
}

// Active reports whether the flash is still fading at now.
func (f *Flash) Active(now time.Time) bool {
	return f.Level(now) > 0
}

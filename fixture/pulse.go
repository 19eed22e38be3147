package fixture

import (
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/metro/effect"
	"github.com/robmorgan/metro/rhythm"
)

// LowLevel is the flash peak for weak accents.
const LowLevel = 0.45

// PulseLight flashes every patched fixture on each audible pulse: full level in the high colour for strong
// accents, a dimmer flash in the low colour for weak ones. Off subdivisions leave the light alone.
type PulseLight struct {
	mu      sync.Mutex
	manager *StateManager
	flash   *effect.Flash
	high    colorful.Color
	low     colorful.Color
	color   colorful.Color
}

// NewPulseLight creates a PulseLight. highHex and lowHex are "#RRGGBB" colours.
func NewPulseLight(manager *StateManager, decay time.Duration, highHex, lowHex string) (*PulseLight, error) {
	high, err := colorful.Hex(highHex)
	if err != nil {
		return nil, err
	}
	low, err := colorful.Hex(lowHex)
	if err != nil {
		return nil, err
	}

	return &PulseLight{
		manager: manager,
		flash:   effect.NewFlash(decay),
		high:    high,
		low:     low,
		color:   high,
	}, nil
}

func (l *PulseLight) Name() string {
	return "dmx"
}

// Pulse starts a flash for p.
func (l *PulseLight) Pulse(p rhythm.Pulse) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch p.Accent {
	case rhythm.High:
		l.color = l.high
		l.flash.Trigger(p.At, 1)
	case rhythm.Low:
		l.color = l.low
		l.flash.Trigger(p.At, LowLevel)
	}
	return nil
}

// Update renders the flash level at now into the DMX state.
func (l *PulseLight) Update(now time.Time) error {
	l.mu.Lock()
	level, color := l.flash.Level(now), l.color
	l.mu.Unlock()

	return l.manager.Apply(func(f *Fixture) {
		f.SetColor(color)
		f.SetIntensity(level)
	})
}

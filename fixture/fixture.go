package fixture

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/metro/engine/scale"
	"github.com/robmorgan/metro/profile"
)

// Fixture is a patched light. Values are kept as unit floats and converted to DMX levels on render.
type Fixture struct {
	Name     string
	Universe int

	// The DMX starting address
	Address int

	Profile profile.Profile

	intensity   float64
	color       colorful.Color
	needsUpdate bool
}

// NewFixture creates a dark fixture at address on universe.
func NewFixture(name string, universe, address int, p profile.Profile) *Fixture {
	return &Fixture{
		Name:        name,
		Universe:    universe,
		Address:     address,
		Profile:     p,
		color:       colorful.Color{R: 1, G: 1, B: 1},
		needsUpdate: true,
	}
}

func (f *Fixture) SetIntensity(v float64) {
	v = scale.Clamp(v, 0, 1)
	if v != f.intensity {
		f.intensity = v
		f.needsUpdate = true
	}
}

func (f *Fixture) GetIntensity() float64 {
	return f.intensity
}

func (f *Fixture) SetColor(c colorful.Color) {
	c = c.Clamped()
	if c != f.color {
		f.color = c
		f.needsUpdate = true
	}
}

func (f *Fixture) GetColor() colorful.Color {
	return f.color
}

// NeedsUpdate reports whether the fixture changed since it was last rendered.
func (f *Fixture) NeedsUpdate() bool {
	return f.needsUpdate
}

// HasUpdated marks the fixture as rendered.
func (f *Fixture) HasUpdated() {
	f.needsUpdate = false
}

// operations returns the channel writes for the fixture's current values.
func (f *Fixture) operations() []dmxOperation {
	ops := make([]dmxOperation, 0, 4)
	write := func(channelType string, value byte) {
		if offset, found := f.Profile.Offset(channelType); found {
			ops = append(ops, dmxOperation{
				universe: f.Universe,
				channel:  f.Address + offset - 1,
				value:    int(value),
			})
		}
	}

	write(profile.ChannelTypeIntensity, scale.ToByte(f.intensity))
	if f.Profile.HasColor() {
		r, g, b := f.color.RGB255()
		write(profile.ChannelTypeRed, r)
		write(profile.ChannelTypeGreen, g)
		write(profile.ChannelTypeBlue, b)
	}
	return ops
}

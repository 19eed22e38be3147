package fixture

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/metro/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rgbProfile = profile.Profile{
	Name: "rgb",
	Channels: map[string]int{
		profile.ChannelTypeIntensity: 1,
		profile.ChannelTypeRed:       2,
		profile.ChannelTypeGreen:     3,
		profile.ChannelTypeBlue:      4,
	},
}

func TestNewFixture(t *testing.T) {
	t.Parallel()

	fix := NewFixture("par", 1, 138, rgbProfile)

	// set some values
	fix.SetIntensity(0.5)
	fix.SetColor(colorful.Color{R: 1, G: 0, B: 0})

	assert.Equal(t, 0.5, fix.GetIntensity())
	assert.Equal(t, colorful.Color{R: 1, G: 0, B: 0}, fix.GetColor())

	assert.Equal(t, []dmxOperation{
		{universe: 1, channel: 138, value: 128},
		{universe: 1, channel: 139, value: 255},
		{universe: 1, channel: 140, value: 0},
		{universe: 1, channel: 141, value: 0},
	}, fix.operations())
}

func TestNeedsUpdate(t *testing.T) {
	t.Parallel()

	fix := NewFixture("dimmer", 1, 1, profile.Profile{Channels: map[string]int{profile.ChannelTypeIntensity: 1}})

	// set a value
	fix.SetIntensity(1.0)
	require.True(t, fix.NeedsUpdate())

	// reset fixture
	fix.HasUpdated()
	require.False(t, fix.NeedsUpdate())

	// same value again is not a change
	fix.SetIntensity(1.0)
	require.False(t, fix.NeedsUpdate())
	require.Len(t, fix.operations(), 1)
}

func TestDMXStateRejectsBadChannel(t *testing.T) {
	t.Parallel()

	var s DMXState
	require.NoError(t, s.set(dmxOperation{universe: 1, channel: 512, value: 9}))
	require.Error(t, s.set(dmxOperation{universe: 1, channel: 513, value: 9}))
	require.Error(t, s.set(dmxOperation{universe: 1, channel: 0, value: 9}))
	assert.Equal(t, 9, s.getValue(1, 512))
	assert.Equal(t, 0, s.getValue(2, 1))
}

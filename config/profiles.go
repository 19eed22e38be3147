package config

import "github.com/robmorgan/metro/profile"

func initializeFixtureProfiles() map[string]profile.Profile {
	out := map[string]profile.Profile{
		"generic-dimmer": {
			Name: "Generic Dimmer",
			Channels: map[string]int{
				profile.ChannelTypeIntensity: 1,
			},
		},
		"generic-rgb": {
			Name: "Generic RGB PAR",
			Channels: map[string]int{
				profile.ChannelTypeIntensity: 1,
				profile.ChannelTypeRed:       2,
				profile.ChannelTypeGreen:     3,
				profile.ChannelTypeBlue:      4,
			},
		},
		"shehds-par": {
			Name: "Shehds LED Flat PAR 12x3W RGBW",
			Channels: map[string]int{
				profile.ChannelTypeIntensity:      1,
				profile.ChannelTypeRed:            2,
				profile.ChannelTypeGreen:          3,
				profile.ChannelTypeBlue:           4,
				profile.ChannelTypeWhite:          5,
				profile.ChannelTypeStrobe:         6,
				profile.ChannelTypeFunctionSelect: 7,
				profile.ChannelTypeUnknown:        8,
			},
		},
	}

	return out
}

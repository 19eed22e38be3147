package profile

const (
	ChannelTypeIntensity = "channel:type:intensity"
	ChannelTypeStrobe    = "channel:type:strobe"

	ChannelTypeRed   = "channel:type:red"
	ChannelTypeGreen = "channel:type:green"
	ChannelTypeBlue  = "channel:type:blue"
	ChannelTypeWhite = "channel:type:white"

	ChannelTypeFunctionSelect = "channel:type:function:select"
	ChannelTypeUnknown        = "channel:type:unknown"
)

// Profile holds info for a fixture profile including the channel mapping. Channels maps a channel type to its
// 1-based offset from the fixture's start address.
type Profile struct {
	Name string

	// The fixture channels
	Channels map[string]int
}

// Offset returns the channel offset for channelType.
func (p Profile) Offset(channelType string) (int, bool) {
	offset, found := p.Channels[channelType]
	return offset, found
}

// HasColor reports whether the profile can mix red, green and blue.
func (p Profile) HasColor() bool {
	_, r := p.Channels[ChannelTypeRed]
	_, g := p.Channels[ChannelTypeGreen]
	_, b := p.Channels[ChannelTypeBlue]
	return r && g && b
}

// Footprint returns the number of DMX channels the profile occupies.
func (p Profile) Footprint() int {
	max := 0
	for _, offset := range p.Channels {
		if offset > max {
			max = offset
		}
	}
	return max
}

package config

// PatchedFixture stores config info for a dmx fixture that flashes on every pulse
type PatchedFixture struct {
	Name     string `yaml:"name"`
	Address  int    `yaml:"address"`
	Universe int    `yaml:"universe"`
	Profile  string `yaml:"profile"`
}

func PatchFixtures() []PatchedFixture {
	return []PatchedFixture{
		// practice room par, first address on the universe
		{
			Name:     "click_par",
			Address:  1,
			Universe: 1,
			Profile:  "shehds-par",
		},
	}
}

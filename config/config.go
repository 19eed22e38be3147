package config

import (
	"os"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/robmorgan/metro/logger"
	"github.com/robmorgan/metro/profile"
	"github.com/robmorgan/metro/rhythm"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no config file is given. It is fine for it not to exist.
const DefaultConfigPath = "~/.metro/config.yaml"

// MetroConfig represents options that configure the global behavior of the program
type MetroConfig struct {
	// Project logger
	Logger *logrus.Logger `yaml:"-"`

	LogLevel string `yaml:"log_level"`

	// Tempo used until a saved session is restored
	Tempo int `yaml:"bpm"`

	// DefaultSignature is selected on a fresh session. Falls back to the first signature.
	DefaultSignature string `yaml:"signature"`

	// Signatures lists the selectable time signatures in order
	Signatures []SignatureConfig `yaml:"signatures"`

	// StatePath is where the session is saved after every command
	StatePath string `yaml:"state_path"`

	OSC   OSCConfig   `yaml:"osc"`
	DMX   DMXConfig   `yaml:"dmx"`
	Audio AudioConfig `yaml:"audio"`

	// The fixture profiles
	FixtureProfiles map[string]profile.Profile `yaml:"-"`
}

// OSCConfig configures the OSC pulse output.
type OSCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Prefix  string `yaml:"prefix"`
}

// DMXConfig configures the light that flashes on every pulse.
type DMXConfig struct {
	Enabled    bool          `yaml:"enabled"`
	OLAAddress string        `yaml:"ola_address"`
	Tick       time.Duration `yaml:"tick"`
	Decay      time.Duration `yaml:"decay"`
	HighColor  string        `yaml:"high_color"`
	LowColor   string        `yaml:"low_color"`

	// PatchedFixtures stores all of the patched fixtures
	PatchedFixtures []PatchedFixture `yaml:"fixtures"`
}

// AudioConfig configures the synthesized click.
type AudioConfig struct {
	Enabled       bool          `yaml:"enabled"`
	SampleRate    int           `yaml:"sample_rate"`
	HighFrequency float64       `yaml:"high_frequency"`
	LowFrequency  float64       `yaml:"low_frequency"`
	Click         time.Duration `yaml:"click"`
}

// NewMetroConfig creates a new MetroConfig object with reasonable defaults for real usage
func NewMetroConfig() (MetroConfig, error) {
	return MetroConfig{
		Logger:           logger.GetProjectLogger(),
		LogLevel:         "info",
		Tempo:            rhythm.DefaultTempo,
		DefaultSignature: "4/4",
		Signatures:       defaultSignatures(),
		StatePath:        "~/.metro/state.yaml",
		OSC: OSCConfig{
			Host:   "127.0.0.1",
			Port:   9000,
			Prefix: "/metro",
		},
		DMX: DMXConfig{
			OLAAddress:      "localhost:9010",
			Tick:            25 * time.Millisecond,
			Decay:           120 * time.Millisecond,
			HighColor:       "#FF3B30",
			LowColor:        "#0A84FF",
			PatchedFixtures: PatchFixtures(),
		},
		Audio: AudioConfig{
			SampleRate:    44100,
			HighFrequency: 1760,
			LowFrequency:  880,
			Click:         30 * time.Millisecond,
		},
		FixtureProfiles: initializeFixtureProfiles(),
	}, nil
}

// LoadMetroConfig reads path over the defaults. An empty path means DefaultConfigPath, which may be missing; an
// explicit path must exist.
func LoadMetroConfig(path string) (MetroConfig, error) {
	cfg, err := NewMetroConfig()
	if err != nil {
		return cfg, err
	}

	optional := path == ""
	if optional {
		path = DefaultConfigPath
	}
	path, err = homedir.Expand(path)
	if err != nil {
		return cfg, errors.WithStackTrace(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.WithStackTrace(err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.WithStackTrace(err)
	}
	if len(cfg.Signatures) == 0 {
		cfg.Signatures = defaultSignatures()
	}

	cfg.Logger.WithFields(logrus.Fields{"path": path, "signatures": len(cfg.Signatures)}).Debug("config loaded")
	return cfg, nil
}

// BuildRegistry registers the configured signatures in order.
func (c MetroConfig) BuildRegistry() (*rhythm.Registry, error) {
	r := rhythm.NewRegistry()
	for _, s := range c.Signatures {
		if err := r.Register(s.ID, s.Groups, s.Divisions); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// GetProfile returns the fixture profile called name.
func (c MetroConfig) GetProfile(name string) (profile.Profile, bool) {
	p, found := c.FixtureProfiles[name]
	return p, found
}

package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/yamato/game"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/oerror"
	"github.com/oomph-ac/yamato/sphere"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings contains everything that can be configured in a settings file.
type Settings struct {
	Simulation Simulation        `toml:"simulation" yaml:"simulation"`
	Controller locomotion.Config `toml:"controller" yaml:"controller"`
	Sphere     sphere.Config     `toml:"sphere" yaml:"sphere"`
	Logging    Logging           `toml:"logging" yaml:"logging"`
}

// Simulation holds the timing of the simulation loop.
type Simulation struct {
	// FixedStep is the duration of a physics step, in seconds.
	FixedStep float32 `toml:"fixed_step" yaml:"fixed_step" comment:"Duration of a physics step in seconds."`
	// FrameRate is the number of frames sampled per second.
	FrameRate int `toml:"frame_rate" yaml:"frame_rate" comment:"Frames sampled per second."`
	// Gravity is the vertical gravity acceleration, in m/s².
	Gravity float32 `toml:"gravity" yaml:"gravity"`
}

// Logging configures the logger.
type Logging struct {
	Level string `toml:"level" yaml:"level" comment:"One of panic, fatal, error, warn, info, debug or trace."`
	// Debug enables per-step trace logs of controllers. They are only visible at the debug level.
	Debug bool `toml:"debug" yaml:"debug"`
}

// LogLevel parses the configured level, falling back to info if it is empty.
func (l Logging) LogLevel() (logrus.Level, error) {
	if l.Level == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return logrus.InfoLevel, oerror.New("invalid log level: %w", err)
	}
	return lvl, nil
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Simulation: Simulation{
			FixedStep: 0.02,
			FrameRate: 60,
			Gravity:   game.DefaultGravity,
		},
		Controller: locomotion.DefaultConfig(),
		Sphere:     sphere.DefaultConfig(),
		Logging:    Logging{Level: "info"},
	}
}

// Validate returns a copy of the settings with every value in its range.
func (s Settings) Validate() Settings {
	if s.Simulation.FixedStep <= 0 {
		s.Simulation.FixedStep = DefaultSettings().Simulation.FixedStep
	}
	if s.Simulation.FrameRate <= 0 {
		s.Simulation.FrameRate = DefaultSettings().Simulation.FrameRate
	}
	s.Controller = s.Controller.Validate()
	s.Sphere = s.Sphere.Validate()
	return s
}

// Marshal encodes s as YAML if path has a .yaml or .yml extension, and as TOML otherwise.
func Marshal(path string, s Settings) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(s)
	}
	return toml.Marshal(s)
}

// Unmarshal decodes settings from data in the format chosen by the extension of path. The result is
// validated.
func Unmarshal(path string, data []byte) (Settings, error) {
	s := DefaultSettings()
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, err
	}
	return s.Validate(), nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return oerror.New("settings file already exists")
	}
	data, err := Marshal(path, DefaultSettings())
	if err != nil {
		return oerror.New("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.New("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.New("error reading settings: %w", err)
	}
	s, err := Unmarshal(path, data)
	if err != nil {
		return Settings{}, oerror.New("error decoding settings: %w", err)
	}
	return s, nil
}

// LoadOrCreate loads the settings at path, writing the default settings there first if the file
// does not exist yet.
func LoadOrCreate(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
	}
	return Load(path)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

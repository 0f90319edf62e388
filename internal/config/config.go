package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSize        = 16
	DefaultCoupling    = 1.0
	DefaultStepSize    = 0.05
	DefaultDuration    = 20.0
	DefaultArrangement = "all_to_all"
	DefaultIncrement   = 0.1
	DefaultLockLevel   = 0.9
)

type Config struct {
	Size        int             `yaml:"size"`
	Coupling    float64         `yaml:"coupling"`
	Arrangement string          `yaml:"arrangement"`
	MeanField   bool            `yaml:"mean_field"`
	Normalize   bool            `yaml:"normalize"`
	NoiseLevel  float64         `yaml:"noise_level"`
	StepSize    float64         `yaml:"step_size"`
	Duration    float64         `yaml:"duration"`
	Seed        int64           `yaml:"seed"`
	Increment   float64         `yaml:"seed_increment"`
	SampleEvery int             `yaml:"sample_every"`
	LockLevel   float64         `yaml:"lock_level"`
	InitState   InitStateConfig `yaml:"init_state"`
}

// InitStateConfig supplies explicit phases and frequencies. When both are
// set the network is built from them instead of from noise.
type InitStateConfig struct {
	Phases      []float64 `yaml:"phases,omitempty"`
	Frequencies []float64 `yaml:"frequencies,omitempty"`
}

func (s InitStateConfig) Explicit() bool {
	return len(s.Phases) > 0 || len(s.Frequencies) > 0
}

func DefaultConfig() *Config {
	return &Config{
		Size:        DefaultSize,
		Coupling:    DefaultCoupling,
		Arrangement: DefaultArrangement,
		StepSize:    DefaultStepSize,
		Duration:    DefaultDuration,
		Increment:   DefaultIncrement,
		SampleEvery: 1,
		LockLevel:   DefaultLockLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the network constructors do not.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample_every must be non-negative, got %d", c.SampleEvery)
	}
	if c.InitState.Explicit() && len(c.InitState.Phases) != len(c.InitState.Frequencies) {
		return fmt.Errorf("init_state: %d phases for %d frequencies",
			len(c.InitState.Phases), len(c.InitState.Frequencies))
	}
	return nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatlab/internal/plate"
)

const (
	// Reference problem size and tolerance.
	DefaultRows    = 1000
	DefaultCols    = 1000
	DefaultEpsilon = 0.001
)

type Config struct {
	Rows      int            `yaml:"rows"`
	Cols      int            `yaml:"cols"`
	Epsilon   float64        `yaml:"epsilon"`
	MaxSweeps int            `yaml:"max_sweeps"`
	Workers   int            `yaml:"workers"`
	Boundary  plate.Boundary `yaml:"boundary"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		Epsilon:  DefaultEpsilon,
		Boundary: plate.DefaultBoundary(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate rejects configurations the solver would refuse anyway, so
// the failure happens before any allocation.
func (c *Config) Validate() error {
	if c.Rows < 3 || c.Cols < 3 {
		return fmt.Errorf("config: grid %dx%d must be at least 3x3", c.Rows, c.Cols)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("config: epsilon %g must be non-negative", c.Epsilon)
	}
	if c.MaxSweeps < 0 {
		return fmt.Errorf("config: max_sweeps %d must be non-negative", c.MaxSweeps)
	}
	return nil
}

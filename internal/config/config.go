// Package config loads the YAML run description for a training job.
//
// Example file:
//
//	topology:
//	  input: 2
//	  hidden1: 2
//	  hidden2: 2
//	  output: 1
//	training:
//	  learning_rate: 0.3
//	  error_threshold: 0.001
//	  max_iterations: 100000
//	  num_cases: 4
//	  seed: 7
//	  init:
//	    min: -1
//	    max: 1
//	data:
//	  cases: xor.txt
//	  weights_out: xor.mlpw
//
// Relative paths in the data section are resolved against the directory of
// the config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/mlp/internal/mlp"
)

// ErrInvalidConfig is returned for any configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full run description.
type Config struct {
	Topology mlp.Topology `yaml:"topology"`
	Training Training     `yaml:"training"`
	Data     Data         `yaml:"data"`

	dir string // directory of the file the config was loaded from
}

// Training holds the hyperparameters.
type Training struct {
	LearningRate   float64 `yaml:"learning_rate"`
	ErrorThreshold float64 `yaml:"error_threshold"`
	MaxIterations  int     `yaml:"max_iterations"`
	NumCases       int     `yaml:"num_cases"`
	Seed           int64   `yaml:"seed"`
	Init           Range   `yaml:"init"`
}

// Range is the uniform interval for random weight initialization.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Data names the files a run reads and writes.
type Data struct {
	Cases      string `yaml:"cases"`
	WeightsIn  string `yaml:"weights_in"`
	WeightsOut string `yaml:"weights_out"`
	Report     string `yaml:"report"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: config path comes from the command line
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes and validates YAML. Unknown keys are rejected.
func Parse(raw []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field the trainer depends on.
func (c *Config) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Hyperparameters().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Training.NumCases <= 0 {
		return fmt.Errorf("%w: training.num_cases must be positive, got %d", ErrInvalidConfig, c.Training.NumCases)
	}
	return nil
}

// Hyperparameters converts the training section.
func (c *Config) Hyperparameters() mlp.Hyperparameters {
	return mlp.Hyperparameters{
		LearningRate:   c.Training.LearningRate,
		ErrorThreshold: c.Training.ErrorThreshold,
		MaxIterations:  c.Training.MaxIterations,
		MinRand:        c.Training.Init.Min,
		MaxRand:        c.Training.Init.Max,
		Seed:           c.Training.Seed,
	}
}

// Resolve returns p relative to the config file's directory. Absolute and
// empty paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

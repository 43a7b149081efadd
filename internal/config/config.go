package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/particles/internal/core/observability/log"
	"github.com/zeusync/particles/internal/core/scenario"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one smoke-test run. Zero Agents, Evaders or CommDim fall
// back to the scenario's own defaults.
type Config struct {
	Scenario string `json:"scenario" yaml:"scenario"`
	Agents   int    `json:"agents,omitempty" yaml:"agents,omitempty"`
	Evaders  int    `json:"evaders,omitempty" yaml:"evaders,omitempty"`
	CommDim  int    `json:"comm_dim,omitempty" yaml:"comm_dim,omitempty"`
	Seed     uint64 `json:"seed" yaml:"seed"`
	Episodes int    `json:"episodes" yaml:"episodes"`
	Steps    int    `json:"steps" yaml:"steps"`
	Workers  int    `json:"workers,omitempty" yaml:"workers,omitempty"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

func Default() *Config {
	return &Config{
		Scenario: scenario.PursuitEvasionName,
		Seed:     1,
		Episodes: 1,
		Steps:    25,
		LogLevel: "info",
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes YAML on top of Default and validates the result. Unknown
// keys are rejected. An empty document yields the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(scenario.Names(), c.Scenario) {
		errs = append(errs, fmt.Errorf("scenario %q is not registered", c.Scenario))
	}
	if c.Agents < 0 {
		errs = append(errs, fmt.Errorf("agents must be >= 0, got %d", c.Agents))
	}
	if c.Evaders < 0 {
		errs = append(errs, fmt.Errorf("evaders must be >= 0, got %d", c.Evaders))
	}
	if c.CommDim < 0 {
		errs = append(errs, fmt.Errorf("comm_dim must be >= 0, got %d", c.CommDim))
	}
	if c.Episodes < 1 {
		errs = append(errs, fmt.Errorf("episodes must be >= 1, got %d", c.Episodes))
	}
	if c.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must be >= 0, got %d", c.Steps))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Level returns the parsed log level; Validate has already checked it.
func (c *Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// ScenarioOptions translates the population settings into scenario options.
func (c *Config) ScenarioOptions() []scenario.Option {
	var opts []scenario.Option
	if c.Agents > 0 {
		opts = append(opts, scenario.WithAgents(c.Agents))
	}
	if c.Evaders > 0 {
		opts = append(opts, scenario.WithEvaders(c.Evaders))
	}
	if c.CommDim > 0 {
		opts = append(opts, scenario.WithCommDim(c.CommDim))
	}
	return opts
}

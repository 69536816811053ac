// Package app wires datasets, policies and storage into runnable
// experiments: it loads experiment files, replays a policy over a dataset
// trial by trial, and produces run results.
package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy names accepted in experiment files.
const (
	PolicyOracle = "oracle"
	PolicyUCB1   = "ucb1"
)

// ExperimentConfig describes one experiment: which dataset to replay, what
// the observation economics are, and which policy plays.
type ExperimentConfig struct {
	Name string `yaml:"name"`

	// Dataset CSV paths. Contexts is N×D, Rewards is N×numArms with empty
	// cells for never-realized arm/trial pairs.
	ContextsFile string `yaml:"contexts"`
	RewardsFile  string `yaml:"rewards"`

	// Observation economics.
	Costs  []float64 `yaml:"costs"`
	Beta   float64   `yaml:"beta"`
	Budget int       `yaml:"budget"`

	Policy   string  `yaml:"policy"`
	Alpha    float64 `yaml:"alpha"`    // ucb1 exploration factor
	Fallback bool    `yaml:"fallback"` // oracle arm-not-in-pool behavior
}

// LoadConfig reads and validates an experiment file.
func LoadConfig(path string) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment file: %w", err)
	}
	var cfg ExperimentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse experiment file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for internal consistency. Dataset-dependent
// checks (cost vector length vs dimensionality) happen at run time.
func (c *ExperimentConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("experiment: name is required")
	}
	if c.ContextsFile == "" || c.RewardsFile == "" {
		return fmt.Errorf("experiment %q: contexts and rewards files are required", c.Name)
	}
	if c.Budget < 0 {
		return fmt.Errorf("experiment %q: negative observation budget", c.Name)
	}
	for i, cost := range c.Costs {
		if cost < 0 {
			return fmt.Errorf("experiment %q: negative cost for feature %d", c.Name, i)
		}
	}
	switch c.Policy {
	case PolicyOracle, PolicyUCB1:
	case "":
		return fmt.Errorf("experiment %q: policy is required", c.Name)
	default:
		return fmt.Errorf("experiment %q: unknown policy %q", c.Name, c.Policy)
	}
	return nil
}

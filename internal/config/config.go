// Package config holds run configuration: population size, institution
// catalog, value distributions, and network parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAgents          = 200
	DefaultNetworkDensity  = 0.05
	DefaultAwarenessRadius = 0.3
	DefaultReallocFreq     = 4
	DefaultTicks           = 52
	DefaultSeed            = 42
)

// ValueSetting is the (mean, spread) of one value dimension's clipped
// normal distribution.
type ValueSetting struct {
	Mean   float64 `yaml:"mean"`
	Spread float64 `yaml:"spread"`
}

// InstitutionSpec describes one institution to create at startup.
type InstitutionSpec struct {
	Name          string             `yaml:"name"`
	Type          string             `yaml:"type"`
	Capacity      int                `yaml:"capacity"`
	Culture       map[string]float64 `yaml:"culture"`
	CostPerHour   float64            `yaml:"cost_per_hour"`
	IncomePerHour float64            `yaml:"income_per_hour"`
}

// Config is the full run configuration.
type Config struct {
	Agents                int                     `yaml:"agents"`
	NetworkDensity        float64                 `yaml:"network_density"`
	AwarenessRadius       float64                 `yaml:"awareness_radius"`
	ReallocationFrequency int                     `yaml:"reallocation_frequency"`
	Layout                string                  `yaml:"layout"` // "uniform" or "clustered"
	Seed                  int64                   `yaml:"seed"`
	Ticks                 int                     `yaml:"ticks"`
	Values                map[string]ValueSetting `yaml:"values"`
	Institutions          []InstitutionSpec       `yaml:"institutions"`
}

// DefaultConfig returns the small-town baseline scenario.
func DefaultConfig() *Config {
	return &Config{
		Agents:                DefaultAgents,
		NetworkDensity:        DefaultNetworkDensity,
		AwarenessRadius:       DefaultAwarenessRadius,
		ReallocationFrequency: DefaultReallocFreq,
		Layout:                "uniform",
		Seed:                  DefaultSeed,
		Ticks:                 DefaultTicks,
		Values: map[string]ValueSetting{
			"community": {Mean: 0.5, Spread: 0.2},
			"tradition": {Mean: 0.5, Spread: 0.2},
			"wealth":    {Mean: 0.5, Spread: 0.2},
		},
		Institutions: []InstitutionSpec{
			{
				Name: "Mill", Type: "work", Capacity: 120,
				Culture:       map[string]float64{"status": 0.5, "wealth": 0.8},
				IncomePerHour: 20,
			},
			{
				Name: "First Church", Type: "church", Capacity: 80,
				Culture:     map[string]float64{"community": 1.0, "tradition": 0.8},
				CostPerHour: 2,
			},
			{
				Name: "Rotary Club", Type: "club", Capacity: 40,
				Culture:     map[string]float64{"community": 0.6, "status": 0.5},
				CostPerHour: 5,
			},
			{
				Name: "Night School", Type: "education", Capacity: 60,
				Culture:     map[string]float64{"growth": 1.0, "status": 0.4},
				CostPerHour: 8,
			},
			{
				Name: "Town Hall Caucus", Type: "political_org", Capacity: 50,
				Culture:     map[string]float64{"civic": 1.0, "community": 0.3},
				CostPerHour: 1,
			},
			{
				Name: "Rec Center", Type: "community_center", Capacity: 100,
				Culture:     map[string]float64{"community": 0.7, "leisure": 0.6},
				CostPerHour: 3,
			},
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

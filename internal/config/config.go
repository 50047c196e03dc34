// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutpostConfig places one garrisoned outpost in the world.
type OutpostConfig struct {
	ID            string  `yaml:"id"`
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Z             float64 `yaml:"z"`
	CaptureRadius float64 `yaml:"capture_radius_m"`
	MinGarrison   int     `yaml:"min_garrison"`
	// Faction initially holding the outpost; defaults to harkonnen.
	Faction string `yaml:"faction,omitempty"`
}

// SimulationConfig is the root configuration for the simulator harness.
// Combat constants are deliberately NOT configurable: they are fixed in
// code for behavioral parity with the live servers.
type SimulationConfig struct {
	ClusterID string          `yaml:"cluster_id"`
	Outposts  []OutpostConfig `yaml:"outposts"`
	// Scenario selects a built-in script by name; ScenarioFile loads a
	// YAML script instead when set.
	Scenario     string `yaml:"scenario,omitempty"`
	ScenarioFile string `yaml:"scenario_file,omitempty"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Outposts) == 0 {
		return nil, fmt.Errorf("no outposts defined in %s", configPath)
	}
	if cfg.ClusterID == "" {
		cfg.ClusterID = "sector-01"
	}
	return &cfg, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level fiscaudit.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Fiscal     FiscalConfig     `yaml:"fiscal"`
	Tolerances TolerancesConfig `yaml:"tolerances"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// BusinessConfig identifies the audited entity.
type BusinessConfig struct {
	Name   string `yaml:"name"`
	TaxID  string `yaml:"tax_id,omitempty"`
	Sector string `yaml:"sector,omitempty"` // COMMERCE, INDUSTRIE, SERVICES...
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// TolerancesConfig carries the engine-wide tolerances.
type TolerancesConfig struct {
	Equilibrium float64 `yaml:"equilibrium"` // currency units
	Mapping     float64 `yaml:"mapping"`     // currency units
}

// ScoringConfig overrides the category weights. Empty means defaults.
type ScoringConfig struct {
	Weights map[string]float64 `yaml:"weights,omitempty"`
}

// Load reads a fiscaudit.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new engagement.
func Default(businessName, sector string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:   businessName,
			Sector: sector,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Tolerances: TolerancesConfig{
			Equilibrium: 0.01,
			Mapping:     1000,
		},
	}
}

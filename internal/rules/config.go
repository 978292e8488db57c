package rules

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fiscasync/fiscaudit/internal/model"
)

// RuleConfig is one per-engagement rule override.
type RuleConfig struct {
	Code             string         `yaml:"code"`
	Enabled          *bool          `yaml:"enabled,omitempty"`
	SeverityOverride string         `yaml:"severity_override,omitempty"`
	Parameters       map[string]any `yaml:"parameters,omitempty"`
}

// Configuration is the rules.yaml shape: a list of overrides applied on top
// of the registered catalogue.
type Configuration struct {
	Rules []RuleConfig `yaml:"rules"`
}

// LoadConfiguration reads a rules.yaml file from disk.
func LoadConfiguration(path string) (*Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule configuration: %w", err)
	}
	defer f.Close()
	return ParseConfiguration(f)
}

// ParseConfiguration reads a rule configuration from a reader.
func ParseConfiguration(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rule configuration: %w", err)
	}
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rule configuration: %w", err)
	}
	return &cfg, nil
}

// Apply applies the overrides to a registry. Referencing an unregistered code
// is a configuration fault and fails the whole apply.
func (c *Configuration) Apply(reg *Registry) error {
	for _, rc := range c.Rules {
		if _, err := reg.Get(rc.Code); err != nil {
			return fmt.Errorf("applying rule configuration: %w", err)
		}
		if rc.Enabled != nil {
			if err := reg.SetEnabled(rc.Code, *rc.Enabled); err != nil {
				return err
			}
		}
		if rc.SeverityOverride != "" {
			if err := reg.SetSeverity(rc.Code, model.Severity(rc.SeverityOverride)); err != nil {
				return fmt.Errorf("applying rule configuration: %w", err)
			}
		}
		if len(rc.Parameters) > 0 {
			if err := reg.MergeParameters(rc.Code, rc.Parameters); err != nil {
				return err
			}
		}
	}
	return nil
}

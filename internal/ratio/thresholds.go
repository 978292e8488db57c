package ratio

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// thresholdFile is the ratios.yaml shape: a map of ratio code to bounds.
type thresholdFile struct {
	Thresholds map[string]Threshold `yaml:"thresholds"`
}

// LoadThresholds reads a ratios.yaml threshold table from disk.
func LoadThresholds(path string) (map[string]Threshold, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ratio thresholds: %w", err)
	}
	defer f.Close()
	return ParseThresholds(f)
}

// ParseThresholds reads a threshold table from a reader.
func ParseThresholds(r io.Reader) (map[string]Threshold, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ratio thresholds: %w", err)
	}
	var file thresholdFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing ratio thresholds: %w", err)
	}
	return file.Thresholds, nil
}

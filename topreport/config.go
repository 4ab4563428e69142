package topreport

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyConfig is returned by LoadConfig for an empty document.
var ErrEmptyConfig = errors.New("empty config")

// Config holds the Filter thresholds.
//
// A row is retained when it is still inside the cumulative budget
// (sum% <= SumMaximum) or is individually expensive (cum% >= CumMinimum).
// The rule is a tuning heuristic, not a property of the report format.
type Config struct {
	SumMaximum float64 `yaml:"sum_maximum"`
	CumMinimum float64 `yaml:"cum_minimum"`
}

// DefaultConfig returns the thresholds used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		SumMaximum: SumMaximum,
		CumMinimum: CumMinimum,
	}
}

// Retain reports whether the Filter keeps row.
func (c Config) Retain(row FunctionProfileData) bool {
	return row.SumPercentage <= c.SumMaximum || row.CumPercentage >= c.CumMinimum
}

// Validate checks that both thresholds are percentages.
func (c Config) Validate() error {
	if err := checkPercentage("sum_maximum", c.SumMaximum); err != nil {
		return err
	}
	return checkPercentage("cum_minimum", c.CumMinimum)
}

func checkPercentage(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("%s must be within [0, 100], got %v", name, v)
	}
	return nil
}

func (c Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<error creating config string: %s>", err)
	}
	return string(b)
}

// LoadConfig parses YAML into a Config. Keys that are absent keep their
// default values.
func LoadConfig(b []byte) (Config, error) {
	if len(b) == 0 {
		return Config{}, ErrEmptyConfig
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile parses the given YAML file into a Config.
func LoadConfigFile(filename string) (Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadConfig(content)
	if err != nil {
		return Config{}, fmt.Errorf("parsing YAML file %s: %w", filename, err)
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// SEDREVIEW_REVIEW_QADATABASE or SEDREVIEW_RUNTIME_CONCURRENCY.
const EnvPrefix = "sedreview"

// Load builds a Config from defaults, an optional YAML file, and environment
// overrides, in that precedence order (flag overrides are the CLI's job).
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	return cfg, nil
}

package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coresick/lifeline/internal/aggregate"
	"github.com/coresick/lifeline/internal/cluster"
	"github.com/coresick/lifeline/internal/model"
)

// Config is the optional engine configuration file. Sections left out keep
// their defaults; the clustering defaults depend on the import context
// category.
type Config struct {
	Clustering  *cluster.Configuration `yaml:"clustering,omitempty"`
	Aggregation *aggregate.Thresholds  `yaml:"aggregation,omitempty"`

	// Palette maps category tags to bubble colors, replacing the built-in
	// palette entirely when present.
	Palette map[string]model.Color `yaml:"palette,omitempty"`
}

// LoadConfig reads an engine config file. An empty path returns an empty
// config (all defaults). Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Clustering != nil {
		if err := cfg.Clustering.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// ClusteringFor resolves the clustering thresholds: the config file section
// when present, otherwise the registered defaults for the context category.
func (c Config) ClusteringFor(category string) cluster.Configuration {
	if c.Clustering != nil {
		return *c.Clustering
	}
	return cluster.DefaultConfiguration(category)
}

// AggregationThresholds resolves the per-tier collapse thresholds.
func (c Config) AggregationThresholds() aggregate.Thresholds {
	if c.Aggregation != nil {
		return *c.Aggregation
	}
	return aggregate.DefaultThresholds()
}

// BubblePalette resolves the category color palette.
func (c Config) BubblePalette() aggregate.Palette {
	if len(c.Palette) == 0 {
		return aggregate.DefaultPalette()
	}
	palette := make(aggregate.Palette, len(c.Palette))
	for category, color := range c.Palette {
		palette[category] = color
	}
	return palette
}

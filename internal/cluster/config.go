package cluster

// Configuration holds the clustering thresholds. All values must be
// positive; Validate reports the first violation.
type Configuration struct {
	// TemporalThresholdMin bounds the elapsed minutes between a proximity
	// cluster's first and last asset.
	TemporalThresholdMin int `yaml:"temporal_threshold_min" json:"temporal_threshold_min"`

	// SpatialThresholdMeters bounds the distance between any two geotagged
	// assets of a proximity cluster.
	SpatialThresholdMeters float64 `yaml:"spatial_threshold_meters" json:"spatial_threshold_meters"`

	// BurstThresholdSec is the maximum gap between consecutive assets of a
	// burst run.
	BurstThresholdSec int `yaml:"burst_threshold_sec" json:"burst_threshold_sec"`

	// MinBurstSize is the smallest run emitted as a burst; shorter runs fall
	// back to proximity clustering.
	MinBurstSize int `yaml:"min_burst_size" json:"min_burst_size"`

	// MaxBurstSize closes a burst and starts a new run when reached.
	MaxBurstSize int `yaml:"max_burst_size" json:"max_burst_size"`
}

// Context categories with registered threshold defaults. Unknown categories
// fall back to CategoryDefault.
const (
	CategoryDefault  = "default"
	CategoryPet      = "pet"
	CategoryBusiness = "business"
)

var categoryDefaults = map[string]Configuration{
	CategoryDefault: {
		TemporalThresholdMin:   60,
		SpatialThresholdMeters: 500,
		BurstThresholdSec:      30,
		MinBurstSize:           3,
		MaxBurstSize:           50,
	},
	// Pet moments are short and local: a walk, a nap, a trick.
	CategoryPet: {
		TemporalThresholdMin:   30,
		SpatialThresholdMeters: 200,
		BurstThresholdSec:      20,
		MinBurstSize:           3,
		MaxBurstSize:           30,
	},
	// Business contexts span venues and whole mornings.
	CategoryBusiness: {
		TemporalThresholdMin:   120,
		SpatialThresholdMeters: 1000,
		BurstThresholdSec:      45,
		MinBurstSize:           4,
		MaxBurstSize:           60,
	},
}

// DefaultConfiguration returns the threshold defaults for a context
// category. Unknown categories get the general defaults.
func DefaultConfiguration(category string) Configuration {
	if cfg, ok := categoryDefaults[category]; ok {
		return cfg
	}
	return categoryDefaults[CategoryDefault]
}

// Validate checks that every threshold is usable.
func (c Configuration) Validate() error {
	switch {
	case c.TemporalThresholdMin <= 0:
		return &ConfigError{Field: "temporal_threshold_min", Reason: "must be positive"}
	case c.SpatialThresholdMeters <= 0:
		return &ConfigError{Field: "spatial_threshold_meters", Reason: "must be positive"}
	case c.BurstThresholdSec <= 0:
		return &ConfigError{Field: "burst_threshold_sec", Reason: "must be positive"}
	case c.MinBurstSize < 2:
		return &ConfigError{Field: "min_burst_size", Reason: "must be at least 2"}
	case c.MaxBurstSize < c.MinBurstSize:
		return &ConfigError{Field: "max_burst_size", Reason: "must be >= min_burst_size"}
	}
	return nil
}

// ConfigError reports an invalid clustering threshold.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid clustering configuration: " + e.Field + " " + e.Reason
}

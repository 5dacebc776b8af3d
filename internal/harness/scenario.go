// Package harness provides conformance tooling for the clustering and
// aggregation pipeline: YAML-described clustering scenarios and golden
// snapshot comparison for render-node output.
//
// Scenarios keep the interesting clustering cases (bursts, threshold
// splits, key-asset choices) in data files that read like the product
// conversation that produced them, instead of burying fixture arithmetic
// in test code.
package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coresick/lifeline/internal/cluster"
	"github.com/coresick/lifeline/internal/model"
)

// Scenario describes one clustering conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files reuse it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config holds the clustering thresholds for the run.
	Config cluster.Configuration `yaml:"config"`

	// Assets lists the captures to cluster.
	Assets []AssetSpec `yaml:"assets"`

	// Expect describes the clusters the run must produce, in order.
	Expect Expectation `yaml:"expect"`
}

// AssetSpec is one capture record in a scenario file.
type AssetSpec struct {
	ID      string    `yaml:"id"`
	TakenAt time.Time `yaml:"taken_at"`

	// Lat/Lon are optional; both must be present for the asset to carry a
	// coordinate.
	Lat *float64 `yaml:"lat,omitempty"`
	Lon *float64 `yaml:"lon,omitempty"`

	ExifComplete bool `yaml:"exif_complete,omitempty"`
}

// Expectation lists the expected clusters, in output order.
type Expectation struct {
	Clusters []ClusterExpect `yaml:"clusters"`
}

// ClusterExpect validates one output cluster. KeyAsset is optional; when
// empty only size and burstiness are checked.
type ClusterExpect struct {
	Size     int    `yaml:"size"`
	IsBurst  bool   `yaml:"is_burst"`
	KeyAsset string `yaml:"key_asset,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Assets) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one asset is required", path)
	}
	if err := s.Config.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario under dir, sorted by path.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	var scenarios []*Scenario
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// BuildAssets converts the scenario's asset specs into media assets.
func (s *Scenario) BuildAssets() []model.MediaAsset {
	assets := make([]model.MediaAsset, 0, len(s.Assets))
	for _, spec := range s.Assets {
		a := model.MediaAsset{
			ID:           spec.ID,
			TakenAt:      spec.TakenAt,
			ExifComplete: spec.ExifComplete,
		}
		if spec.Lat != nil && spec.Lon != nil {
			a.Location = &model.Coordinate{Lat: *spec.Lat, Lon: *spec.Lon}
		}
		assets = append(assets, a)
	}
	return assets
}

// Run clusters the scenario's assets and checks the expectation, returning
// a descriptive error on the first mismatch.
func (s *Scenario) Run() ([]model.MediaCluster, error) {
	clusters := cluster.Cluster(s.BuildAssets(), s.Config)

	if len(clusters) != len(s.Expect.Clusters) {
		return clusters, fmt.Errorf("scenario %s: got %d clusters, want %d",
			s.Name, len(clusters), len(s.Expect.Clusters))
	}
	for i, want := range s.Expect.Clusters {
		got := clusters[i]
		if len(got.Assets) != want.Size {
			return clusters, fmt.Errorf("scenario %s: cluster %d has %d assets, want %d",
				s.Name, i, len(got.Assets), want.Size)
		}
		if got.IsBurst != want.IsBurst {
			return clusters, fmt.Errorf("scenario %s: cluster %d is_burst=%v, want %v",
				s.Name, i, got.IsBurst, want.IsBurst)
		}
		if want.KeyAsset != "" && got.KeyAssetID != want.KeyAsset {
			return clusters, fmt.Errorf("scenario %s: cluster %d key asset %q, want %q",
				s.Name, i, got.KeyAssetID, want.KeyAsset)
		}
	}
	return clusters, nil
}

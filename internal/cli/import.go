package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coresick/lifeline/internal/cluster"
	"github.com/coresick/lifeline/internal/model"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Config string
}

// Manifest is the import input: a batch of captures belonging to one owner
// and context.
type Manifest struct {
	OwnerID   string `yaml:"owner_id"`
	ContextID string `yaml:"context_id,omitempty"`

	// Category selects the clustering threshold defaults (default, pet,
	// business) unless a config file overrides them.
	Category string `yaml:"category,omitempty"`

	Assets []ManifestAsset `yaml:"assets"`
}

// ManifestAsset is one capture record in an import manifest.
type ManifestAsset struct {
	ID           string    `yaml:"id"`
	TakenAt      time.Time `yaml:"taken_at"`
	Lat          *float64  `yaml:"lat,omitempty"`
	Lon          *float64  `yaml:"lon,omitempty"`
	ExifComplete bool      `yaml:"exif_complete,omitempty"`
}

// ImportSummary is the import command's result payload.
type ImportSummary struct {
	Events int `json:"events"`
	Bursts int `json:"bursts"`
	Assets int `json:"assets"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Cluster a media manifest into timeline events",
		Long: `Cluster a media manifest into timeline events and persist them.

The manifest lists captures with timestamps and optional coordinates.
Rapid-fire runs become burst events, nearby captures become collections,
isolated captures become single-photo events.

Example:
  lifeline import --db ./timeline.db ./photos.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to engine config file")

	return cmd
}

func runImport(opts *ImportOptions, manifestPath string, cmd *cobra.Command) error {
	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load manifest", err)
	}

	cfg, err := LoadConfig(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	thresholds := cfg.ClusteringFor(manifest.Category)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	clusters := cluster.Cluster(manifest.BuildAssets(), thresholds)
	events := cluster.SynthesizeEvents(clusters, manifest.OwnerID, manifest.ContextID, model.UUIDv7Generator{})
	slog.Info("manifest clustered", "assets", len(manifest.Assets), "events", len(events))

	if err := st.PutEvents(cmd.Context(), events); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist events", err)
	}

	summary := ImportSummary{Events: len(events), Assets: len(manifest.Assets)}
	for _, c := range clusters {
		if c.IsBurst {
			summary.Bursts++
		}
	}

	return opts.formatter(cmd).Success(summary, func(w io.Writer) {
		fmt.Fprintf(w, "Imported %d assets into %d events (%d bursts)\n",
			summary.Assets, summary.Events, summary.Bursts)
		for _, e := range events {
			fmt.Fprintf(w, "  %s  %s  %s\n", e.Timestamp.Format(time.RFC3339), e.EventType, e.Title)
		}
	})
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if m.OwnerID == "" {
		return nil, fmt.Errorf("manifest %s: owner_id is required", path)
	}
	if len(m.Assets) == 0 {
		return nil, fmt.Errorf("manifest %s: at least one asset is required", path)
	}
	return &m, nil
}

// BuildAssets converts the manifest records into media assets.
func (m *Manifest) BuildAssets() []model.MediaAsset {
	assets := make([]model.MediaAsset, 0, len(m.Assets))
	for _, spec := range m.Assets {
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

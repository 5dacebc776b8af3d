package cluster

import (
	"sort"
	"time"

	"github.com/coresick/lifeline/internal/geo"
	"github.com/coresick/lifeline/internal/model"
)

// Cluster groups assets into ordered MediaClusters: burst runs first, then
// greedy proximity clusters over the rest. Empty input yields empty output.
// The input slice is not modified.
func Cluster(assets []model.MediaAsset, cfg Configuration) []model.MediaCluster {
	if len(assets) == 0 {
		return nil
	}

	sorted := make([]model.MediaAsset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].TakenAt.Equal(sorted[j].TakenAt) {
			return sorted[i].TakenAt.Before(sorted[j].TakenAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	bursts, rest := scanBursts(sorted, cfg)
	clusters := append(bursts, scanProximity(rest, cfg)...)

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Start.Before(clusters[j].Start)
	})
	return clusters
}

// scanBursts extracts burst clusters from time-sorted assets and returns the
// leftover assets in their original order.
func scanBursts(sorted []model.MediaAsset, cfg Configuration) ([]model.MediaCluster, []model.MediaAsset) {
	threshold := time.Duration(cfg.BurstThresholdSec) * time.Second

	var bursts []model.MediaCluster
	var rest []model.MediaAsset
	run := []model.MediaAsset{sorted[0]}

	closeRun := func() {
		if len(run) >= cfg.MinBurstSize {
			bursts = append(bursts, buildCluster(run, true))
		} else {
			rest = append(rest, run...)
		}
		run = nil
	}

	for _, a := range sorted[1:] {
		gap := a.TakenAt.Sub(run[len(run)-1].TakenAt)
		if gap > threshold {
			closeRun()
		} else if len(run) >= cfg.MaxBurstSize {
			// Full burst: close it and let the run continue fresh.
			closeRun()
		}
		run = append(run, a)
	}
	closeRun()

	return bursts, rest
}

// scanProximity greedily grows clusters over non-burst assets. The temporal
// constraint is anchored at the cluster's first asset; the spatial constraint
// is pairwise against every geotagged asset already included.
func scanProximity(rest []model.MediaAsset, cfg Configuration) []model.MediaCluster {
	if len(rest) == 0 {
		return nil
	}
	span := time.Duration(cfg.TemporalThresholdMin) * time.Minute

	var clusters []model.MediaCluster
	current := []model.MediaAsset{rest[0]}

	for _, a := range rest[1:] {
		if a.TakenAt.Sub(current[0].TakenAt) > span || !withinSpatialReach(current, a, cfg.SpatialThresholdMeters) {
			clusters = append(clusters, buildCluster(current, false))
			current = nil
		}
		current = append(current, a)
	}
	clusters = append(clusters, buildCluster(current, false))

	return clusters
}

// withinSpatialReach reports whether the candidate stays within the spatial
// threshold of every geotagged asset already in the cluster. Assets without
// GPS are only constrained temporally.
func withinSpatialReach(current []model.MediaAsset, candidate model.MediaAsset, thresholdMeters float64) bool {
	if !candidate.HasLocation() {
		return true
	}
	for _, a := range current {
		if !a.HasLocation() {
			continue
		}
		if geo.DistanceMeters(*a.Location, *candidate.Location) > thresholdMeters {
			return false
		}
	}
	return true
}

// buildCluster finalizes a run of time-sorted assets into a MediaCluster.
func buildCluster(assets []model.MediaAsset, isBurst bool) model.MediaCluster {
	owned := make([]model.MediaAsset, len(assets))
	copy(owned, assets)

	var coords []model.Coordinate
	for _, a := range owned {
		if a.HasLocation() {
			coords = append(coords, *a.Location)
		}
	}

	c := model.MediaCluster{
		Assets:  owned,
		Start:   owned[0].TakenAt,
		End:     owned[len(owned)-1].TakenAt,
		Center:  geo.Centroid(coords),
		IsBurst: isBurst,
	}
	c.KeyAssetID = SelectKeyAsset(c)
	return c
}

package cluster

import (
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// SelectKeyAsset picks the representative asset of a cluster.
//
// Candidate tiers, in order: assets with complete EXIF and GPS, then assets
// with complete EXIF, then all assets. Within the winning tier the asset
// closest to the cluster's temporal midpoint wins; exact ties break on the
// smaller id so re-runs always agree. Empty clusters yield "".
func SelectKeyAsset(c model.MediaCluster) string {
	if len(c.Assets) == 0 {
		return ""
	}

	midpoint := c.Start.Add(c.End.Sub(c.Start) / 2)

	candidates := filterAssets(c.Assets, func(a model.MediaAsset) bool {
		return a.ExifComplete && a.HasLocation()
	})
	if len(candidates) == 0 {
		candidates = filterAssets(c.Assets, func(a model.MediaAsset) bool {
			return a.ExifComplete
		})
	}
	if len(candidates) == 0 {
		candidates = c.Assets
	}

	best := candidates[0]
	bestDist := absDuration(best.TakenAt.Sub(midpoint))
	for _, a := range candidates[1:] {
		d := absDuration(a.TakenAt.Sub(midpoint))
		if d < bestDist || (d == bestDist && a.ID < best.ID) {
			best = a
			bestDist = d
		}
	}
	return best.ID
}

func filterAssets(assets []model.MediaAsset, keep func(model.MediaAsset) bool) []model.MediaAsset {
	var out []model.MediaAsset
	for _, a := range assets {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

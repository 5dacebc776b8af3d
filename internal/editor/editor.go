// Package editor implements the validated split, merge, move, and
// key-reselection operations that mutate the authoritative event/media
// partition.
//
// Every operation is a pure function: inputs are never modified, outputs
// are fresh copies, and all validation happens before any result is built.
// Persisting the outcome is the caller's concern.
package editor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coresick/lifeline/internal/cluster"
	"github.com/coresick/lifeline/internal/geo"
	"github.com/coresick/lifeline/internal/model"
)

// descriptionSeparator joins merged descriptions.
const descriptionSeparator = "\n\n"

// Split partitions an event's assets into one new event per group.
//
// Valid only if the event has at least two assets and the groups form an
// exact partition (two or more groups, none empty, union equals the asset
// set, no duplicates). Every resulting event gets a fresh id and a freshly
// selected key asset; only the first keeps the original title/description.
func Split(event model.TimelineEvent, groups [][]string, gen model.IDGenerator) ([]model.TimelineEvent, error) {
	if len(event.Assets) < 2 {
		return nil, &EditError{
			Code:    ErrCodeTooFewAssets,
			Message: "split requires an event with at least two assets",
			EventID: event.ID,
		}
	}
	if len(groups) < 2 {
		return nil, &EditError{
			Code:    ErrCodeTooFewGroups,
			Message: "split requires at least two asset groups",
			EventID: event.ID,
		}
	}

	byID := make(map[string]model.MediaAsset, len(event.Assets))
	for _, a := range event.Assets {
		byID[a.ID] = a
	}

	seen := make(map[string]bool, len(event.Assets))
	for gi, group := range groups {
		if len(group) == 0 {
			return nil, &EditError{
				Code:    ErrCodeUnpartitioned,
				Message: fmt.Sprintf("group %d is empty", gi),
				EventID: event.ID,
			}
		}
		for _, id := range group {
			if _, ok := byID[id]; !ok {
				return nil, &EditError{
					Code:    ErrCodeUnpartitioned,
					Message: "asset is not part of the event",
					EventID: event.ID,
					AssetID: id,
				}
			}
			if seen[id] {
				return nil, &EditError{
					Code:    ErrCodeUnpartitioned,
					Message: "asset appears in more than one group",
					EventID: event.ID,
					AssetID: id,
				}
			}
			seen[id] = true
		}
	}
	if len(seen) != len(event.Assets) {
		return nil, &EditError{
			Code:    ErrCodeUnpartitioned,
			Message: fmt.Sprintf("groups cover %d of %d assets", len(seen), len(event.Assets)),
			EventID: event.ID,
		}
	}

	results := make([]model.TimelineEvent, 0, len(groups))
	for gi, group := range groups {
		assets := make([]model.MediaAsset, 0, len(group))
		for _, id := range group {
			assets = append(assets, byID[id])
		}

		out := event
		out.ID = gen.NewID()
		out.Assets = rekeyAssets(assets, out.ID)
		out.Timestamp = earliestTaken(out.Assets)
		out.EventType = derivedEventType(out.Assets)
		out.Location = assetCentroid(out.Assets)
		out.Participants = cloneStrings(event.Participants)
		out.Tags = cloneStrings(event.Tags)
		if gi > 0 {
			out.Title = ""
			out.Description = ""
		}
		results = append(results, out)
	}
	return results, nil
}

// Merge combines two or more events into one.
//
// Valid only if all events share the same owner and context. The primary
// defaults to the earliest event by timestamp; it contributes the result's
// event type, privacy, and timestamp anchor. Assets are re-keyed to the new
// event id with a freshly selected key asset, participants and tags are
// unioned, titles follow the single/pair/auto rule, and non-empty
// descriptions are joined.
func Merge(events []model.TimelineEvent, primaryID string, gen model.IDGenerator) (model.TimelineEvent, error) {
	if len(events) < 2 {
		return model.TimelineEvent{}, &EditError{
			Code:    ErrCodeTooFewEvents,
			Message: "merge requires at least two events",
		}
	}
	for _, e := range events[1:] {
		if e.OwnerID != events[0].OwnerID {
			return model.TimelineEvent{}, &EditError{
				Code:    ErrCodeMixedOwners,
				Message: "all merged events must share one owner",
				EventID: e.ID,
			}
		}
		if e.ContextID != events[0].ContextID {
			return model.TimelineEvent{}, &EditError{
				Code:    ErrCodeMixedContexts,
				Message: "all merged events must share one context",
				EventID: e.ID,
			}
		}
	}

	primary := events[0]
	for _, e := range events[1:] {
		if e.Timestamp.Before(primary.Timestamp) {
			primary = e
		}
	}
	if primaryID != "" {
		found := false
		for _, e := range events {
			if e.ID == primaryID {
				primary, found = e, true
				break
			}
		}
		if !found {
			return model.TimelineEvent{}, &EditError{
				Code:    ErrCodeNotFound,
				Message: "primary is not among the merged events",
				EventID: primaryID,
			}
		}
	}

	var assets []model.MediaAsset
	participants := map[string]bool{}
	tags := map[string]bool{}
	var titles, descriptions []string
	for _, e := range events {
		assets = append(assets, e.Assets...)
		for _, p := range e.Participants {
			participants[p] = true
		}
		for _, tag := range e.Tags {
			tags[tag] = true
		}
		if t := strings.TrimSpace(e.Title); t != "" && !contains(titles, t) {
			titles = append(titles, t)
		}
		if d := strings.TrimSpace(e.Description); d != "" {
			descriptions = append(descriptions, d)
		}
	}

	sort.SliceStable(assets, func(i, j int) bool {
		if !assets[i].TakenAt.Equal(assets[j].TakenAt) {
			return assets[i].TakenAt.Before(assets[j].TakenAt)
		}
		return assets[i].ID < assets[j].ID
	})

	out := primary
	out.ID = gen.NewID()
	out.Assets = rekeyAssets(assets, out.ID)
	out.Participants = sortedKeys(participants)
	out.Tags = sortedKeys(tags)
	out.Location = assetCentroid(out.Assets)
	out.Title = mergedTitle(titles, len(events), len(assets))
	out.Description = strings.Join(descriptions, descriptionSeparator)
	if len(out.Assets) > 0 {
		out.Timestamp = earliestTaken(out.Assets)
	}
	return out, nil
}

// MoveAssets transfers assets from source to target.
//
// Valid only if source and target are distinct events sharing a context,
// every moved asset currently belongs to source, and the move leaves source
// non-empty. Key assets are recomputed for both results.
func MoveAssets(assetIDs []string, source, target model.TimelineEvent) (model.TimelineEvent, model.TimelineEvent, error) {
	fail := func(err *EditError) (model.TimelineEvent, model.TimelineEvent, error) {
		return model.TimelineEvent{}, model.TimelineEvent{}, err
	}

	if source.ID == target.ID {
		return fail(&EditError{
			Code:    ErrCodeSameEvent,
			Message: "source and target must be different events",
			EventID: source.ID,
		})
	}
	if source.ContextID != target.ContextID {
		return fail(&EditError{
			Code:    ErrCodeMixedContexts,
			Message: "source and target must share one context",
			EventID: target.ID,
		})
	}
	if len(assetIDs) == 0 {
		return fail(&EditError{
			Code:    ErrCodeAssetNotInEvent,
			Message: "no assets to move",
			EventID: source.ID,
		})
	}

	moving := make(map[string]bool, len(assetIDs))
	for _, id := range assetIDs {
		moving[id] = true
	}
	owned := make(map[string]bool, len(source.Assets))
	for _, a := range source.Assets {
		owned[a.ID] = true
	}
	for _, id := range assetIDs {
		if !owned[id] {
			return fail(&EditError{
				Code:    ErrCodeAssetNotInEvent,
				Message: "asset does not belong to the source event",
				EventID: source.ID,
				AssetID: id,
			})
		}
	}
	if len(moving) >= len(source.Assets) {
		return fail(&EditError{
			Code:    ErrCodeWouldEmptySource,
			Message: "move would leave the source event without assets",
			EventID: source.ID,
		})
	}

	var kept, moved []model.MediaAsset
	for _, a := range source.Assets {
		if moving[a.ID] {
			moved = append(moved, a)
		} else {
			kept = append(kept, a)
		}
	}

	newSource := source
	newSource.Assets = rekeyAssets(kept, source.ID)
	newSource.Timestamp = earliestTaken(newSource.Assets)
	newSource.Location = assetCentroid(newSource.Assets)

	newTarget := target
	newTarget.Assets = rekeyAssets(append(cloneAssets(target.Assets), moved...), target.ID)
	newTarget.Timestamp = earliestTaken(newTarget.Assets)
	newTarget.Location = assetCentroid(newTarget.Assets)

	return newSource, newTarget, nil
}

// SetKeyAsset flags the given asset as the event's key asset.
// Valid only if the asset belongs to the event.
func SetKeyAsset(event model.TimelineEvent, assetID string) (model.TimelineEvent, error) {
	found := false
	for _, a := range event.Assets {
		if a.ID == assetID {
			found = true
			break
		}
	}
	if !found {
		return model.TimelineEvent{}, &EditError{
			Code:    ErrCodeAssetNotInEvent,
			Message: "asset does not belong to the event",
			EventID: event.ID,
			AssetID: assetID,
		}
	}

	out := event
	out.Assets = cloneAssets(event.Assets)
	for i := range out.Assets {
		out.Assets[i].IsKeyAsset = out.Assets[i].ID == assetID
	}
	return out, nil
}

// rekeyAssets re-owns the assets to eventID and reselects the key asset
// with the clustering rule.
func rekeyAssets(assets []model.MediaAsset, eventID string) []model.MediaAsset {
	out := cloneAssets(assets)
	if len(out) == 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].TakenAt.Before(out[j].TakenAt)
		}
		return out[i].ID < out[j].ID
	})

	keyID := cluster.SelectKeyAsset(model.MediaCluster{
		Assets: out,
		Start:  out[0].TakenAt,
		End:    out[len(out)-1].TakenAt,
	})
	for i := range out {
		out[i].EventID = eventID
		out[i].IsKeyAsset = out[i].ID == keyID
	}
	return out
}

// mergedTitle implements the single/pair/auto title rule.
func mergedTitle(titles []string, eventCount, assetCount int) string {
	switch len(titles) {
	case 0:
		return fmt.Sprintf("Merged moment (%d photos)", assetCount)
	case 1:
		return titles[0]
	case 2:
		return titles[0] + " & " + titles[1]
	default:
		return fmt.Sprintf("%d moments (%d photos)", eventCount, assetCount)
	}
}

func derivedEventType(assets []model.MediaAsset) string {
	if len(assets) > 1 {
		return model.EventTypeCollection
	}
	return model.EventTypePhoto
}

func earliestTaken(assets []model.MediaAsset) time.Time {
	earliest := assets[0].TakenAt
	for _, a := range assets[1:] {
		if a.TakenAt.Before(earliest) {
			earliest = a.TakenAt
		}
	}
	return earliest
}

func assetCentroid(assets []model.MediaAsset) *model.Coordinate {
	var coords []model.Coordinate
	for _, a := range assets {
		if a.HasLocation() {
			coords = append(coords, *a.Location)
		}
	}
	return geo.Centroid(coords)
}

func cloneAssets(assets []model.MediaAsset) []model.MediaAsset {
	out := make([]model.MediaAsset, len(assets))
	copy(out, assets)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

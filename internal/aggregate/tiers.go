package aggregate

import (
	"sort"
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// Thresholds sets, per tier, how many events a bucket may hold before it
// collapses into a single cluster node. Focus tier never collapses.
type Thresholds struct {
	Year  int `yaml:"year" json:"year"`
	Month int `yaml:"month" json:"month"`
	Week  int `yaml:"week" json:"week"`
	Day   int `yaml:"day" json:"day"`
}

// DefaultThresholds trade density against legibility at each zoom level.
func DefaultThresholds() Thresholds {
	return Thresholds{Year: 20, Month: 30, Week: 15, Day: 8}
}

// For returns the threshold for a tier. Focus has no threshold.
func (t Thresholds) For(tier Tier) int {
	switch tier {
	case TierYear:
		return t.Year
	case TierMonth:
		return t.Month
	case TierWeek:
		return t.Week
	case TierDay:
		return t.Day
	}
	return 0
}

// Window is the visible time range, half-open [From, To). A zero bound is
// unbounded on that side.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// Aggregate buckets the visible events for a tier and emits render nodes.
//
// A bucket collapses to one cluster node only when its member count exceeds
// the tier threshold and its key is not in the caller's expanded set; focus
// tier always emits individual event nodes. Expanded ids that no longer
// match any bucket are ignored. Every visible event ends up in exactly one
// node's membership.
func Aggregate(events []model.TimelineEvent, tier Tier, window Window, expanded map[string]bool, thresholds Thresholds) []model.RenderNode {
	visible := make([]model.TimelineEvent, 0, len(events))
	for _, e := range events {
		if window.Contains(e.Timestamp) {
			visible = append(visible, e)
		}
	}
	if len(visible) == 0 {
		return nil
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if !visible[i].Timestamp.Equal(visible[j].Timestamp) {
			return visible[i].Timestamp.Before(visible[j].Timestamp)
		}
		return visible[i].ID < visible[j].ID
	})

	if tier == TierFocus {
		nodes := make([]model.RenderNode, 0, len(visible))
		for _, e := range visible {
			nodes = append(nodes, model.EventNode(e))
		}
		return nodes
	}

	threshold := thresholds.For(tier)

	var nodes []model.RenderNode
	for start := 0; start < len(visible); {
		key := BucketKey(visible[start].Timestamp, tier)
		end := start + 1
		for end < len(visible) && BucketKey(visible[end].Timestamp, tier) == key {
			end++
		}
		bucket := visible[start:end]

		if len(bucket) <= threshold || expanded[key] {
			for _, e := range bucket {
				nodes = append(nodes, model.EventNode(e))
			}
		} else {
			bStart, bEnd := BucketRange(bucket[0].Timestamp, tier)
			ids := make([]string, len(bucket))
			for i, e := range bucket {
				ids[i] = e.ID
			}
			nodes = append(nodes, model.ClusterNode(model.ClusterInfo{
				ID:        key,
				Start:     bStart,
				End:       bEnd,
				MemberIDs: ids,
				Count:     len(bucket),
			}))
		}
		start = end
	}
	return nodes
}

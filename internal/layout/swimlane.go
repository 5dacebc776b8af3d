package layout

import (
	"sort"
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// Swimlane constants, in logical pixels.
const (
	laneHeight = 120.0
	laneCardW  = 140.0
	laneCardH  = 80.0

	// bridgePad insets a bridge card from the outer edges of its end lanes.
	bridgePad = 10.0

	// laneGap separates two colliding swimlane cards after a rightward shift.
	laneGap = 16.0
)

// SwimlaneConfig parameterizes the swimlane layout.
type SwimlaneConfig struct {
	// StartDate anchors x=0; event x is elapsed days times PxPerDay.
	StartDate time.Time
	PxPerDay  float64
}

// Swimlanes lays events out in fixed horizontal lanes, one per owner id in
// laneOwners order. Events touching a single relevant lane become standard
// cards centered in that lane's band; events spanning several lanes become
// bridge cards. Events with no relevant participant are skipped. Horizontal
// collisions between lane-overlapping cards are resolved by shifting the
// later card right.
func Swimlanes(events []model.TimelineEvent, laneOwners []string, cfg SwimlaneConfig) []model.SwimlaneItem {
	if len(events) == 0 || len(laneOwners) == 0 {
		return nil
	}

	laneIdx := make(map[string]int, len(laneOwners))
	for i, id := range laneOwners {
		laneIdx[id] = i
	}

	sorted := make([]model.TimelineEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var items []model.SwimlaneItem
	for _, e := range sorted {
		minLane, maxLane, ok := laneSpan(e, laneIdx)
		if !ok {
			continue
		}

		x := e.Timestamp.Sub(cfg.StartDate).Hours() / 24 * cfg.PxPerDay
		item := model.SwimlaneItem{
			Event:   e,
			MinLane: minLane,
			MaxLane: maxLane,
		}
		if minLane == maxLane {
			item.Rect = model.Rect{
				X: x,
				Y: float64(minLane)*laneHeight + (laneHeight-laneCardH)/2,
				W: laneCardW,
				H: laneCardH,
			}
		} else {
			top := float64(minLane)*laneHeight + bridgePad
			bottom := float64(maxLane+1)*laneHeight - bridgePad
			item.Rect = model.Rect{X: x, Y: top, W: laneCardW, H: bottom - top}
			item.IsBridge = true
		}
		items = append(items, item)
	}

	resolveLaneCollisions(items)
	return items
}

// laneSpan intersects the event's participants (owner included) with the
// lane owners and returns the lane index extremes.
func laneSpan(e model.TimelineEvent, laneIdx map[string]int) (int, int, bool) {
	minLane, maxLane := -1, -1
	consider := func(id string) {
		idx, ok := laneIdx[id]
		if !ok {
			return
		}
		if minLane == -1 || idx < minLane {
			minLane = idx
		}
		if idx > maxLane {
			maxLane = idx
		}
	}
	consider(e.OwnerID)
	for _, p := range e.Participants {
		consider(p)
	}
	if minLane == -1 {
		return 0, 0, false
	}
	return minLane, maxLane, true
}

// resolveLaneCollisions shifts later cards right past earlier ones whenever
// both their x-ranges and lane ranges overlap. Items arrive sorted by x
// (time order); each shift moves the later card past the earlier one plus
// the fixed gap.
func resolveLaneCollisions(items []model.SwimlaneItem) {
	for j := 1; j < len(items); j++ {
		for i := 0; i < j; i++ {
			if !lanesOverlap(items[i], items[j]) {
				continue
			}
			overlap := items[i].Rect.MaxX() - items[j].Rect.X
			if overlap <= 0 || items[j].Rect.MaxX() <= items[i].Rect.X {
				continue
			}
			items[j].Rect.X += overlap + laneGap
		}
	}
}

func lanesOverlap(a, b model.SwimlaneItem) bool {
	return a.MinLane <= b.MaxLane && b.MinLane <= a.MaxLane
}

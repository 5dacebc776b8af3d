package testutil

import (
	"fmt"

	"github.com/coresick/lifeline/internal/model"
)

// EventSeries builds n single-photo events for one owner, one per clock
// tick, with ids "<prefix>-01" onward.
func EventSeries(prefix, ownerID string, clock *CaptureClock, n int) []model.TimelineEvent {
	events := make([]model.TimelineEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, model.TimelineEvent{
			ID:        fmt.Sprintf("%s-%02d", prefix, i+1),
			OwnerID:   ownerID,
			Timestamp: clock.Next(),
			EventType: model.EventTypePhoto,
		})
	}
	return events
}

// AssetSeries builds n media assets at clock intervals, all at the same
// optional location, with ids "<prefix>-01" onward.
func AssetSeries(prefix string, clock *CaptureClock, n int, loc *model.Coordinate) []model.MediaAsset {
	assets := make([]model.MediaAsset, 0, n)
	for i := 0; i < n; i++ {
		a := model.MediaAsset{
			ID:      fmt.Sprintf("%s-%02d", prefix, i+1),
			TakenAt: clock.Next(),
		}
		if loc != nil {
			c := *loc
			a.Location = &c
			a.ExifComplete = true
		}
		assets = append(assets, a)
	}
	return assets
}

package cluster

import (
	"fmt"
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// SynthesizeEvents converts clusters into TimelineEvents, one per cluster,
// in cluster order. Each event owns its cluster's assets: the assets'
// EventID is rewritten and the cluster's key asset is flagged.
func SynthesizeEvents(clusters []model.MediaCluster, ownerID, contextID string, gen model.IDGenerator) []model.TimelineEvent {
	if len(clusters) == 0 {
		return nil
	}

	events := make([]model.TimelineEvent, 0, len(clusters))
	for _, c := range clusters {
		eventID := gen.NewID()

		assets := make([]model.MediaAsset, len(c.Assets))
		copy(assets, c.Assets)
		for i := range assets {
			assets[i].EventID = eventID
			assets[i].IsKeyAsset = assets[i].ID == c.KeyAssetID
		}

		events = append(events, model.TimelineEvent{
			ID:          eventID,
			OwnerID:     ownerID,
			ContextID:   contextID,
			Timestamp:   c.Start,
			EventType:   eventType(c),
			Title:       autoTitle(c),
			Description: autoDescription(c),
			Assets:      assets,
			Location:    c.Center,
			Privacy:     model.PrivacyPrivate,
		})
	}
	return events
}

func eventType(c model.MediaCluster) string {
	switch {
	case c.IsBurst:
		return model.EventTypeBurst
	case len(c.Assets) > 1:
		return model.EventTypeCollection
	default:
		return model.EventTypePhoto
	}
}

func autoTitle(c model.MediaCluster) string {
	switch {
	case c.IsBurst:
		return fmt.Sprintf("Burst of %d photos", len(c.Assets))
	case len(c.Assets) > 1:
		return fmt.Sprintf("%d photos", len(c.Assets))
	default:
		return "Photo"
	}
}

func autoDescription(c model.MediaCluster) string {
	if len(c.Assets) < 2 {
		return ""
	}
	return fmt.Sprintf("%d photos over %s", len(c.Assets), formatSpan(c.Duration()))
}

// formatSpan renders a duration in the coarsest sensible unit.
func formatSpan(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	default:
		return fmt.Sprintf("%.1f hours", d.Hours())
	}
}

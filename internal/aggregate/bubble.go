package aggregate

import (
	"sort"

	"github.com/coresick/lifeline/internal/model"
)

// Palette maps event categories (tags) to bubble colors. Categories without
// an entry are summarized as "Other" with the neutral color.
type Palette map[string]model.Color

// NeutralColor is the fallback for unregistered categories.
var NeutralColor = model.Color{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

// OtherCategory names the bucket category when no registered tag dominates.
const OtherCategory = "Other"

// DefaultPalette registers the built-in category colors.
func DefaultPalette() Palette {
	return Palette{
		"travel": {R: 0x42, G: 0xa5, B: 0xf5, A: 0xff},
		"family": {R: 0xef, G: 0x53, B: 0x50, A: 0xff},
		"work":   {R: 0x78, G: 0x90, B: 0x9c, A: 0xff},
		"food":   {R: 0xff, G: 0xa7, B: 0x26, A: 0xff},
		"pet":    {R: 0x66, G: 0xbb, B: 0x6a, A: 0xff},
		"sport":  {R: 0xab, G: 0x47, B: 0xbc, A: 0xff},
	}
}

// sizeMultiplier maps an event count to a discrete bubble size band.
func sizeMultiplier(count int) float64 {
	switch {
	case count <= 1:
		return 0.6
	case count <= 3:
		return 0.8
	case count <= 5:
		return 1.0
	case count <= 10:
		return 1.2
	default:
		return 1.4
	}
}

// Bubbles produces one overview bubble per calendar bucket, sorted by bucket
// start time. Focus tier degenerates to day buckets since a bubble overview
// always needs a calendar grain.
func Bubbles(events []model.TimelineEvent, tier Tier, palette Palette) []model.BubbleData {
	if len(events) == 0 {
		return nil
	}
	if tier == TierFocus {
		tier = TierDay
	}
	if palette == nil {
		palette = DefaultPalette()
	}

	type bucket struct {
		events []model.TimelineEvent
	}
	buckets := map[string]*bucket{}
	for _, e := range events {
		key := BucketKey(e.Timestamp, tier)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.events = append(b.events, e)
	}

	bubbles := make([]model.BubbleData, 0, len(buckets))
	for key, b := range buckets {
		start, end := BucketRange(b.events[0].Timestamp, tier)

		participants := map[string]int{}
		tagCounts := map[string]int{}
		for _, e := range b.events {
			participants[e.OwnerID]++
			for _, p := range e.Participants {
				if p != e.OwnerID {
					participants[p]++
				}
			}
			for _, tag := range e.Tags {
				tagCounts[tag]++
			}
		}

		category := dominantCategory(tagCounts, palette)
		color := NeutralColor
		if c, ok := palette[category]; ok {
			color = c
		}

		ids := make([]string, 0, len(participants))
		for p := range participants {
			ids = append(ids, p)
		}
		sort.Strings(ids)

		bubbles = append(bubbles, model.BubbleData{
			BucketID:         key,
			Start:            start,
			End:              end,
			EventCount:       len(b.events),
			Label:            BucketLabel(b.events[0].Timestamp, tier),
			Color:            color,
			DominantCategory: category,
			Participants:     ids,
			ParticipantCount: participants,
			Tier:             string(tier),
			SizeMultiplier:   sizeMultiplier(len(b.events)),
		})
	}

	sort.Slice(bubbles, func(i, j int) bool {
		return bubbles[i].Start.Before(bubbles[j].Start)
	})
	return bubbles
}

// dominantCategory returns the most frequent tag that has a registered
// color, tie-broken alphabetically; OtherCategory when none qualifies.
func dominantCategory(tagCounts map[string]int, palette Palette) string {
	best := OtherCategory
	bestCount := 0
	for tag, n := range tagCounts {
		if _, registered := palette[tag]; !registered {
			continue
		}
		if n > bestCount || (n == bestCount && best != OtherCategory && tag < best) {
			best = tag
			bestCount = n
		}
	}
	return best
}

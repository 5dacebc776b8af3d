// Package aggregate buckets timeline events by calendar tier and produces
// the zoom-dependent render nodes and overview bubbles.
//
// Bucket keys are computed with explicit integer arithmetic (never
// locale-dependent formatting) so aggregation is reproducible across
// platforms. All bucketing happens on the event timestamps' UTC instant.
package aggregate

import (
	"fmt"
	"time"
)

// Tier is a zoom level controlling aggregation granularity.
type Tier string

const (
	TierYear  Tier = "year"
	TierMonth Tier = "month"
	TierWeek  Tier = "week"
	TierDay   Tier = "day"

	// TierFocus never aggregates: every event renders individually.
	TierFocus Tier = "focus"
)

// ValidTiers lists the accepted tier names, coarse to fine.
var ValidTiers = []Tier{TierYear, TierMonth, TierWeek, TierDay, TierFocus}

// ParseTier validates a tier name.
func ParseTier(s string) (Tier, error) {
	for _, t := range ValidTiers {
		if Tier(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q: must be one of %v", s, ValidTiers)
}

// BucketKey returns the deterministic calendar key for a timestamp at a
// tier: "2024", "2024-06", "2024-W23", or "2024-06-01". Focus tier has no
// buckets; its key is the empty string.
func BucketKey(t time.Time, tier Tier) string {
	t = t.UTC()
	switch tier {
	case TierYear:
		return fmt.Sprintf("%04d", t.Year())
	case TierMonth:
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	case TierWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case TierDay:
		return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
	}
	return ""
}

// BucketRange returns the half-open [start, end) interval of the bucket
// containing t at the given tier. Focus tier collapses to the instant itself.
func BucketRange(t time.Time, tier Tier) (time.Time, time.Time) {
	t = t.UTC()
	switch tier {
	case TierYear:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	case TierMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	case TierWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// ISO weeks start on Monday; Go's Sunday is 0.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case TierDay:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, 1)
	}
	return t, t
}

// BucketLabel renders a human label for a bucket: "2024", "June 2024",
// "Week 23, 2024", "Jun 1, 2024".
func BucketLabel(t time.Time, tier Tier) string {
	t = t.UTC()
	switch tier {
	case TierYear:
		return fmt.Sprintf("%04d", t.Year())
	case TierMonth:
		return fmt.Sprintf("%s %04d", t.Month(), t.Year())
	case TierWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("Week %d, %04d", week, year)
	case TierDay:
		return fmt.Sprintf("%s %d, %04d", t.Month().String()[:3], t.Day(), t.Year())
	}
	return ""
}

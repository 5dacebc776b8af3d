package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresick/lifeline/internal/model"
)

func taggedEvent(id string, ts time.Time, owner string, tags ...string) model.TimelineEvent {
	return model.TimelineEvent{ID: id, OwnerID: owner, Timestamp: ts, Tags: tags}
}

func TestBubbles_EmptyInput(t *testing.T) {
	assert.Empty(t, Bubbles(nil, TierMonth, nil))
}

func TestBubbles_OnePerBucketSortedByStart(t *testing.T) {
	events := []model.TimelineEvent{
		taggedEvent("b", time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), "alice"),
		taggedEvent("a", time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), "alice"),
		taggedEvent("c", time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), "alice"),
	}

	bubbles := Bubbles(events, TierMonth, nil)

	require.Len(t, bubbles, 2)
	assert.Equal(t, "2024-02", bubbles[0].BucketID)
	assert.Equal(t, 2, bubbles[0].EventCount)
	assert.Equal(t, "February 2024", bubbles[0].Label)
	assert.Equal(t, "2024-08", bubbles[1].BucketID)
	assert.Equal(t, "month", bubbles[1].Tier)
}

func TestBubbles_DominantCategoryAndColor(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events := []model.TimelineEvent{
		taggedEvent("1", ts, "alice", "travel", "misc"),
		taggedEvent("2", ts, "alice", "travel"),
		taggedEvent("3", ts, "alice", "food"),
	}

	bubbles := Bubbles(events, TierMonth, DefaultPalette())

	require.Len(t, bubbles, 1)
	assert.Equal(t, "travel", bubbles[0].DominantCategory)
	assert.Equal(t, DefaultPalette()["travel"], bubbles[0].Color)
}

func TestBubbles_UnregisteredTagsFallBackToOther(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events := []model.TimelineEvent{
		taggedEvent("1", ts, "alice", "misc", "random"),
	}

	bubbles := Bubbles(events, TierMonth, DefaultPalette())

	require.Len(t, bubbles, 1)
	assert.Equal(t, OtherCategory, bubbles[0].DominantCategory)
	assert.Equal(t, NeutralColor, bubbles[0].Color)
}

func TestBubbles_ParticipantsAndCounts(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events := []model.TimelineEvent{
		{ID: "1", OwnerID: "alice", Timestamp: ts, Participants: []string{"bob"}},
		{ID: "2", OwnerID: "bob", Timestamp: ts.Add(time.Hour)},
	}

	bubbles := Bubbles(events, TierMonth, nil)

	require.Len(t, bubbles, 1)
	assert.Equal(t, []string{"alice", "bob"}, bubbles[0].Participants)
	assert.Equal(t, 1, bubbles[0].ParticipantCount["alice"])
	assert.Equal(t, 2, bubbles[0].ParticipantCount["bob"])
}

func TestBubbles_SizeBands(t *testing.T) {
	cases := []struct {
		count int
		want  float64
	}{
		{1, 0.6}, {2, 0.8}, {3, 0.8}, {4, 1.0}, {5, 1.0}, {6, 1.2}, {10, 1.2}, {11, 1.4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sizeMultiplier(tc.count), "count %d", tc.count)
	}
}

func TestBubbles_FocusDegradesToDay(t *testing.T) {
	events := []model.TimelineEvent{
		taggedEvent("1", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), "alice"),
		taggedEvent("2", time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), "alice"),
	}

	bubbles := Bubbles(events, TierFocus, nil)

	require.Len(t, bubbles, 2)
	assert.Equal(t, "2024-06-01", bubbles[0].BucketID)
	assert.Equal(t, "day", bubbles[0].Tier)
}

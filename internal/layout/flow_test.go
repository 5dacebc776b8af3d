package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresick/lifeline/internal/model"
)

func flowConfig() FlowConfig {
	return FlowConfig{
		StartDate:     layoutT0,
		PxPerDay:      100,
		LaneWidth:     200,
		ViewportWidth: 800,
		Names:         map[string]string{"alice": "Alice"},
	}
}

func sharedEvent(id string, day int, owner string, participants ...string) model.TimelineEvent {
	return model.TimelineEvent{
		ID:           id,
		OwnerID:      owner,
		Timestamp:    layoutT0.AddDate(0, 0, day),
		Participants: participants,
	}
}

func TestFlow_EmptyParticipants(t *testing.T) {
	result := Flow([]model.TimelineEvent{sharedEvent("e1", 0, "alice")}, nil, flowConfig())
	assert.Empty(t, result.Paths)
	assert.Empty(t, result.Intersections)
}

func TestFlow_LanesCenteredInViewport(t *testing.T) {
	result := Flow(nil, []string{"alice", "bob"}, flowConfig())

	require.Len(t, result.Paths, 2)
	// Two 200px lanes centered at x=400: bases at 300 and 500.
	assert.Equal(t, 300.0, result.Paths[0].Origin.X)
	assert.Equal(t, 500.0, result.Paths[1].Origin.X)
	assert.Equal(t, "Alice", result.Paths[0].DisplayName)
	assert.Equal(t, "bob", result.Paths[1].DisplayName, "missing display name falls back to id")
}

func TestFlow_SoloEventsStayOnBaseLane(t *testing.T) {
	events := []model.TimelineEvent{
		sharedEvent("e1", 0, "alice"),
		sharedEvent("e2", 2, "alice"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	alice := result.Paths[0]
	require.Len(t, alice.Nodes, 2)
	assert.Equal(t, 300.0, alice.Nodes[0].Position.X)
	assert.Equal(t, 300.0, alice.Nodes[1].Position.X)
	assert.False(t, alice.Nodes[0].IsJunction)
	assert.Equal(t, 0.0, alice.Nodes[0].Position.Y)
	assert.Equal(t, 200.0, alice.Nodes[1].Position.Y)
}

func TestFlow_JunctionPullsToSharedCenter(t *testing.T) {
	events := []model.TimelineEvent{
		sharedEvent("e1", 0, "alice", "bob"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	for _, path := range result.Paths {
		require.Len(t, path.Nodes, 1)
		assert.True(t, path.Nodes[0].IsJunction)
		assert.Equal(t, 400.0, path.Nodes[0].Position.X, "junction x is the lane average")
		assert.Equal(t, []string{"alice", "bob"}, path.Nodes[0].ParticipantIDs)
	}
}

func TestFlow_OriginAboveFirstEvent(t *testing.T) {
	events := []model.TimelineEvent{sharedEvent("e1", 3, "alice")}

	result := Flow(events, []string{"alice"}, flowConfig())

	alice := result.Paths[0]
	assert.Equal(t, 400.0, alice.Origin.X, "single lane sits on the viewport center")
	assert.Equal(t, alice.Nodes[0].Position.Y-originLift, alice.Origin.Y)
}

func TestFlow_MonotonicAlongTimeAxis(t *testing.T) {
	events := []model.TimelineEvent{
		sharedEvent("e3", 9, "alice", "bob"),
		sharedEvent("e1", 1, "alice"),
		sharedEvent("e2", 4, "alice", "bob"),
		sharedEvent("e4", 12, "bob"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	for _, path := range result.Paths {
		for i := 1; i < len(path.Nodes); i++ {
			assert.GreaterOrEqual(t, path.Nodes[i].Position.Y, path.Nodes[i-1].Position.Y,
				"path %s must be monotonic", path.ParticipantID)
		}
	}
}

func TestFlow_CurveCoversOriginNodesAndTail(t *testing.T) {
	events := []model.TimelineEvent{
		sharedEvent("e1", 0, "alice"),
		sharedEvent("e2", 2, "alice", "bob"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	alice := result.Paths[0]
	// origin->e1, e1->e2 (merge curve), tail.
	require.Len(t, alice.Curve, 3)
	assert.Equal(t, alice.Origin, alice.Curve[0].From)
	last := alice.Curve[len(alice.Curve)-1]
	assert.Equal(t, alice.Nodes[1].Position.Y+tailExtension, last.To.Y)
	assert.Equal(t, alice.Nodes[1].Position.X, last.To.X, "tail continues straight")
}

func TestFlow_HelixBetweenConsecutivePairJunctions(t *testing.T) {
	// Two alice+bob junctions 6 days apart: 600px splits into 4 half-waves.
	events := []model.TimelineEvent{
		sharedEvent("e1", 0, "alice", "bob"),
		sharedEvent("e2", 6, "alice", "bob"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	alice, bob := result.Paths[0], result.Paths[1]
	// origin->e1, 4 helix half-waves, tail.
	require.Len(t, alice.Curve, 6)
	require.Len(t, bob.Curve, 6)

	// 180° phase offset: the two streams bulge to opposite sides of the
	// shared center on every half-wave.
	for k := 1; k <= 4; k++ {
		aliceBulge := alice.Curve[k].Ctrl1.X - 400
		bobBulge := bob.Curve[k].Ctrl1.X - 400
		assert.InDelta(t, -aliceBulge, bobBulge, 1e-9, "half-wave %d", k)
		assert.NotZero(t, aliceBulge)
	}

	// Consecutive half-waves alternate sides within one path.
	first := alice.Curve[1].Ctrl1.X - 400
	second := alice.Curve[2].Ctrl1.X - 400
	assert.Less(t, first*second, 0.0)
}

func TestFlow_ShortPairSegmentGetsSingleHalfWave(t *testing.T) {
	// 100px between junctions: below one full half-wave length, clamped to 1.
	events := []model.TimelineEvent{
		sharedEvent("e1", 0, "alice", "bob"),
		sharedEvent("e2", 1, "alice", "bob"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	// origin->e1, 1 helix half-wave, tail.
	assert.Len(t, result.Paths[0].Curve, 3)
}

func TestFlow_NoHelixForDifferentPairs(t *testing.T) {
	events := []model.TimelineEvent{
		sharedEvent("e1", 0, "alice", "bob"),
		sharedEvent("e2", 6, "alice", "carol"),
	}

	result := Flow(events, []string{"alice", "bob", "carol"}, flowConfig())

	// Alice's segment between the two junctions is a single smooth cubic,
	// not a helix: the pair changed.
	assert.Len(t, result.Paths[0].Curve, 3)
}

func TestFlow_IntersectionsListSharedEvents(t *testing.T) {
	events := []model.TimelineEvent{
		sharedEvent("solo", 0, "alice"),
		sharedEvent("both", 1, "alice", "bob"),
		sharedEvent("other", 2, "carol", "dave"),
	}

	result := Flow(events, []string{"alice", "bob"}, flowConfig())

	require.Len(t, result.Intersections, 1)
	assert.Equal(t, "both", result.Intersections[0].ID)
}

func TestFlow_ThumbnailFromKeyAsset(t *testing.T) {
	ev := sharedEvent("e1", 0, "alice")
	ev.Assets = []model.MediaAsset{
		{ID: "a1", EventID: "e1"},
		{ID: "a2", EventID: "e1", IsKeyAsset: true},
	}

	result := Flow([]model.TimelineEvent{ev}, []string{"alice"}, flowConfig())

	require.Len(t, result.Paths[0].Nodes, 1)
	assert.Equal(t, "a2", result.Paths[0].Nodes[0].ThumbnailAsset)
}

package layout

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresick/lifeline/internal/model"
)

var layoutT0 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func nodeAt(id string, offset time.Duration, withMedia bool) model.RenderNode {
	e := model.TimelineEvent{ID: id, Timestamp: layoutT0.Add(offset)}
	if withMedia {
		e.Assets = []model.MediaAsset{{ID: id + "-a1", EventID: id}}
	}
	return model.EventNode(e)
}

func verticalConfig(mode DisplayMode) CollisionConfig {
	return CollisionConfig{
		Mode:        mode,
		Orientation: OrientationVertical,
		Viewport:    model.Size{W: 800, H: 600},
		PxPerHour:   10,
		MinDate:     layoutT0,
	}
}

func TestCollisionFree_EmptyInput(t *testing.T) {
	assert.Empty(t, CollisionFree(nil, verticalConfig(ModeMaximal)))
}

func TestCollisionFree_AlternatesSides(t *testing.T) {
	nodes := []model.RenderNode{
		nodeAt("e1", 0, false),
		nodeAt("e2", time.Hour, false),
		nodeAt("e3", 2*time.Hour, false),
	}

	out := CollisionFree(nodes, verticalConfig(ModeMaximal))

	require.Len(t, out, 3)
	axisX := 400.0
	assert.Less(t, out[0].Card.MaxX(), axisX, "first card goes left of the axis")
	assert.Greater(t, out[1].Card.X, axisX, "second card goes right")
	assert.Less(t, out[2].Card.MaxX(), axisX)
}

func TestCollisionFree_SameSideNeverOverlaps(t *testing.T) {
	// 20 events one minute apart force heavy collisions on both sides.
	var nodes []model.RenderNode
	for i := 0; i < 20; i++ {
		nodes = append(nodes, nodeAt(fmt.Sprintf("e%02d", i), time.Duration(i)*time.Minute, i%3 == 0))
	}

	out := CollisionFree(nodes, verticalConfig(ModeMaximal))

	require.Len(t, out, 20)
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if i%2 != j%2 {
				continue // different sides may overlap
			}
			assert.False(t, out[i].Card.Intersects(*out[j].Card),
				"cards %d and %d overlap on the same side", i, j)
		}
	}
}

func TestCollisionFree_PrimaryOffsetFromTime(t *testing.T) {
	nodes := []model.RenderNode{nodeAt("e1", 3*time.Hour, false)}

	out := CollisionFree(nodes, verticalConfig(ModeMaximal))

	require.Len(t, out, 1)
	assert.Equal(t, 30.0, out[0].Marker.Y)
	assert.Equal(t, 400.0, out[0].Marker.X, "marker sits on the axis")
}

func TestCollisionFree_ClusterCardsCompact(t *testing.T) {
	cluster := model.ClusterNode(model.ClusterInfo{ID: "2024-06", Start: layoutT0, Count: 12})
	media := nodeAt("e1", 48*time.Hour, true)

	out := CollisionFree([]model.RenderNode{cluster, media}, verticalConfig(ModeMaximal))

	require.Len(t, out, 2)
	assert.Less(t, out[0].Card.H, out[1].Card.H, "cluster card is shorter than a media card")
}

func TestCollisionFree_HorizontalOrientation(t *testing.T) {
	cfg := verticalConfig(ModeMaximal)
	cfg.Orientation = OrientationHorizontal

	nodes := []model.RenderNode{
		nodeAt("e1", 0, false),
		nodeAt("e2", time.Hour, false),
	}
	out := CollisionFree(nodes, cfg)

	require.Len(t, out, 2)
	axisY := 300.0
	assert.Less(t, out[0].Card.MaxY(), axisY, "first card above the axis")
	assert.Greater(t, out[1].Card.Y, axisY, "second card below")
	assert.Equal(t, axisY, out[0].Marker.Y)
	assert.Equal(t, 10.0, out[1].Marker.X)
}

func TestCollisionFree_MinimalModeHasNoCards(t *testing.T) {
	nodes := []model.RenderNode{
		nodeAt("e1", 0, true),
		nodeAt("e2", 10*time.Hour, true),
	}

	out := CollisionFree(nodes, verticalConfig(ModeMinimal))

	require.Len(t, out, 2)
	for _, n := range out {
		assert.Nil(t, n.Card)
	}
}

func TestCollisionFree_MinimalModeHidesCrowdedLabels(t *testing.T) {
	// At 10 px/h, one hour apart is 10px: far below the label spacing.
	nodes := []model.RenderNode{
		nodeAt("e1", 0, false),
		nodeAt("e2", time.Hour, false),
		nodeAt("e3", 2*time.Hour, false),
		nodeAt("e4", 10*time.Hour, false),
	}

	out := CollisionFree(nodes, verticalConfig(ModeMinimal))

	require.Len(t, out, 4)
	assert.True(t, out[0].LabelVisible)
	assert.False(t, out[1].LabelVisible)
	assert.False(t, out[2].LabelVisible)
	assert.True(t, out[3].LabelVisible, "100px past the last visible label")
}

package layout

import (
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// DisplayMode selects how much geometry the collision layout produces.
type DisplayMode string

const (
	// ModeMinimal produces markers and label visibility only, no cards.
	ModeMinimal DisplayMode = "minimal"

	// ModeMaximal produces full card rectangles, alternating axis sides.
	ModeMaximal DisplayMode = "maximal"
)

// Orientation selects the primary time axis.
type Orientation string

const (
	// OrientationVertical runs time top-to-bottom; cards alternate left/right.
	OrientationVertical Orientation = "vertical"

	// OrientationHorizontal runs time left-to-right; cards alternate top/bottom.
	OrientationHorizontal Orientation = "horizontal"
)

// Card and spacing constants, in logical pixels.
const (
	clusterCardW = 160.0
	clusterCardH = 60.0
	mediaCardW   = 200.0
	mediaCardH   = 140.0
	plainCardW   = 200.0
	plainCardH   = 80.0

	// axisGap separates a card's near edge from the axis line.
	axisGap = 24.0

	// cardSeparation is the minimum primary-axis distance between two cards
	// on the same side after a collision shift.
	cardSeparation = 12.0

	// minLabelSpacing hides a minimal-mode label closer than this to the
	// nearest visible one.
	minLabelSpacing = 48.0
)

// CollisionConfig parameterizes the collision-free layout.
type CollisionConfig struct {
	Mode        DisplayMode
	Orientation Orientation
	Viewport    model.Size

	// PxPerHour scales elapsed time to primary-axis pixels.
	PxPerHour float64

	// MinDate anchors primary-axis position zero.
	MinDate time.Time
}

// CollisionFree places the nodes along the time axis without same-side
// overlaps. Nodes must already be sorted by time; output preserves input
// order. In minimal mode no card rectangles are produced and labels under
// the minimum spacing are hidden instead.
func CollisionFree(nodes []model.RenderNode, cfg CollisionConfig) []model.LayoutNode {
	if len(nodes) == 0 {
		return nil
	}
	if cfg.Mode == ModeMinimal {
		return minimalLayout(nodes, cfg)
	}
	return maximalLayout(nodes, cfg)
}

// primaryOffset converts a node's time to primary-axis pixels.
func primaryOffset(t time.Time, cfg CollisionConfig) float64 {
	return t.Sub(cfg.MinDate).Hours() * cfg.PxPerHour
}

// cardSize estimates a node's card extent: clusters stay compact, events
// carrying media get the tall thumbnail card.
func cardSize(n model.RenderNode) model.Size {
	switch n.Kind {
	case model.NodeKindCluster:
		return model.Size{W: clusterCardW, H: clusterCardH}
	case model.NodeKindEvent:
		if len(n.Event.Assets) > 0 {
			return model.Size{W: mediaCardW, H: mediaCardH}
		}
		return model.Size{W: plainCardW, H: plainCardH}
	}
	return model.Size{W: plainCardW, H: plainCardH}
}

func minimalLayout(nodes []model.RenderNode, cfg CollisionConfig) []model.LayoutNode {
	out := make([]model.LayoutNode, 0, len(nodes))
	lastVisible := 0.0
	haveVisible := false

	for _, n := range nodes {
		offset := primaryOffset(n.Time(), cfg)
		visible := !haveVisible || offset-lastVisible >= minLabelSpacing
		if visible {
			lastVisible = offset
			haveVisible = true
		}
		out = append(out, model.LayoutNode{
			Node:         n,
			Marker:       markerPoint(offset, cfg),
			LabelVisible: visible,
		})
	}
	return out
}

func maximalLayout(nodes []model.RenderNode, cfg CollisionConfig) []model.LayoutNode {
	out := make([]model.LayoutNode, 0, len(nodes))
	// Occupancy lists per side, in placement order.
	var sides [2][]model.Rect

	for i, n := range nodes {
		offset := primaryOffset(n.Time(), cfg)
		size := cardSize(n)
		side := i % 2

		rect := proposeRect(offset, size, side, cfg)
		rect = resolveOverlaps(rect, sides[side], cfg.Orientation)
		sides[side] = append(sides[side], rect)

		out = append(out, model.LayoutNode{
			Node:         n,
			Card:         &rect,
			Marker:       markerPoint(offset, cfg),
			LabelVisible: true,
		})
	}
	return out
}

// markerPoint is the node's anchor on the axis line.
func markerPoint(offset float64, cfg CollisionConfig) model.Point {
	if cfg.Orientation == OrientationHorizontal {
		return model.Point{X: offset, Y: cfg.Viewport.H / 2}
	}
	return model.Point{X: cfg.Viewport.W / 2, Y: offset}
}

// proposeRect positions a card on its assigned side at the node's
// primary-axis offset, before collision resolution.
func proposeRect(offset float64, size model.Size, side int, cfg CollisionConfig) model.Rect {
	if cfg.Orientation == OrientationHorizontal {
		axisY := cfg.Viewport.H / 2
		y := axisY + axisGap // bottom side
		if side == 0 {
			y = axisY - axisGap - size.H // top side
		}
		return model.Rect{X: offset, Y: y, W: size.W, H: size.H}
	}

	axisX := cfg.Viewport.W / 2
	x := axisX + axisGap // right side
	if side == 0 {
		x = axisX - axisGap - size.W // left side
	}
	return model.Rect{X: x, Y: offset, W: size.W, H: size.H}
}

// resolveOverlaps shifts the rect along the primary axis until it clears
// every previously placed rect on its side. Each shift lands the card just
// past the blocking rect plus the minimum separation, so the loop advances
// monotonically and terminates.
func resolveOverlaps(rect model.Rect, placed []model.Rect, orientation Orientation) model.Rect {
	for {
		moved := false
		for _, p := range placed {
			if !rect.Intersects(p) {
				continue
			}
			if orientation == OrientationHorizontal {
				rect.X = p.MaxX() + cardSeparation
			} else {
				rect.Y = p.MaxY() + cardSeparation
			}
			moved = true
		}
		if !moved {
			return rect
		}
	}
}

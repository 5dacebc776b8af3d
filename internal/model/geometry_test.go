package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, a.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.True(t, a.Intersects(Rect{X: -5, Y: -5, W: 20, H: 20}), "containment counts as overlap")
	assert.False(t, a.Intersects(Rect{X: 20, Y: 0, W: 10, H: 10}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, W: 10, H: 10}), "edge contact is not overlap")
	assert.False(t, a.Intersects(Rect{X: 0, Y: 10, W: 10, H: 10}), "edge contact is not overlap")
}

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}
	assert.Equal(t, 6.0, r.MaxX())
	assert.Equal(t, 8.0, r.MaxY())
}

func TestLineSegment_EndpointsAndStraightness(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 30, Y: 90}

	seg := LineSegment(a, b)

	assert.Equal(t, a, seg.From)
	assert.Equal(t, b, seg.To)
	// Control points sit on the chord, so the rendered cubic is a line.
	assert.Equal(t, Point{X: 10, Y: 30}, seg.Ctrl1)
	assert.Equal(t, Point{X: 20, Y: 60}, seg.Ctrl2)
}

package model

// Point is a 2D position in logical layout pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in logical layout pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle with origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Intersects reports whether r and o overlap with positive area. Rectangles
// that merely touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// CubicSegment is a single cubic Bézier segment from From to To with two
// control points.
type CubicSegment struct {
	From  Point `json:"from"`
	Ctrl1 Point `json:"ctrl1"`
	Ctrl2 Point `json:"ctrl2"`
	To    Point `json:"to"`
}

// Curve is an ordered list of cubic Bézier segments. Consecutive segments
// share endpoints; the rendering host converts the curve to its native path
// type.
type Curve []CubicSegment

// LineSegment returns a cubic segment that renders as a straight line from a
// to b, with control points placed at the thirds of the chord.
func LineSegment(a, b Point) CubicSegment {
	return CubicSegment{
		From:  a,
		Ctrl1: Point{X: a.X + (b.X-a.X)/3, Y: a.Y + (b.Y-a.Y)/3},
		Ctrl2: Point{X: a.X + 2*(b.X-a.X)/3, Y: a.Y + 2*(b.Y-a.Y)/3},
		To:    b,
	}
}

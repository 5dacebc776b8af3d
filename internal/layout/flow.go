package layout

import (
	"sort"
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// Flow layout constants, in logical pixels.
const (
	// originLift raises each path's origin above its first event.
	originLift = 60.0

	// tailExtension continues each path past its last event.
	tailExtension = 80.0

	// curveTension places Bézier control points as a fraction of the
	// vertical span, giving smooth merge/diverge curves with vertical
	// tangents at both ends.
	curveTension = 0.4

	// helixRadius is the lateral amplitude of the double-helix weave.
	helixRadius = 20.0

	// helixHalfWaveLen is the vertical length one half-wave aims for; the
	// half-wave count is clamp(segment/helixHalfWaveLen, 1, maxHalfWaves).
	helixHalfWaveLen = 150.0
	maxHalfWaves     = 5

	// helixBulge scales control-point offsets so the cubic's apex reaches
	// roughly the helix radius.
	helixBulge = 4.0 / 3.0
)

// FlowConfig parameterizes the multi-stream flow layout.
type FlowConfig struct {
	// StartDate anchors y=0; event y is elapsed days times PxPerDay.
	StartDate time.Time
	PxPerDay  float64

	// LaneWidth separates adjacent participant base lanes; lanes are
	// centered in the viewport width.
	LaneWidth     float64
	ViewportWidth float64

	// Names maps participant ids to display names; missing ids fall back to
	// the id itself.
	Names map[string]string

	// JitterSeed is reserved for path weaving jitter. Currently unused and
	// always treated as disabled, kept so stored layouts stay reproducible
	// if jitter ships later.
	JitterSeed int64
}

// FlowResult is the full flow diagram: one path per selected participant
// plus the shared events for external highlighting.
type FlowResult struct {
	Paths []model.FlowPath

	// Intersections lists every event shared by at least two selected
	// participants, in time order.
	Intersections []model.TimelineEvent
}

// Flow computes one continuous curve per selected participant. Streams merge
// at shared events (junctions) and diverge after them; two participants
// staying jointly present across consecutive junctions get a decorative
// double-helix weave between those points.
func Flow(events []model.TimelineEvent, participants []string, cfg FlowConfig) FlowResult {
	if len(participants) == 0 {
		return FlowResult{}
	}

	sorted := make([]model.TimelineEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})

	baseX := baseLaneX(participants, cfg)

	result := FlowResult{Paths: make([]model.FlowPath, 0, len(participants))}
	for i := range participants {
		result.Paths = append(result.Paths, buildPath(sorted, participants, i, baseX, cfg))
	}

	for _, e := range sorted {
		if len(selectedIn(e, participants)) >= 2 {
			result.Intersections = append(result.Intersections, e)
		}
	}
	return result
}

// baseLaneX computes each participant's resting x, lanes centered in the
// viewport.
func baseLaneX(participants []string, cfg FlowConfig) map[string]float64 {
	n := len(participants)
	center := cfg.ViewportWidth / 2
	out := make(map[string]float64, n)
	for i, pid := range participants {
		out[pid] = center + (float64(i)-float64(n-1)/2)*cfg.LaneWidth
	}
	return out
}

// selectedIn returns the selected participants present on the event, in
// selection order.
func selectedIn(e model.TimelineEvent, participants []string) []string {
	var out []string
	for _, pid := range participants {
		if e.HasParticipant(pid) {
			out = append(out, pid)
		}
	}
	return out
}

func buildPath(sorted []model.TimelineEvent, participants []string, idx int, baseX map[string]float64, cfg FlowConfig) model.FlowPath {
	pid := participants[idx]
	laneX := baseX[pid]

	path := model.FlowPath{
		ParticipantID: pid,
		DisplayName:   displayName(pid, cfg),
		Origin:        model.Point{X: laneX, Y: -originLift},
	}

	for _, e := range sorted {
		if !e.HasParticipant(pid) {
			continue
		}
		present := selectedIn(e, participants)
		y := e.Timestamp.Sub(cfg.StartDate).Hours() / 24 * cfg.PxPerDay

		x := laneX
		if len(present) >= 2 {
			// Junction: streams meet at the average of the co-present lanes.
			sum := 0.0
			for _, p := range present {
				sum += baseX[p]
			}
			x = sum / float64(len(present))
		}

		node := model.FlowNode{
			Event:          e,
			Position:       model.Point{X: x, Y: y},
			IsJunction:     len(present) >= 2,
			ParticipantIDs: present,
		}
		if key := e.KeyAsset(); key != nil {
			node.ThumbnailAsset = key.ID
		}
		path.Nodes = append(path.Nodes, node)
	}

	if len(path.Nodes) == 0 {
		return path
	}

	path.Origin = model.Point{X: laneX, Y: path.Nodes[0].Position.Y - originLift}
	path.Curve = buildCurve(path, idx, participants)
	return path
}

func displayName(pid string, cfg FlowConfig) string {
	if name, ok := cfg.Names[pid]; ok {
		return name
	}
	return pid
}

// buildCurve connects origin, nodes, and tail into one curve.
func buildCurve(path model.FlowPath, idx int, participants []string) model.Curve {
	pid := participants[idx]
	curve := model.Curve{model.LineSegment(path.Origin, path.Nodes[0].Position)}

	for i := 1; i < len(path.Nodes); i++ {
		prev, next := path.Nodes[i-1], path.Nodes[i]
		if pair, ok := samePairJunctions(prev, next); ok {
			phase := 0
			if pair[1] == pid {
				phase = 1
			}
			curve = append(curve, helixSegments(prev.Position, next.Position, phase)...)
			continue
		}
		curve = append(curve, connectSegment(prev.Position, next.Position))
	}

	last := path.Nodes[len(path.Nodes)-1].Position
	curve = append(curve, model.LineSegment(last, model.Point{X: last.X, Y: last.Y + tailExtension}))
	return curve
}

// samePairJunctions reports whether both nodes are junctions of the same
// exact pair of selected participants, returning that pair in selection
// order.
func samePairJunctions(a, b model.FlowNode) ([2]string, bool) {
	if !a.IsJunction || !b.IsJunction {
		return [2]string{}, false
	}
	if len(a.ParticipantIDs) != 2 || len(b.ParticipantIDs) != 2 {
		return [2]string{}, false
	}
	if a.ParticipantIDs[0] != b.ParticipantIDs[0] || a.ParticipantIDs[1] != b.ParticipantIDs[1] {
		return [2]string{}, false
	}
	return [2]string{a.ParticipantIDs[0], a.ParticipantIDs[1]}, true
}

// connectSegment draws the smooth merge/diverge cubic between two positions.
// Vertical tangents at both ends make entry curve inward and exit curve
// outward; an unchanged x degenerates to a straight segment.
func connectSegment(a, b model.Point) model.CubicSegment {
	if a.X == b.X {
		return model.LineSegment(a, b)
	}
	dy := (b.Y - a.Y) * curveTension
	return model.CubicSegment{
		From:  a,
		Ctrl1: model.Point{X: a.X, Y: a.Y + dy},
		Ctrl2: model.Point{X: b.X, Y: b.Y - dy},
		To:    b,
	}
}

// helixSegments renders the decorative double-helix weave between two
// junction points. The segment splits into clamp(len/150, 1, 5) half-waves
// alternating left/right around the shared center; the two participants of
// the pair start on opposite sides (180° phase offset) so their paths
// interleave. Purely visual, never used for collision or semantics.
func helixSegments(a, b model.Point, phase int) []model.CubicSegment {
	length := b.Y - a.Y
	halfWaves := int(length / helixHalfWaveLen)
	if halfWaves < 1 {
		halfWaves = 1
	}
	if halfWaves > maxHalfWaves {
		halfWaves = maxHalfWaves
	}

	side := 1.0
	if phase == 1 {
		side = -1.0
	}

	segs := make([]model.CubicSegment, 0, halfWaves)
	step := length / float64(halfWaves)
	from := a
	for k := 0; k < halfWaves; k++ {
		to := model.Point{X: a.X + (b.X-a.X)*float64(k+1)/float64(halfWaves), Y: a.Y + step*float64(k+1)}
		bulgeX := (from.X+to.X)/2 + side*helixRadius*helixBulge
		segs = append(segs, model.CubicSegment{
			From:  from,
			Ctrl1: model.Point{X: bulgeX, Y: from.Y + step/3},
			Ctrl2: model.Point{X: bulgeX, Y: from.Y + 2*step/3},
			To:    to,
		})
		side = -side
		from = to
	}
	return segs
}

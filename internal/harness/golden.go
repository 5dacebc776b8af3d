package harness

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/coresick/lifeline/internal/model"
)

// SnapshotRenderNodes serializes aggregation output as canonical JSON and
// compares it against the golden file testdata/golden/<name>.golden.
//
// The snapshot carries only strings and integers: timestamps as RFC3339
// strings, counts as ints. Event nodes omit their full payload and record
// id, time, and type; cluster nodes record id, start, end, count, and
// member ids. That keeps goldens stable and reviewable by hand.
func SnapshotRenderNodes(t *testing.T, name string, nodes []model.RenderNode) {
	t.Helper()

	data, err := model.MarshalSnapshot(renderNodesSnapshot(nodes))
	if err != nil {
		t.Fatalf("failed to serialize render nodes: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func renderNodesSnapshot(nodes []model.RenderNode) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case model.NodeKindEvent:
			out = append(out, map[string]any{
				"kind": string(n.Kind),
				"id":   n.Event.ID,
				"time": n.Event.Timestamp.UTC().Format(time.RFC3339),
				"type": n.Event.EventType,
			})
		case model.NodeKindCluster:
			members := make([]any, 0, len(n.Cluster.MemberIDs))
			for _, id := range n.Cluster.MemberIDs {
				members = append(members, id)
			}
			out = append(out, map[string]any{
				"kind":    string(n.Kind),
				"id":      n.Cluster.ID,
				"start":   n.Cluster.Start.UTC().Format(time.RFC3339),
				"end":     n.Cluster.End.UTC().Format(time.RFC3339),
				"count":   n.Cluster.Count,
				"members": members,
			})
		}
	}
	return out
}

package model

import "time"

// NodeKind discriminates the RenderNode union.
type NodeKind string

const (
	// NodeKindEvent wraps a single standalone event.
	NodeKindEvent NodeKind = "event"

	// NodeKindCluster summarizes an aggregated time bucket.
	NodeKindCluster NodeKind = "cluster"
)

// ClusterInfo is the payload of a cluster RenderNode: a time bucket whose
// member events are rendered as one aggregate.
type ClusterInfo struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	MemberIDs []string  `json:"member_ids"`
	Count     int       `json:"count"`
}

// RenderNode is the tagged union consumed by the layout engines. Exactly one
// of Event and Cluster is non-nil, matching Kind. Consumers switch on Kind
// exhaustively.
type RenderNode struct {
	Kind    NodeKind       `json:"kind"`
	Event   *TimelineEvent `json:"event,omitempty"`
	Cluster *ClusterInfo   `json:"cluster,omitempty"`
}

// EventNode wraps a single event as a RenderNode.
func EventNode(e TimelineEvent) RenderNode {
	return RenderNode{Kind: NodeKindEvent, Event: &e}
}

// ClusterNode wraps a bucket summary as a RenderNode.
func ClusterNode(c ClusterInfo) RenderNode {
	return RenderNode{Kind: NodeKindCluster, Cluster: &c}
}

// Time returns the node's position on the time axis: the event timestamp for
// event nodes, the bucket start for cluster nodes.
func (n RenderNode) Time() time.Time {
	switch n.Kind {
	case NodeKindEvent:
		return n.Event.Timestamp
	case NodeKindCluster:
		return n.Cluster.Start
	}
	return time.Time{}
}

// MemberIDs returns the event ids the node accounts for.
func (n RenderNode) MemberIDs() []string {
	switch n.Kind {
	case NodeKindEvent:
		return []string{n.Event.ID}
	case NodeKindCluster:
		return n.Cluster.MemberIDs
	}
	return nil
}

// LayoutNode is a RenderNode with its computed placement. Card is nil in
// minimal display mode, where only markers and labels exist.
type LayoutNode struct {
	Node         RenderNode `json:"node"`
	Card         *Rect      `json:"card,omitempty"`
	Marker       Point      `json:"marker"`
	LabelVisible bool       `json:"label_visible"`
}

// BubbleData is one overview bubble summarizing a calendar bucket.
type BubbleData struct {
	BucketID         string         `json:"bucket_id"`
	Start            time.Time      `json:"start"`
	End              time.Time      `json:"end"`
	EventCount       int            `json:"event_count"`
	Label            string         `json:"label"`
	Color            Color          `json:"color"`
	DominantCategory string         `json:"dominant_category"`
	Participants     []string       `json:"participants,omitempty"`
	ParticipantCount map[string]int `json:"participant_count,omitempty"`
	Tier             string         `json:"tier"`
	SizeMultiplier   float64        `json:"size_multiplier"`
}

// FlowNode is one event position along a participant's flow path.
type FlowNode struct {
	Event    TimelineEvent `json:"event"`
	Position Point         `json:"position"`
	// IsJunction marks events shared with at least one other selected
	// participant; junction nodes pull the path toward the shared center.
	IsJunction     bool     `json:"is_junction"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
	ThumbnailAsset string   `json:"thumbnail_asset,omitempty"`
}

// FlowPath is one participant's continuous curve across the timeline.
type FlowPath struct {
	ParticipantID string     `json:"participant_id"`
	DisplayName   string     `json:"display_name"`
	Curve         Curve      `json:"curve"`
	Origin        Point      `json:"origin"`
	Nodes         []FlowNode `json:"nodes"`
}

// SwimlaneItem is a positioned card in the swimlane layout. Bridge items span
// multiple lanes for shared events.
type SwimlaneItem struct {
	Event    TimelineEvent `json:"event"`
	Rect     Rect          `json:"rect"`
	MinLane  int           `json:"min_lane"`
	MaxLane  int           `json:"max_lane"`
	IsBridge bool          `json:"is_bridge"`
}

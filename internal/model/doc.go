// Package model provides the shared domain types for the lifeline engine.
//
// This package contains type definitions plus a few leaf utilities (id
// generation, canonical snapshot serialization). All other internal packages
// import model; model imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - TimelineEvent is the only durable entity; every other structure here
//     (MediaCluster, RenderNode, LayoutNode, BubbleData, FlowPath,
//     SwimlaneItem) is derived and recomputed from scratch on each query.
//   - RenderNode is a tagged union (Kind + variant payload), matched
//     exhaustively by consumers, never subclassed.
//   - Geometry types are minimal owned structs; the rendering host converts
//     them to its native drawing API.
package model

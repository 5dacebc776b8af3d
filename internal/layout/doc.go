// Package layout positions render nodes in 2D: collision-free cards along a
// time axis, multi-participant flow paths with junction merges and helix
// weaves, and fixed swimlanes with bridge cards.
//
// Every layout here is a pure function of its inputs, cheap enough to
// recompute on each viewport or zoom change. Collision handling is greedy
// and incremental, never a global optimization: the guarantees are local
// (same-side cards never overlap, swimlane cards shift right past earlier
// ones) and placement follows traversal order, which keeps re-layout stable
// while the user pans.
//
// Coordinates are logical pixels with the origin at the top-left; the
// rendering host translates them to screen space.
package layout

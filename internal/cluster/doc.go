// Package cluster implements the media-to-moment clustering engine.
//
// The engine turns an unordered set of captured media assets into ordered
// MediaClusters ("moments") and synthesizes one TimelineEvent per cluster.
//
// PIPELINE:
//
//  1. Assets sorted by capture time (stable, id tie-break).
//  2. Burst scan: runs where every consecutive gap is within the burst
//     threshold become burst clusters once they reach the minimum size; a
//     run hitting the maximum size is closed and a new run starts.
//  3. Proximity scan over the remaining assets: a cluster grows while the
//     elapsed time from its first asset stays within the temporal threshold
//     and each new geotagged asset stays within the spatial threshold of
//     every geotagged asset already included.
//  4. Each cluster gets a deterministic key asset and becomes one event.
//
// DETERMINISM:
//
// The whole pipeline is a pure function of its inputs. There is no
// randomness, no wall-clock reads, and no shared state; identical inputs
// always produce identical clusters, key assets, and event ordering. Event
// ids come from an injected generator so tests can pin them.
package cluster

// Package layout assigns deterministic initial coordinates to visible nodes.
//
// The initializer runs once per resolution, before the force simulation takes
// over. Each node receives an anchor position derived from the selected
// [Mode] and its hierarchy level; the simulation's positional force keeps
// pulling the node back toward that anchor so the layout keeps its intended
// shape while physics spreads nodes apart.
//
// Nodes that survived a graph replacement keep their previous simulated
// position as the starting point, while the freshly computed anchor becomes
// the new restoring target. Settled nodes therefore ease toward a new layout
// instead of snapping.
package layout

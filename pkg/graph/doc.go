// Package graph provides the node-link data model and the collapse-aware
// hierarchy resolver that drives layout and rendering.
//
// # Overview
//
// Flowgraph renders a large hierarchical graph on an interactive 2-D canvas.
// Callers supply a flat node list and a flat link list; this package derives
// the parent/child structure from the links and computes which nodes are
// currently visible given a set of collapsed subtree roots.
//
// # Basic Usage
//
// Build a [Graph] and resolve it against a collapsed set:
//
//	g := graph.Graph{
//	    Nodes: []graph.Node{{ID: "root"}, {ID: "a", Level: 1}},
//	    Links: []graph.Link{{Source: "root", Target: "a"}},
//	}
//	res := graph.Resolve(g, graph.NewSet("a"))
//
// The [Resolution] exposes parent and children lookups, the visible node and
// link slices, and ancestor/descendant traversals. Visibility is recomputed
// on every resolve, never cached on nodes: a node is visible iff none of its
// ancestors is collapsed. Collapsing a node hides its descendants, not the
// node itself.
//
// # Parent Derivation
//
// A link source→target makes source the parent of target. When several links
// claim the same target, the first link in input order wins; later claims are
// ignored. Multi-parent inputs are therefore accepted but flattened to a
// tree, which keeps ancestor walks single-valued.
//
// Links whose endpoints are missing from the node set are dropped during
// resolution. This is a data-quality concern of the caller, not an error.
//
// # Serialization
//
// Graphs use a simple node-link format with JSON and BSON tags so the same
// types serve files, the HTTP API, and Mongo-backed sources:
//
//	{
//	  "nodes": [{"id": "root"}, {"id": "a", "level": 1}],
//	  "links": [{"source": "root", "target": "a"}]
//	}
package graph

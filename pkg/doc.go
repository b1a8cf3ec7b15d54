// Package pkg provides the core libraries for Flowgraph interactive graph
// visualization.
//
// # Overview
//
// Flowgraph turns hierarchical graph documents into live force-directed
// scenes that can be explored in a terminal, served over HTTP, or exported
// as static images. The pkg directory is organized into three main areas:
//
//  1. Domain logic (graph resolution, layout seeding, force simulation)
//  2. Interaction (viewport transforms, hit-testing, pointer state)
//  3. Infrastructure (snapshot publishing, graph sources, metrics, export)
//
// # Architecture
//
// The typical data flow through Flowgraph:
//
//	Graph document (file, MongoDB, or generated)
//	         ↓
//	    [graph] package (collapse-aware visibility resolution)
//	         ↓
//	    [layout] package (deterministic seed positions)
//	         ↓
//	    [sim] package (force simulation with alpha cooling)
//	         ↓
//	    [scene] package (interaction, scheduling, snapshots)
//	         ↓
//	    Terminal canvas / HTTP API / DOT, SVG, PNG output
//
// # Quick Start
//
// Load a graph and run it to convergence:
//
//	import (
//	    "time"
//	    "github.com/jfortez/flowgraph/pkg/graph"
//	    "github.com/jfortez/flowgraph/pkg/scene"
//	)
//
//	// 1. Parse a graph document
//	g, _ := graph.Unmarshal(data)
//
//	// 2. Build a scene
//	sc := scene.New(scene.DefaultConfig())
//	_ = sc.SetGraph(g)
//
//	// 3. Step the simulation until it settles
//	for sc.Simulation().Running() {
//	    sc.Simulation().Step()
//	}
//
//	// 4. Read out positions
//	snap := sc.Snapshot(time.Now())
//
// # Main Packages
//
// [graph] - Graph documents, validation, and collapse-aware visibility
// resolution. A Resolution answers which nodes and links are visible for a
// given collapsed set and how links retarget to collapsed ancestors.
//
// [layout] - Deterministic initial placement. Five modes (concentric,
// progressive, hierarchical, radial-tree, cluster) seed node positions and
// anchors before the simulation takes over.
//
// [sim] - Force-directed simulation in the d3-force style: many-body
// repulsion, link springs, collision resolution, centering, and anchor
// forces, driven by an alpha temperature that decays toward rest.
//
// [view] - Screen/simulation coordinate transforms, zoom clamping, and
// node radius conventions shared by every renderer.
//
// [interact] - Hit-testing and the pointer state machine: drag promotion,
// click and double-click synthesis, and delayed hover clearing.
//
// [scene] - The composition root. Owns the resolver, layout, simulation,
// viewport, and pointer machine, and schedules stepping, rendering, and
// snapshot publishing. Single-threaded by contract.
//
// [snapshot] - Position snapshot publishing with memory, file, Redis, and
// fan-out backends.
//
// [source] - Graph sources: JSON files (with fsnotify watching), MongoDB
// documents, and a seeded random generator.
//
// [export] - Static export to Graphviz DOT, SVG, and PNG with simulated
// positions pinned.
//
// [api] - HTTP surface exposing the current graph, latest positions,
// health, and Prometheus metrics.
//
// [metrics] - Prometheus collectors for simulation and scheduler activity.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/sim/...          # Specific package
//	go test -run Example           # Examples only
//
// [graph]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/graph
// [layout]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/layout
// [sim]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/sim
// [view]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/view
// [interact]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/interact
// [scene]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/scene
// [snapshot]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/snapshot
// [source]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/source
// [export]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/export
// [api]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/api
// [metrics]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/metrics
// [errors]: https://pkg.go.dev/github.com/jfortez/flowgraph/pkg/errors
package pkg

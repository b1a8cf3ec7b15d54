// Package scene composes the graph, layout, simulation, viewport, and
// interaction packages into one stateful engine.
//
// A [Scene] owns all mutable engine state: the loaded graph, its resolved
// hierarchy, the running simulation, the viewport transform, and the
// collapsed/selection/hover sets. Hosts feed it raw pointer events and
// graph documents; it answers with live node positions and highlight sets.
//
// A [Scheduler] drives a scene from a host-provided clock. Everything is
// single-threaded and cooperative: the scene spawns no goroutines and holds
// no locks, so one scene must only ever be touched from one goroutine.
package scene

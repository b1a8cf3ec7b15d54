// Package export renders the current layout to DOT, SVG, and PNG.
//
// Unlike a plain structural export, the emitted DOT pins every node to its
// simulated position so Graphviz (via the neato engine) reproduces the
// layout the user was looking at instead of computing its own.
package export

// Package api serves a read-only HTTP surface over a running scene.
//
// The scene itself is single-threaded, so handlers never touch it directly:
// the host publishes the graph document into a [GraphHolder] and positions
// into a snapshot publisher from its own loop, and handlers read those.
package api

// Package source loads graph documents from their storage backends.
//
// A [Source] produces a validated [graph.Graph] from somewhere: a JSON file
// on disk, a named document in MongoDB, or the synthetic generator used for
// demos and load testing. [Watch] layers live reload on top of the file
// source so an editor save replaces the running scene's graph in place.
package source

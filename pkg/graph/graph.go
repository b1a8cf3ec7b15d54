package graph

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID is returned by [Graph.Validate] when a node has an
	// empty identifier. All nodes must have non-empty IDs.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share
	// an identifier. Node IDs must be unique across the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Node is a vertex of the caller-supplied graph. Structure (parent, children)
// is not stored on the node; it is derived from links by [Resolve], which
// keeps the data model free of back-references.
type Node struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Type   string `json:"type,omitempty" bson:"type,omitempty"`   // Semantic type hint for rendering
	Level  int    `json:"level,omitempty" bson:"level,omitempty"` // Depth from root (root = 0)
	Match  bool   `json:"match,omitempty" bson:"match,omitempty"` // Search-match highlight flag
	Fill   string `json:"fill,omitempty" bson:"fill,omitempty"`   // Fill color hint
	Border string `json:"border,omitempty" bson:"border,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is an edge between two nodes, identified by their IDs. Direction
// matters for hierarchy derivation: the source becomes the parent of the
// target. Links referencing unknown nodes are dropped at resolution time.
type Link struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Key returns a stable identity for the link, used for structural-change
// detection across resolutions.
func (l Link) Key() string { return l.Source + "\x00" + l.Target }

// Graph is the canonical caller-facing graph format: a flat node list plus a
// flat link list. The same type serves JSON files, API responses, and Mongo
// documents.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// Validate checks node identifiers for emptiness and duplicates.
// Dangling links are not an error; they are dropped by [Resolve].
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// Unmarshal deserializes JSON bytes into a Graph and validates it.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// Marshal serializes the graph to indented JSON.
func Marshal(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Set is an unordered collection of node IDs. It backs the collapsed and
// selection state; mutation follows last-write-wins with no invariants of
// its own.
type Set map[string]struct{}

// NewSet builds a Set from the given IDs.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Remove deletes id from the set.
func (s Set) Remove(id string) { delete(s, id) }

// Toggle flips membership of id and reports the new state.
func (s Set) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// IDs returns the members in unspecified order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

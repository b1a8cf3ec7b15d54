package graph

// Resolution is the output of [Resolve]: derived hierarchy plus the set of
// nodes and links currently eligible for layout and rendering.
//
// Children slices are owned by the Resolution; parents are id-based lookups.
// Nothing here points back into caller data, so a Resolution can be replaced
// wholesale without invalidating anything else.
type Resolution struct {
	nodes    map[string]*Node
	order    []string            // node IDs in input order
	parents  map[string]string   // child -> parent (single-valued, first writer wins)
	children map[string][]string // parent -> child IDs in link input order
	visible  map[string]bool

	// VisibleNodes holds the visible nodes in input order.
	VisibleNodes []*Node
	// VisibleLinks holds links whose endpoints are both visible, in input order.
	VisibleLinks []Link
}

// Resolve derives the parent/child structure from links and computes the
// visibility set for the given collapsed IDs. It runs in O(nodes + links)
// per call; ancestor walks are memoized within the call so deep chains are
// only traversed once.
func Resolve(g Graph, collapsed Set) *Resolution {
	r := &Resolution{
		nodes:    make(map[string]*Node, len(g.Nodes)),
		order:    make([]string, 0, len(g.Nodes)),
		parents:  make(map[string]string),
		children: make(map[string][]string),
		visible:  make(map[string]bool, len(g.Nodes)),
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if _, dup := r.nodes[n.ID]; dup {
			continue
		}
		r.nodes[n.ID] = n
		r.order = append(r.order, n.ID)
	}

	kept := make([]Link, 0, len(g.Links))
	for _, l := range g.Links {
		if _, ok := r.nodes[l.Source]; !ok {
			continue
		}
		if _, ok := r.nodes[l.Target]; !ok {
			continue
		}
		kept = append(kept, l)
		// First writer wins: a later link claiming an already-parented
		// target does not reassign it.
		if _, claimed := r.parents[l.Target]; !claimed && l.Source != l.Target {
			r.parents[l.Target] = l.Source
			r.children[l.Source] = append(r.children[l.Source], l.Target)
		}
	}

	for _, id := range r.order {
		if r.resolveVisible(id, collapsed) {
			r.VisibleNodes = append(r.VisibleNodes, r.nodes[id])
		}
	}
	for _, l := range kept {
		if r.visible[l.Source] && r.visible[l.Target] {
			r.VisibleLinks = append(r.VisibleLinks, l)
		}
	}
	return r
}

// resolveVisible walks the ancestor chain, memoizing results in r.visible.
// A node's own collapse state never hides the node itself.
func (r *Resolution) resolveVisible(id string, collapsed Set) bool {
	if v, ok := r.visible[id]; ok {
		return v
	}
	parent, hasParent := r.parents[id]
	if !hasParent {
		r.visible[id] = true
		return true
	}
	v := !collapsed.Has(parent) && r.resolveVisible(parent, collapsed)
	r.visible[id] = v
	return v
}

// Node returns the node with the given ID, or nil if unknown.
func (r *Resolution) Node(id string) *Node { return r.nodes[id] }

// Parent returns the parent ID of the node and whether it has one.
// A node with no parent is a root.
func (r *Resolution) Parent(id string) (string, bool) {
	p, ok := r.parents[id]
	return p, ok
}

// Children returns the child IDs of the node in link input order.
// The returned slice is a read-only view.
func (r *Resolution) Children(id string) []string { return r.children[id] }

// HasChildren reports whether the node has at least one child, visible or not.
func (r *Resolution) HasChildren(id string) bool { return len(r.children[id]) > 0 }

// IsVisible reports whether the node has no collapsed ancestor.
func (r *Resolution) IsVisible(id string) bool { return r.visible[id] }

// IsRoot reports whether the node has no parent.
func (r *Resolution) IsRoot(id string) bool {
	_, ok := r.parents[id]
	return !ok
}

// Ancestors returns the chain of ancestor IDs from the node's parent up to
// its root, in that order. Returns nil for roots.
func (r *Resolution) Ancestors(id string) []string {
	var chain []string
	for {
		p, ok := r.parents[id]
		if !ok {
			return chain
		}
		chain = append(chain, p)
		id = p
	}
}

// VisibleDescendants returns the IDs of all currently visible descendants of
// the node, discovered depth-first. Children hidden by a collapsed ancestor
// are excluded along with their subtrees.
func (r *Resolution) VisibleDescendants(id string) []string {
	var out []string
	var walk func(string)
	walk = func(cur string) {
		for _, c := range r.children[cur] {
			if !r.visible[c] {
				continue
			}
			out = append(out, c)
			walk(c)
		}
	}
	walk(id)
	return out
}

// NodeIDs returns all node IDs in input order, visible or not.
func (r *Resolution) NodeIDs() []string { return r.order }

// VisibleByLevel groups the visible nodes by their level, preserving input
// order within each level.
func (r *Resolution) VisibleByLevel() map[int][]*Node {
	byLevel := make(map[int][]*Node)
	for _, n := range r.VisibleNodes {
		byLevel[n.Level] = append(byLevel[n.Level], n)
	}
	return byLevel
}

// HighlightOptions control which relatives join a hover's connected set.
type HighlightOptions struct {
	// Ancestors includes the chain up to the root for non-root targets.
	Ancestors bool
	// Descendants includes the visible subtree below the target.
	Descendants bool
}

// ConnectedSet returns the nodes considered related to a hover target; the
// renderer dims everything outside it. Hovering a root highlights the root
// and its direct visible children. Hovering a non-root highlights the
// ancestor chain to the root and the visible descendant subtree. The target
// itself is always included.
func (r *Resolution) ConnectedSet(id string, opts HighlightOptions) Set {
	set := NewSet(id)
	if _, ok := r.nodes[id]; !ok {
		return set
	}
	if r.IsRoot(id) {
		for _, c := range r.children[id] {
			if r.visible[c] {
				set.Add(c)
			}
		}
		return set
	}
	if opts.Ancestors {
		for _, a := range r.Ancestors(id) {
			set.Add(a)
		}
	}
	if opts.Descendants {
		for _, d := range r.VisibleDescendants(id) {
			set.Add(d)
		}
	}
	return set
}

package interact

import (
	"math"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/sim"
	"github.com/jfortez/flowgraph/pkg/view"
)

// Geometric thresholds, simulation units unless noted.
const (
	// HitTolerance widens every node's hit circle beyond its render radius.
	HitTolerance = 4.0
	// LinkHitDistance is the maximum point-to-segment distance for link hits.
	LinkHitDistance = 6.0
	// ExpandButtonRadius is the hit radius of the expand/collapse button.
	ExpandButtonRadius = 8.0
	// ExpandButtonGap separates the button from the node's rim.
	ExpandButtonGap = 12.0
	// MinExpandZoom is the viewport scale below which expand buttons are
	// not live (too small to hit reliably).
	MinExpandZoom = 0.5
)

// HitTester answers geometric queries against the current visible nodes and
// links. It is rebuilt on every resolution; construction is cheap.
type HitTester struct {
	nodes []*sim.Node
	byID  map[string]*sim.Node
	links []graph.Link
	res   *graph.Resolution
}

// NewHitTester indexes the visible simulated nodes and links.
func NewHitTester(nodes []*sim.Node, links []graph.Link, res *graph.Resolution) *HitTester {
	byID := make(map[string]*sim.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return &HitTester{nodes: nodes, byID: byID, links: links, res: res}
}

// NodeAt returns the nearest node whose render radius plus [HitTolerance]
// contains the simulation-space point, or nil. Overlapping hit circles
// resolve to the closer center.
func (h *HitTester) NodeAt(p view.Point) *sim.Node {
	var best *sim.Node
	bestD := math.Inf(1)
	for _, n := range h.nodes {
		d := math.Hypot(n.X-p.X, n.Y-p.Y)
		if d <= view.NodeRadius(n.Level)+HitTolerance && d < bestD {
			best, bestD = n, d
		}
	}
	return best
}

// LinkAt returns the nearest link whose point-to-segment distance is below
// [LinkHitDistance], among links with both endpoints resolved.
func (h *HitTester) LinkAt(p view.Point) (graph.Link, bool) {
	var best graph.Link
	bestD := math.Inf(1)
	found := false
	for _, l := range h.links {
		a, okA := h.byID[l.Source]
		b, okB := h.byID[l.Target]
		if !okA || !okB {
			continue
		}
		d := segmentDistance(p, view.Point{X: a.X, Y: a.Y}, view.Point{X: b.X, Y: b.Y})
		if d < LinkHitDistance && d < bestD {
			best, bestD, found = l, d, true
		}
	}
	return best, found
}

// ExpandButtonCenter returns where the node's expand/collapse button sits:
// along the direction from the node's parent, just past the node's rim, or
// directly below the node for roots.
func (h *HitTester) ExpandButtonCenter(n *sim.Node) view.Point {
	r := view.NodeRadius(n.Level) + ExpandButtonGap
	parentID, ok := h.res.Parent(n.ID)
	if ok {
		if p := h.byID[parentID]; p != nil {
			dx, dy := n.X-p.X, n.Y-p.Y
			d := math.Hypot(dx, dy)
			if d > 0 {
				return view.Point{X: n.X + dx/d*r, Y: n.Y + dy/d*r}
			}
		}
	}
	return view.Point{X: n.X, Y: n.Y + r}
}

// ExpandButtonAt reports whether the point hits the node's expand button.
// The button is live only when the node has children and the viewport is
// zoomed past [MinExpandZoom].
func (h *HitTester) ExpandButtonAt(n *sim.Node, p view.Point, zoom float64) bool {
	if n == nil || zoom <= MinExpandZoom || !h.res.HasChildren(n.ID) {
		return false
	}
	c := h.ExpandButtonCenter(n)
	return math.Hypot(c.X-p.X, c.Y-p.Y) <= ExpandButtonRadius
}

// Node returns the indexed simulated node by ID, or nil.
func (h *HitTester) Node(id string) *sim.Node { return h.byID[id] }

// Bounds returns the bounding box over all indexed nodes. ok is false when
// there are no nodes.
func (h *HitTester) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(h.nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range h.nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY, true
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b view.Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	ab2 := abx*abx + aby*aby
	if ab2 == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / ab2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+abx*t), p.Y-(a.Y+aby*t))
}

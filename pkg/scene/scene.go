package scene

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/interact"
	"github.com/jfortez/flowgraph/pkg/layout"
	"github.com/jfortez/flowgraph/pkg/sim"
	"github.com/jfortez/flowgraph/pkg/snapshot"
	"github.com/jfortez/flowgraph/pkg/view"
)

// Alpha values used when motion must resume.
const (
	// freshAlpha is the temperature for a brand-new node set.
	freshAlpha = 1.0
	// structuralAlpha is the temperature after a collapse toggle or a
	// partial graph replacement, where most positions carry over.
	structuralAlpha = 0.5
	// dragAlphaTarget keeps the simulation warm while a drag is active.
	dragAlphaTarget = 0.3
)

// ForceTuning carries the per-force parameters a caller can adjust.
type ForceTuning struct {
	Repulsion       float64 // many-body strength, negative repels
	RepulsionCutoff float64 // max interaction distance
	LinkDistance    float64 // spring rest length
	LinkStrength    float64 // 0..1
	AnchorStrength  float64
	CenterStrength  float64
	CollidePadding  float64 // added to the render radius for collisions
}

// Config is the caller-facing input contract: layout and collision modes,
// force tuning, and behavior flags.
type Config struct {
	Layout     layout.Mode
	LayoutOpts layout.Options
	Collision  sim.CollisionMode
	Forces     ForceTuning

	// DragEnabled gates node dragging; pans and clicks still work when off.
	DragEnabled bool
	// HoverHighlight gates the hover-driven connected-set dimming.
	HoverHighlight bool
	// Highlight controls which relatives join a connected set.
	Highlight graph.HighlightOptions

	// CollapseAtLevel starts every node at or below this depth collapsed on
	// the first graph load. Negative disables the policy.
	CollapseAtLevel int
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		Layout:     layout.ModeConcentric,
		LayoutOpts: layout.DefaultOptions(),
		Collision:  sim.CollisionFull,
		Forces: ForceTuning{
			Repulsion:       -400,
			RepulsionCutoff: 500,
			LinkDistance:    120,
			LinkStrength:    0.4,
			AnchorStrength:  0.08,
			CenterStrength:  0.05,
			CollidePadding:  6,
		},
		DragEnabled:     true,
		HoverHighlight:  true,
		Highlight:       graph.HighlightOptions{Ancestors: true, Descendants: true},
		CollapseAtLevel: -1,
	}
}

// Scene is the engine's composition root. It owns every piece of mutable
// state and must only be used from a single goroutine.
type Scene struct {
	cfg Config

	g   graph.Graph
	res *graph.Resolution

	collapsed graph.Set
	selection graph.Set
	hover     interact.Hover

	viewport *view.Viewport
	machine  *interact.Machine
	hit      *interact.HitTester
	sim      *sim.Simulation

	// signature identifies the visible structure; matching signatures across
	// two resolutions mean the running simulation is reused as-is.
	signature string
	loaded    bool
}

// New creates an empty scene. Structure-independent forces are registered
// once; the link and node arrays are installed by [Scene.SetGraph].
func New(cfg Config) *Scene {
	s := &Scene{
		cfg:       cfg,
		collapsed: graph.NewSet(),
		selection: graph.NewSet(),
		viewport:  view.NewViewport(),
		sim:       sim.New(sim.DefaultConfig()),
	}
	s.machine = interact.NewMachine(s.viewport)

	f := cfg.Forces
	s.sim.AddForce("charge", sim.NewManyBody(f.Repulsion, f.RepulsionCutoff))
	s.sim.AddForce("anchor", sim.NewAnchorForce(f.AnchorStrength))
	s.sim.AddForce("center", sim.NewCenterForce(cfg.LayoutOpts.CenterX, cfg.LayoutOpts.CenterY, f.CenterStrength))
	if collide := sim.NewCollideForce(cfg.Collision, s.collideRadius); collide != nil {
		s.sim.AddForce("collide", collide)
	}
	return s
}

func (s *Scene) collideRadius(n *sim.Node) float64 {
	return view.NodeRadius(n.Level) + s.cfg.Forces.CollidePadding
}

// SetGraph replaces the node and link sets wholesale. Positions of surviving
// nodes carry over; collapsed and selection sets are pruned to ids that
// still exist. The first load applies the default-collapsed policy.
func (s *Scene) SetGraph(g graph.Graph) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("set graph: %w", err)
	}
	known := graph.NewSet()
	for i := range g.Nodes {
		known.Add(g.Nodes[i].ID)
	}
	for id := range s.collapsed {
		if !known.Has(id) {
			s.collapsed.Remove(id)
		}
	}
	for id := range s.selection {
		if !known.Has(id) {
			s.selection.Remove(id)
		}
	}

	s.g = g
	if !s.loaded {
		s.applyCollapsePolicy()
		s.loaded = true
	}
	s.rebuild(freshAlpha)
	return nil
}

// applyCollapsePolicy collapses every node at or below the configured level
// that has children, so deep graphs open in a folded state.
func (s *Scene) applyCollapsePolicy() {
	if s.cfg.CollapseAtLevel < 0 {
		return
	}
	probe := graph.Resolve(s.g, nil)
	for _, id := range probe.NodeIDs() {
		n := probe.Node(id)
		if n.Level >= s.cfg.CollapseAtLevel && probe.HasChildren(id) {
			s.collapsed.Add(id)
		}
	}
}

// rebuild resolves visibility, re-runs the layout initializer, and installs
// the result into the simulation. When the visible structure is unchanged
// the running simulation is kept so a re-resolution never causes a layout
// jump; otherwise the node array is rebuilt (surviving nodes keep their
// position, velocity, and pin) and alpha is raised to the given value.
func (s *Scene) rebuild(alpha float64) {
	prev := make(map[string]layout.Point, len(s.sim.Nodes()))
	for _, n := range s.sim.Nodes() {
		prev[n.ID] = layout.Point{X: n.X, Y: n.Y}
	}

	res := graph.Resolve(s.g, s.collapsed)
	placements := layout.Init(res, s.cfg.Layout, s.cfg.LayoutOpts, prev)
	sig := structureSignature(res)

	if sig == s.signature && len(s.sim.Nodes()) > 0 {
		for _, n := range s.sim.Nodes() {
			if pl, ok := placements[n.ID]; ok {
				n.AnchorX, n.AnchorY = pl.Anchor.X, pl.Anchor.Y
			}
		}
		s.res = res
		s.rebind(res)
		return
	}

	old := make(map[string]*sim.Node, len(s.sim.Nodes()))
	for _, n := range s.sim.Nodes() {
		old[n.ID] = n
	}
	nodes := make([]*sim.Node, 0, len(res.VisibleNodes))
	for _, gn := range res.VisibleNodes {
		pl := placements[gn.ID]
		n := &sim.Node{
			ID:      gn.ID,
			Level:   gn.Level,
			X:       pl.Start.X,
			Y:       pl.Start.Y,
			AnchorX: pl.Anchor.X,
			AnchorY: pl.Anchor.Y,
		}
		if was, ok := old[gn.ID]; ok {
			n.VX, n.VY = was.VX, was.VY
			n.FX, n.FY = was.FX, was.FY
		}
		nodes = append(nodes, n)
	}
	s.sim.SetNodes(nodes)

	springs := make([]sim.Spring, 0, len(res.VisibleLinks))
	for _, l := range res.VisibleLinks {
		springs = append(springs, sim.Spring{
			Source: s.sim.Node(l.Source),
			Target: s.sim.Node(l.Target),
		})
	}
	s.sim.AddForce("link", sim.NewLinkForce(springs, s.cfg.Forces.LinkDistance, s.cfg.Forces.LinkStrength))

	s.res = res
	s.signature = sig
	s.rebind(res)
	s.pruneHidden(res)
	s.sim.Reheat(alpha)
}

func (s *Scene) rebind(res *graph.Resolution) {
	s.hit = interact.NewHitTester(s.sim.Nodes(), res.VisibleLinks, res)
	s.machine.Rebind(s.hit, res)
}

// pruneHidden drops selection and hover targets that are no longer visible.
func (s *Scene) pruneHidden(res *graph.Resolution) {
	for id := range s.selection {
		if !res.IsVisible(id) {
			s.selection.Remove(id)
		}
	}
	if id := s.hover.NodeID(); id != "" && !res.IsVisible(id) {
		s.hover.Reset()
	}
	if l := s.hover.Link(); l != nil && (!res.IsVisible(l.Source) || !res.IsVisible(l.Target)) {
		s.hover.Reset()
	}
}

// structureSignature flattens the visible node-id and link-key sets into a
// comparable string. Order-insensitive: resolutions with the same sets match
// regardless of input ordering.
func structureSignature(res *graph.Resolution) string {
	ids := make([]string, 0, len(res.VisibleNodes))
	for _, n := range res.VisibleNodes {
		ids = append(ids, n.ID)
	}
	keys := make([]string, 0, len(res.VisibleLinks))
	for _, l := range res.VisibleLinks {
		keys = append(keys, l.Key())
	}
	slices.Sort(ids)
	slices.Sort(keys)
	return strings.Join(ids, "\x1f") + "\x1e" + strings.Join(keys, "\x1f")
}

// ToggleCollapse flips a node's collapse state and re-resolves. Nodes
// without children are left untouched.
func (s *Scene) ToggleCollapse(id string) {
	if s.res == nil || !s.res.HasChildren(id) {
		return
	}
	s.collapsed.Toggle(id)
	s.rebuild(structuralAlpha)
}

// Press feeds a pointer-down event through the machine and applies the
// resulting action.
func (s *Scene) Press(screen view.Point, modifier bool, now time.Time) interact.Action {
	a := s.machine.Press(screen, modifier, now)
	s.apply(a)
	return a
}

// Move feeds a pointer-move event through the machine, applies the
// resulting action, and recomputes hover when no drag is active.
func (s *Scene) Move(screen view.Point, now time.Time) interact.Action {
	a := s.machine.Move(screen, now)
	s.apply(a)
	if !s.machine.Dragging() && s.hit != nil {
		sp := s.viewport.Transform().ToSim(screen)
		var nodeID string
		var link *graph.Link
		if n := s.hit.NodeAt(sp); n != nil {
			nodeID = n.ID
		} else if l, ok := s.hit.LinkAt(sp); ok {
			link = &l
		}
		s.hover.Update(nodeID, link, now)
	}
	return a
}

// Release feeds a pointer-up event through the machine and applies the
// resulting action.
func (s *Scene) Release(screen view.Point, modifier bool, now time.Time) interact.Action {
	a := s.machine.Release(screen, modifier, now)
	s.apply(a)
	return a
}

// Leave handles the pointer exiting the canvas: any gesture is abandoned
// and hover clears after the usual delay.
func (s *Scene) Leave(now time.Time) interact.Action {
	a := s.machine.Leave(now)
	s.apply(a)
	s.hover.Update("", nil, now)
	return a
}

// Zoom scales the viewport about a screen anchor.
func (s *Scene) Zoom(anchor view.Point, factor float64) {
	s.viewport.ZoomAt(anchor, factor)
}

// FitToView frames the visible nodes inside a container of the given size.
// No-op while the scene is empty.
func (s *Scene) FitToView(width, height, padding float64) {
	if s.hit == nil {
		return
	}
	minX, minY, maxX, maxY, ok := s.hit.Bounds()
	if !ok {
		return
	}
	s.viewport.Fit(minX, minY, maxX, maxY, width, height, padding)
}

func (s *Scene) apply(a interact.Action) {
	switch a.Kind {
	case interact.ActionDragStart:
		if !s.cfg.DragEnabled {
			return
		}
		if n := s.sim.Node(a.NodeID); n != nil {
			n.Pin(n.X, n.Y)
			s.sim.SetAlphaTarget(dragAlphaTarget)
			s.sim.Reheat(dragAlphaTarget)
		}
	case interact.ActionDragMove:
		if !s.cfg.DragEnabled {
			return
		}
		if n := s.sim.Node(a.NodeID); n != nil {
			n.Pin(a.Sim.X, a.Sim.Y)
		}
	case interact.ActionDragEnd:
		if !s.cfg.DragEnabled {
			return
		}
		if n := s.sim.Node(a.NodeID); n != nil {
			n.Unpin()
		}
		s.sim.SetAlphaTarget(0)
	case interact.ActionPan:
		s.viewport.Pan(a.DX, a.DY)
	case interact.ActionClickNode:
		s.clickSelect(a.NodeID, a.Modifier)
	case interact.ActionClearSelection:
		s.selection = graph.NewSet()
	case interact.ActionToggleCollapse:
		s.ToggleCollapse(a.NodeID)
	}
}

// clickSelect implements click selection: a modifier click toggles
// membership, a plain click replaces the selection, and re-clicking the
// sole selected node clears it.
func (s *Scene) clickSelect(id string, modifier bool) {
	if modifier {
		s.selection.Toggle(id)
		return
	}
	if len(s.selection) == 1 && s.selection.Has(id) {
		s.selection = graph.NewSet()
		return
	}
	s.selection = graph.NewSet(id)
}

// Highlight returns the connected set governing dimming: the hovered node's
// relatives when hover highlighting is on, otherwise the union over the
// selection. Nil means nothing is dimmed.
func (s *Scene) Highlight() graph.Set {
	if s.res == nil {
		return nil
	}
	if s.cfg.HoverHighlight {
		if id := s.hover.NodeID(); id != "" {
			return s.res.ConnectedSet(id, s.cfg.Highlight)
		}
	}
	if len(s.selection) == 0 {
		return nil
	}
	set := graph.NewSet()
	for id := range s.selection {
		for rel := range s.res.ConnectedSet(id, s.cfg.Highlight) {
			set.Add(rel)
		}
	}
	return set
}

// Snapshot captures the current node positions for publication.
func (s *Scene) Snapshot(now time.Time) snapshot.Snapshot {
	snap := snapshot.Snapshot{
		TakenAt:   now,
		Alpha:     s.sim.Alpha(),
		Positions: make(map[string]snapshot.Position, len(s.sim.Nodes())),
	}
	for _, n := range s.sim.Nodes() {
		snap.Positions[n.ID] = snapshot.Position{X: n.X, Y: n.Y}
	}
	return snap
}

// Graph returns the currently loaded graph document.
func (s *Scene) Graph() graph.Graph { return s.g }

// Resolution returns the current hierarchy resolution, or nil before the
// first SetGraph.
func (s *Scene) Resolution() *graph.Resolution { return s.res }

// Simulation exposes the running simulation for rendering and export.
func (s *Scene) Simulation() *sim.Simulation { return s.sim }

// Viewport exposes the pan/zoom transform.
func (s *Scene) Viewport() *view.Viewport { return s.viewport }

// Selection returns the live selection set. Callers must not mutate it.
func (s *Scene) Selection() graph.Set { return s.selection }

// Collapsed returns the live collapsed set. Callers must not mutate it.
func (s *Scene) Collapsed() graph.Set { return s.collapsed }

// Hover exposes the hover state for rendering and deadline polling.
func (s *Scene) Hover() *interact.Hover { return &s.hover }

// Dragging reports whether a node drag is in progress.
func (s *Scene) Dragging() bool { return s.machine.Dragging() }

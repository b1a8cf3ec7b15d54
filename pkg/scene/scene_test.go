package scene

import (
	"testing"
	"time"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/interact"
	"github.com/jfortez/flowgraph/pkg/view"
)

// testGraph builds a three-level tree: root -> {a, b}, a -> a1.
func testGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "root", Level: 0},
			{ID: "a", Level: 1},
			{ID: "b", Level: 1},
			{ID: "a1", Level: 2},
		},
		Links: []graph.Link{
			{Source: "root", Target: "a"},
			{Source: "root", Target: "b"},
			{Source: "a", Target: "a1"},
		},
	}
}

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s := New(DefaultConfig())
	if err := s.SetGraph(testGraph()); err != nil {
		t.Fatalf("SetGraph() error = %v", err)
	}
	return s
}

func TestSetGraphBuildsSimulation(t *testing.T) {
	s := newTestScene(t)

	if s.Resolution() == nil {
		t.Fatal("Resolution() = nil after SetGraph")
	}
	if got := len(s.Simulation().Nodes()); got != 4 {
		t.Fatalf("simulated nodes = %d, want 4", got)
	}
	if !s.Simulation().Running() {
		t.Error("simulation not running after fresh graph load")
	}
	if s.Simulation().Node("a1") == nil {
		t.Error("node a1 missing from simulation")
	}
}

func TestSetGraphRejectsInvalid(t *testing.T) {
	s := New(DefaultConfig())
	g := graph.Graph{Nodes: []graph.Node{{ID: "x"}, {ID: "x"}}}
	if err := s.SetGraph(g); err == nil {
		t.Fatal("SetGraph() accepted duplicate node IDs")
	}
	if s.Resolution() != nil {
		t.Error("failed SetGraph left a resolution behind")
	}
}

func TestUnchangedStructureReusesSimulation(t *testing.T) {
	s := newTestScene(t)
	for i := 0; i < 10; i++ {
		s.Simulation().Step()
	}
	before := s.Simulation().Node("a")
	alpha := s.Simulation().Alpha()

	// Same nodes and links, different input order.
	g := testGraph()
	g.Nodes[0], g.Nodes[3] = g.Nodes[3], g.Nodes[0]
	g.Links[0], g.Links[2] = g.Links[2], g.Links[0]
	if err := s.SetGraph(g); err != nil {
		t.Fatalf("SetGraph() error = %v", err)
	}

	if after := s.Simulation().Node("a"); after != before {
		t.Error("identical structure rebuilt the node array")
	}
	if got := s.Simulation().Alpha(); got != alpha {
		t.Errorf("alpha = %v after identical re-set, want %v (no reheat)", got, alpha)
	}
}

func TestSetGraphCarriesSurvivorPositions(t *testing.T) {
	s := newTestScene(t)
	for i := 0; i < 20; i++ {
		s.Simulation().Step()
	}
	rx, ry := s.Simulation().Node("root").X, s.Simulation().Node("root").Y

	g := testGraph()
	g.Nodes = append(g.Nodes, graph.Node{ID: "c", Level: 1})
	g.Links = append(g.Links, graph.Link{Source: "root", Target: "c"})
	if err := s.SetGraph(g); err != nil {
		t.Fatalf("SetGraph() error = %v", err)
	}

	root := s.Simulation().Node("root")
	if root.X != rx || root.Y != ry {
		t.Errorf("root moved on replacement: (%v,%v), want (%v,%v)", root.X, root.Y, rx, ry)
	}
	if s.Simulation().Node("c") == nil {
		t.Error("new node c missing from simulation")
	}
	if !s.Simulation().Running() {
		t.Error("structural change did not reheat the simulation")
	}
}

func TestToggleCollapseHidesAndRestoresSubtree(t *testing.T) {
	s := newTestScene(t)

	s.ToggleCollapse("a")
	if s.Simulation().Node("a1") != nil {
		t.Fatal("a1 still simulated after collapsing a")
	}
	if s.Simulation().Node("a") == nil {
		t.Fatal("collapsed node a must stay visible")
	}

	s.ToggleCollapse("a")
	if s.Simulation().Node("a1") == nil {
		t.Fatal("a1 not restored after expanding a")
	}
}

func TestToggleCollapseIgnoresLeaves(t *testing.T) {
	s := newTestScene(t)
	s.ToggleCollapse("b")
	if s.Collapsed().Has("b") {
		t.Error("leaf b entered the collapsed set")
	}
}

func TestCollapsePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CollapseAtLevel = 1
	s := New(cfg)
	if err := s.SetGraph(testGraph()); err != nil {
		t.Fatalf("SetGraph() error = %v", err)
	}

	if !s.Collapsed().Has("a") {
		t.Error("a (level 1, has children) not collapsed by policy")
	}
	if s.Collapsed().Has("root") {
		t.Error("root (level 0) collapsed by level-1 policy")
	}
	if s.Simulation().Node("a1") != nil {
		t.Error("a1 simulated despite collapsed parent")
	}
}

func TestDragPinsAndReleases(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	b := s.Simulation().Node("b")
	at := view.Point{X: b.X, Y: b.Y}

	s.Press(at, false, now)
	a := s.Move(view.Point{X: at.X + 10, Y: at.Y}, now)
	if a.Kind != interact.ActionDragStart {
		t.Fatalf("Move() kind = %v, want ActionDragStart", a.Kind)
	}
	if !b.Pinned() {
		t.Fatal("drag start did not pin the node")
	}

	a = s.Move(view.Point{X: at.X + 40, Y: at.Y + 15}, now)
	if a.Kind != interact.ActionDragMove {
		t.Fatalf("Move() kind = %v, want ActionDragMove", a.Kind)
	}
	if *b.FX != at.X+40 || *b.FY != at.Y+15 {
		t.Errorf("pin = (%v,%v), want (%v,%v)", *b.FX, *b.FY, at.X+40, at.Y+15)
	}

	a = s.Release(view.Point{X: at.X + 40, Y: at.Y + 15}, false, now)
	if a.Kind != interact.ActionDragEnd {
		t.Fatalf("Release() kind = %v, want ActionDragEnd", a.Kind)
	}
	if b.Pinned() {
		t.Error("node still pinned after drag end")
	}
}

func TestDragDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DragEnabled = false
	s := New(cfg)
	if err := s.SetGraph(testGraph()); err != nil {
		t.Fatalf("SetGraph() error = %v", err)
	}
	now := time.Now()
	b := s.Simulation().Node("b")

	s.Press(view.Point{X: b.X, Y: b.Y}, false, now)
	s.Move(view.Point{X: b.X + 20, Y: b.Y}, now)
	if b.Pinned() {
		t.Error("node pinned with dragging disabled")
	}
}

func TestClickSelection(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	b := s.Simulation().Node("b")
	at := view.Point{X: b.X, Y: b.Y}

	s.Press(at, false, now)
	s.Release(at, false, now)
	if !s.Selection().Has("b") || len(s.Selection()) != 1 {
		t.Fatalf("selection = %v, want {b}", s.Selection().IDs())
	}

	// Re-clicking the sole selected node clears the selection. Use a later
	// timestamp so the click is not folded into a double click.
	later := now.Add(time.Second)
	s.Press(at, false, later)
	s.Release(at, false, later)
	if len(s.Selection()) != 0 {
		t.Fatalf("selection = %v after re-click, want empty", s.Selection().IDs())
	}
}

func TestModifierClickTogglesMembership(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	b := s.Simulation().Node("b")
	a := s.Simulation().Node("a")

	s.Press(view.Point{X: b.X, Y: b.Y}, false, now)
	s.Release(view.Point{X: b.X, Y: b.Y}, false, now)

	now = now.Add(time.Second)
	s.Press(view.Point{X: a.X, Y: a.Y}, true, now)
	s.Release(view.Point{X: a.X, Y: a.Y}, true, now)
	if !s.Selection().Has("a") || !s.Selection().Has("b") {
		t.Fatalf("selection = %v, want {a, b}", s.Selection().IDs())
	}

	now = now.Add(time.Second)
	s.Press(view.Point{X: b.X, Y: b.Y}, true, now)
	s.Release(view.Point{X: b.X, Y: b.Y}, true, now)
	if s.Selection().Has("b") {
		t.Error("modifier re-click did not remove b")
	}
}

func TestEmptyClickClearsSelection(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	b := s.Simulation().Node("b")

	s.Press(view.Point{X: b.X, Y: b.Y}, false, now)
	s.Release(view.Point{X: b.X, Y: b.Y}, false, now)

	far := view.Point{X: 5000, Y: 5000}
	s.Press(far, false, now.Add(time.Second))
	s.Release(far, false, now.Add(time.Second))
	if len(s.Selection()) != 0 {
		t.Fatalf("selection = %v after empty click, want empty", s.Selection().IDs())
	}
}

func TestDoubleClickCollapses(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	a := s.Simulation().Node("a")
	at := view.Point{X: a.X, Y: a.Y}

	s.Press(at, false, now)
	s.Release(at, false, now)
	second := now.Add(100 * time.Millisecond)
	s.Press(at, false, second)
	act := s.Release(at, false, second)

	if act.Kind != interact.ActionToggleCollapse {
		t.Fatalf("second Release() kind = %v, want ActionToggleCollapse", act.Kind)
	}
	if !s.Collapsed().Has("a") {
		t.Error("double click did not collapse a")
	}
	if s.Simulation().Node("a1") != nil {
		t.Error("a1 still simulated after double-click collapse")
	}
}

func TestPanMovesViewport(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()

	far := view.Point{X: 5000, Y: 5000}
	s.Press(far, false, now)
	s.Move(view.Point{X: far.X + 30, Y: far.Y + 10}, now)
	s.Move(view.Point{X: far.X + 50, Y: far.Y + 10}, now)

	tr := s.Viewport().Transform()
	if tr.X != 50 || tr.Y != 10 {
		t.Errorf("pan offset = (%v,%v), want (50,10)", tr.X, tr.Y)
	}
}

func TestHoverHighlightConnectedSet(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	root := s.Simulation().Node("root")

	s.Move(view.Point{X: root.X, Y: root.Y}, now)
	if got := s.Hover().NodeID(); got != "root" {
		t.Fatalf("hover = %q, want root", got)
	}

	set := s.Highlight()
	if set == nil {
		t.Fatal("Highlight() = nil while hovering root")
	}
	// Root highlights itself plus direct visible children only.
	for _, id := range []string{"root", "a", "b"} {
		if !set.Has(id) {
			t.Errorf("highlight missing %s", id)
		}
	}
	if set.Has("a1") {
		t.Error("highlight includes grandchild a1 for a hovered root")
	}
}

func TestHoverTracksTransformedViewport(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	root := s.Simulation().Node("root")

	// Pan, then zoom about an off-origin anchor, so screen and sim
	// coordinates disagree in both offset and scale.
	s.Viewport().Pan(500, 500)
	s.Zoom(view.Point{X: 40, Y: 60}, 2)

	at := s.Viewport().Transform().ToScreen(view.Point{X: root.X, Y: root.Y})
	s.Move(at, now)
	if got := s.Hover().NodeID(); got != "root" {
		t.Fatalf("hover after pan+zoom = %q, want root", got)
	}

	// The node's pre-transform position is now empty screen space.
	s.Move(view.Point{X: root.X, Y: root.Y}, now)
	s.Hover().Expire(now.Add(time.Second))
	if got := s.Hover().NodeID(); got != "" {
		t.Fatalf("hover at stale screen position = %q, want none", got)
	}
}

func TestCollapsePrunesSelectionAndHover(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()
	a1 := s.Simulation().Node("a1")
	at := view.Point{X: a1.X, Y: a1.Y}

	s.Press(at, false, now)
	s.Release(at, false, now)
	s.Move(at, now)
	if !s.Selection().Has("a1") || s.Hover().NodeID() != "a1" {
		t.Fatalf("precondition failed: selection=%v hover=%q", s.Selection().IDs(), s.Hover().NodeID())
	}

	s.ToggleCollapse("a")
	if s.Selection().Has("a1") {
		t.Error("hidden node a1 still selected")
	}
	if s.Hover().NodeID() == "a1" {
		t.Error("hidden node a1 still hovered")
	}
}

func TestZoomAndFit(t *testing.T) {
	s := newTestScene(t)

	s.Zoom(view.Point{X: 0, Y: 0}, 2)
	if got := s.Viewport().Transform().K; got != 2 {
		t.Fatalf("zoom K = %v, want 2", got)
	}

	s.FitToView(800, 600, 40)
	tr := s.Viewport().Transform()
	if tr.K < view.MinScale || tr.K > view.MaxScale {
		t.Errorf("fit K = %v outside [%v, %v]", tr.K, view.MinScale, view.MaxScale)
	}
}

func TestSnapshotCoversVisibleNodes(t *testing.T) {
	s := newTestScene(t)
	now := time.Now()

	snap := s.Snapshot(now)
	if len(snap.Positions) != 4 {
		t.Fatalf("snapshot positions = %d, want 4", len(snap.Positions))
	}
	if !snap.TakenAt.Equal(now) {
		t.Errorf("TakenAt = %v, want %v", snap.TakenAt, now)
	}
	if snap.Alpha != s.Simulation().Alpha() {
		t.Errorf("Alpha = %v, want %v", snap.Alpha, s.Simulation().Alpha())
	}
}
